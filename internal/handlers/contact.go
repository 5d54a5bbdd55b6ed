package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/api"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	api *api.Client
}

func NewContactHandler(client *api.Client) *ContactHandler {
	return &ContactHandler{api: client}
}

func (h *ContactHandler) Show(c *gin.Context) {
	Render(c, http.StatusOK, "contact.html", gin.H{
		"Title":  "Contact",
		"Active": "contact",
	})
}

func (h *ContactHandler) Submit(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	subject := strings.TrimSpace(c.PostForm("subject"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || !strings.Contains(email, "@") || message == "" {
		Render(c, http.StatusBadRequest, "contact.html", gin.H{
			"Title":   "Contact",
			"Active":  "contact",
			"Error":   "Name, a valid email and a message are required.",
			"Name":    name,
			"Email":   email,
			"Subject": subject,
			"Message": message,
		})
		return
	}

	if err := h.api.SendContact(c.Request.Context(), name, email, subject, message); err != nil {
		Render(c, http.StatusBadGateway, "contact.html", gin.H{
			"Title":   "Contact",
			"Active":  "contact",
			"Error":   api.Message(err, "Sending failed, please try again."),
			"Name":    name,
			"Email":   email,
			"Subject": subject,
			"Message": message,
		})
		return
	}

	Flash(c, "Thanks! We will get back to you soon.")
	c.Redirect(http.StatusFound, "/contact")
}
