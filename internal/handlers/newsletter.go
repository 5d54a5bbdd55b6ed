package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/api"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	api *api.Client
}

func NewNewsletterHandler(client *api.Client) *NewsletterHandler {
	return &NewsletterHandler{api: client}
}

// Subscribe handles the footer email-capture form from any page; it always
// redirects back to where the visitor was.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	back := c.DefaultPostForm("back", "/")
	email := strings.TrimSpace(c.PostForm("email"))

	if !strings.Contains(email, "@") {
		Flash(c, "Please enter a valid email address.")
		c.Redirect(http.StatusFound, back)
		return
	}

	if err := h.api.SubscribeNewsletter(c.Request.Context(), email); err != nil {
		Flash(c, api.Message(err, "Subscribing failed, please try again."))
		c.Redirect(http.StatusFound, back)
		return
	}

	Flash(c, "You are subscribed!")
	c.Redirect(http.StatusFound, back)
}
