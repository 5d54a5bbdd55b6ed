package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	api     *api.Client
	captcha *services.CaptchaService
}

func NewAuthHandler(client *api.Client) *AuthHandler {
	return &AuthHandler{
		api:     client,
		captcha: services.NewCaptchaService(),
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Sign in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{
			"Title": "Sign in",
			"Error": "Email and password are required",
			"Email": email,
		})
		return
	}

	session, err := h.api.Login(c.Request.Context(), email, password)
	if err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Sign in",
			"Error": api.Message(err, "Invalid email or password"),
			"Email": email,
		})
		return
	}

	if err := middleware.SaveSession(c, session.Token, &session.User); err != nil {
		Render(c, http.StatusInternalServerError, "auth/login.html", gin.H{
			"Title": "Sign in",
			"Error": "Could not start your session, please try again",
			"Email": email,
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	question, answer := h.captcha.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Create account", "Captcha": question})
}

// rerenderRegister refreshes the captcha and re-renders the form with an
// error, keeping the entered values except the passwords.
func (h *AuthHandler) rerenderRegister(c *gin.Context, code int, errMsg, username, email string) {
	question, answer := h.captcha.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	Render(c, code, "auth/register.html", gin.H{
		"Title":    "Create account",
		"Error":    errMsg,
		"Captcha":  question,
		"Username": username,
		"Email":    email,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")
	captchaInput := c.PostForm("captcha")

	session := sessions.Default(c)
	expected, ok := session.Get("captcha_answer").(int)
	if !ok || utils.StringToInt(captchaInput) != expected {
		h.rerenderRegister(c, http.StatusBadRequest, "Wrong answer, try again", username, email)
		return
	}
	session.Delete("captcha_answer")
	session.Save()

	if username == "" || !strings.Contains(email, "@") {
		h.rerenderRegister(c, http.StatusBadRequest, "A username and a valid email are required", username, email)
		return
	}
	if len(password) < 6 {
		h.rerenderRegister(c, http.StatusBadRequest, "Password must be at least 6 characters", username, email)
		return
	}
	if password != confirm {
		h.rerenderRegister(c, http.StatusBadRequest, "Passwords do not match", username, email)
		return
	}

	authSession, err := h.api.Register(c.Request.Context(), username, email, password)
	if err != nil {
		h.rerenderRegister(c, http.StatusConflict, api.Message(err, "Registration failed"), username, email)
		return
	}

	if err := middleware.SaveSession(c, authSession.Token, &authSession.User); err != nil {
		h.rerenderRegister(c, http.StatusInternalServerError, "Could not start your session, please try again", username, email)
		return
	}

	Flash(c, "Welcome to Inkwell!")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}
