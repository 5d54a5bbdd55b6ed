package handlers

import (
	"inkwell/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const flashKey = "flash"

// Render injects the variables every page needs (current user, path, popped
// flash notice) before handing off to the template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.UserFrom(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path
	if _, ok := obj["Active"]; !ok {
		obj["Active"] = ""
	}

	session := sessions.Default(c)
	if notice, ok := session.Get(flashKey).(string); ok && notice != "" {
		session.Delete(flashKey)
		session.Save()
		obj["Notice"] = notice
	}

	c.HTML(code, name, obj)
}

// Flash stores a one-shot notice shown on the next rendered page.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.Set(flashKey, message)
	session.Save()
}

// RenderError shows the full-page error view.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}
