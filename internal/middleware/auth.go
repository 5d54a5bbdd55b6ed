package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"inkwell/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CheckUserKey = "user"
	TokenKey     = "token"

	sessionTokenKey = "token"
	sessionUserKey  = "user"
)

// SaveSession mirrors an API-issued credential and user record into the
// cookie session, the reload-surviving analog of the browser's local storage.
func SaveSession(c *gin.Context, token string, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	session := sessions.Default(c)
	session.Set(sessionTokenKey, token)
	session.Set(sessionUserKey, string(raw))
	return session.Save()
}

// ClearSession logs the visitor out.
func ClearSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
}

// LoadUser hydrates the signed-in user from the session on every request.
// An expired bearer token clears the session so the visitor is treated as
// anonymous instead of hitting the API with a dead credential.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(sessionTokenKey).(string)
		rawUser, _ := session.Get(sessionUserKey).(string)

		if token != "" && rawUser != "" {
			if tokenExpired(token) {
				session.Clear()
				session.Save()
			} else {
				var user models.User
				if err := json.Unmarshal([]byte(rawUser), &user); err == nil && user.ID != "" {
					c.Set(CheckUserKey, &user)
					c.Set(TokenKey, token)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired redirects anonymous visitors to the login page.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the hydrated user, or nil for anonymous requests.
func UserFrom(c *gin.Context) *models.User {
	if u, exists := c.Get(CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// TokenFrom returns the bearer credential for the current request.
func TokenFrom(c *gin.Context) string {
	if t, exists := c.Get(TokenKey); exists {
		return t.(string)
	}
	return ""
}

// tokenExpired reads the token's exp claim without verifying the signature;
// verification is the API's job, we only want to know whether a round trip
// is pointless.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque token: let the API decide.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
