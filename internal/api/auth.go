package api

import (
	"context"
	"fmt"
	"net/http"

	"inkwell/internal/models"
)

// Session is an issued credential plus the authenticated user record. Both
// are mirrored into the visitor's cookie session so a page reload does not
// log them out.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func validateSession(s *Session) error {
	if s.Token == "" {
		return fmt.Errorf("api: session missing token")
	}
	if s.User.ID == "" {
		return fmt.Errorf("api: session missing user")
	}
	return nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}
	var s Session
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", payload, &s); err != nil {
		return nil, err
	}
	if err := validateSession(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	var s Session
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/register", payload, &s); err != nil {
		return nil, err
	}
	if err := validateSession(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
