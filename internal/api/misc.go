package api

import (
	"context"
	"net/http"
)

// SubscribeNewsletter captures an email for the newsletter list.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) error {
	return c.sendJSON(ctx, http.MethodPost, "/newsletter/subscribe", map[string]string{"email": email}, nil)
}

// SendContact submits the contact form.
func (c *Client) SendContact(ctx context.Context, name, email, subject, message string) error {
	payload := map[string]string{
		"name":    name,
		"email":   email,
		"subject": subject,
		"message": message,
	}
	return c.sendJSON(ctx, http.MethodPost, "/contact", payload, nil)
}
