package api

import (
	"context"
	"net/http"
	"net/url"

	"inkwell/internal/models"
)

// Pending fetches the moderation queue. Requires an admin or editor token;
// the API answers 403 otherwise.
func (c *Client) Pending(ctx context.Context) ([]models.Post, error) {
	var body blogsBody
	if err := c.getJSON(ctx, "/blogs/pending", nil, &body); err != nil {
		return nil, err
	}
	if err := validatePosts(body.Blogs); err != nil {
		return nil, err
	}
	return body.Blogs, nil
}

// Approve publishes a pending post.
func (c *Client) Approve(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodPut, "/blogs/approve/"+url.PathEscape(id), nil, nil)
}

// Reject declines a pending post with an optional free-text reason the
// author will see on their dashboard.
func (c *Client) Reject(ctx context.Context, id, reason string) error {
	payload := map[string]string{"reason": reason}
	return c.sendJSON(ctx, http.MethodPut, "/blogs/reject/"+url.PathEscape(id), payload, nil)
}
