// Package api is the typed client for the remote blog REST API. Every data
// operation of the site goes through here; the front end itself persists
// nothing beyond the visitor's session cookie.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// APIError is a non-2xx response from the API, carrying the server-provided
// message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401, i.e. the session expired or
// the credential was never valid.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Message extracts a user-facing string from err: the server message when
// present, else the given fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client for the API base URL from the environment.
func New() *Client {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		base = "http://localhost:5000/api"
	}
	return NewWithBase(base)
}

// NewWithBase builds a client against an explicit base URL, used by tests.
func NewWithBase(base string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(base, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
	}
}

// WithToken returns a copy of the client that attaches the bearer credential
// to every request. The zero-token client serves anonymous page loads.
func (c *Client) WithToken(token string) *Client {
	copied := *c
	copied.token = token
	return &copied
}

// errorBody is the API's error envelope.
type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope errorBody
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// getJSON issues a GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// sendJSON issues method with a JSON payload.
func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, nil, body, "application/json", out)
}
