package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"inkwell/internal/models"
)

// ListOptions mirrors the query parameters of GET /blogs/published.
type ListOptions struct {
	Page     int
	Limit    int
	Category string // category slug
	Search   string
	Featured bool
	Hot      bool
	Popular  bool
	Sort     string
}

// PostList is a paged slice of published posts as returned by the API.
type PostList struct {
	Posts      []models.Post `json:"blogs"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// PostDetail is a single published post plus the related posts the API picks
// for the sidebar.
type PostDetail struct {
	Post    models.Post   `json:"blog"`
	Related []models.Post `json:"related"`
}

type blogsBody struct {
	Blogs []models.Post `json:"blogs"`
}

type blogBody struct {
	Blog models.Post `json:"blog"`
}

// validatePost rejects structurally broken API responses instead of letting
// half-empty posts leak into templates.
func validatePost(p *models.Post) error {
	if p.ID == "" {
		return fmt.Errorf("api: post missing id")
	}
	if p.Slug == "" {
		return fmt.Errorf("api: post %s missing slug", p.ID)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("api: post %s has unknown status %q", p.ID, p.Status)
	}
	return nil
}

func validatePosts(posts []models.Post) error {
	for i := range posts {
		if err := validatePost(&posts[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListPublished fetches the public listing.
func (c *Client) ListPublished(ctx context.Context, opts ListOptions) (*PostList, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Featured {
		q.Set("featured", "true")
	}
	if opts.Hot {
		q.Set("hot", "true")
	}
	if opts.Popular {
		q.Set("popular", "true")
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}

	var list PostList
	if err := c.getJSON(ctx, "/blogs/published", q, &list); err != nil {
		return nil, err
	}
	if err := validatePosts(list.Posts); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetBySlug fetches a published post and its related posts.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*PostDetail, error) {
	var detail PostDetail
	if err := c.getJSON(ctx, "/blogs/slug/"+url.PathEscape(slug), nil, &detail); err != nil {
		return nil, err
	}
	if err := validatePost(&detail.Post); err != nil {
		return nil, err
	}
	return &detail, nil
}

// MyBlogs fetches the signed-in author's posts across all statuses.
func (c *Client) MyBlogs(ctx context.Context) ([]models.Post, error) {
	var body blogsBody
	if err := c.getJSON(ctx, "/blogs/my-blogs", nil, &body); err != nil {
		return nil, err
	}
	if err := validatePosts(body.Blogs); err != nil {
		return nil, err
	}
	return body.Blogs, nil
}

// GetForEdit fetches a single post with ownership metadata for the edit form.
func (c *Client) GetForEdit(ctx context.Context, id string) (*models.Post, error) {
	var body blogBody
	if err := c.getJSON(ctx, "/blogs/user/"+url.PathEscape(id), nil, &body); err != nil {
		return nil, err
	}
	if err := validatePost(&body.Blog); err != nil {
		return nil, err
	}
	return &body.Blog, nil
}

// CheckSlug asks the API whether slug is still free.
func (c *Client) CheckSlug(ctx context.Context, slug string) (bool, error) {
	var body struct {
		Available bool `json:"available"`
	}
	if err := c.getJSON(ctx, "/blogs/check-slug/"+url.PathEscape(slug), nil, &body); err != nil {
		return false, err
	}
	return body.Available, nil
}

// CreatePost submits a new post as multipart form data. The API assigns
// id and forces status to pending.
func (c *Client) CreatePost(ctx context.Context, body []byte, contentType string) (*models.Post, error) {
	var out blogBody
	if err := c.do(ctx, http.MethodPost, "/blogs", nil, bytes.NewReader(body), contentType, &out); err != nil {
		return nil, err
	}
	if err := validatePost(&out.Blog); err != nil {
		return nil, err
	}
	return &out.Blog, nil
}

// UpdatePost resubmits an edited post. The API re-enters it into review.
func (c *Client) UpdatePost(ctx context.Context, id string, body []byte, contentType string) (*models.Post, error) {
	var out blogBody
	if err := c.do(ctx, http.MethodPut, "/blogs/user/"+url.PathEscape(id), nil, bytes.NewReader(body), contentType, &out); err != nil {
		return nil, err
	}
	if err := validatePost(&out.Blog); err != nil {
		return nil, err
	}
	return &out.Blog, nil
}

// RequestReapproval resubmits a rejected post without content changes.
func (c *Client) RequestReapproval(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodPut, "/blogs/request-reapproval/"+url.PathEscape(id), nil, nil)
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// ToggleLike flips the signed-in user's like on a post.
func (c *Client) ToggleLike(ctx context.Context, id string) (*LikeResult, error) {
	var out LikeResult
	if err := c.sendJSON(ctx, http.MethodPut, "/blogs/"+url.PathEscape(id)+"/like", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes the author's own non-published post. Terminal: there is
// no client-side soft delete.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/blogs/"+url.PathEscape(id), nil, nil, "", nil)
}
