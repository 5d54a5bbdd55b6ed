package models

import (
	"time"
)

type Post struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Description     string   `json:"description"` // rich HTML body
	Excerpt         string   `json:"excerpt"`
	Keywords        string   `json:"keywords"`
	Tags            TagList  `json:"tags"`
	Category        Category `json:"category"`
	IsFeatured      bool     `json:"isFeatured"`
	IsHot           bool     `json:"isHot"`
	IsPopular       bool     `json:"isPopular"`
	Status          Status   `json:"status"`
	RejectionReason string   `json:"rejectionReason,omitempty"`
	ImageURL        string   `json:"imageUrl"`
	User            User     `json:"user"`

	// Server-computed, never sent back on create/update.
	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"likedBy"`
	ReadTime  int       `json:"readTime"` // minutes
	CreatedAt time.Time `json:"createdAt"`
}

// OwnedBy reports whether u authored the post.
func (p *Post) OwnedBy(u *User) bool {
	return u != nil && p.User.ID != "" && p.User.ID == u.ID
}

// EditableBy gates the edit and delete paths: only the author, and only while
// the post has not been published.
func (p *Post) EditableBy(u *User) bool {
	return p.OwnedBy(u) && p.Status.AuthorEditable()
}

// LikedByUser reports whether u already liked the post.
func (p *Post) LikedByUser(u *User) bool {
	if u == nil {
		return false
	}
	for _, id := range p.LikedBy {
		if id == u.ID {
			return true
		}
	}
	return false
}
