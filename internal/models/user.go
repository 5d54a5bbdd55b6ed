package models

import (
	"time"
)

// Roles as issued by the API. Editors share the moderation surface with admins
// but cannot manage categories.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanModerate reports whether the user may see the approval queue and
// approve/reject pending posts.
func (u *User) CanModerate() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Role == RoleEditor
}
