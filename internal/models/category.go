package models

type Category struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PostCount   int    `json:"postCount"` // only populated by the with-count endpoint
}
