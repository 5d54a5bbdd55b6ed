package api

import (
	"context"
	"fmt"

	"inkwell/internal/models"
)

type categoriesBody struct {
	Categories []models.Category `json:"categories"`
}

func validateCategories(cats []models.Category) error {
	for i := range cats {
		if cats[i].ID == "" || cats[i].Slug == "" {
			return fmt.Errorf("api: category missing id or slug")
		}
	}
	return nil
}

// Categories fetches the plain category list for form dropdowns.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var body categoriesBody
	if err := c.getJSON(ctx, "/blog-categories", nil, &body); err != nil {
		return nil, err
	}
	if err := validateCategories(body.Categories); err != nil {
		return nil, err
	}
	return body.Categories, nil
}

// CategoriesWithCount fetches categories with their published post counts,
// for the category index page.
func (c *Client) CategoriesWithCount(ctx context.Context) ([]models.Category, error) {
	var body categoriesBody
	if err := c.getJSON(ctx, "/blog-categories/with-count", nil, &body); err != nil {
		return nil, err
	}
	if err := validateCategories(body.Categories); err != nil {
		return nil, err
	}
	return body.Categories, nil
}
