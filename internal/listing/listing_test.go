package listing

import (
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corpus builds 20 posts: 9 published, 6 pending, 5 rejected, with ascending
// creation times so ordering is easy to assert.
func corpus() []models.Post {
	statuses := make([]models.Status, 0, 20)
	for i := 0; i < 9; i++ {
		statuses = append(statuses, models.StatusPublished)
	}
	for i := 0; i < 6; i++ {
		statuses = append(statuses, models.StatusPending)
	}
	for i := 0; i < 5; i++ {
		statuses = append(statuses, models.StatusRejected)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]models.Post, 0, len(statuses))
	for i, s := range statuses {
		posts = append(posts, models.Post{
			ID:        fmt.Sprintf("p%02d", i),
			Title:     fmt.Sprintf("Post number %02d", i),
			Status:    s,
			Views:     i * 3,
			Likes:     (20 - i) % 7,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return posts
}

func TestApplyStatusFilter(t *testing.T) {
	posts := corpus()

	for status, want := range map[string]int{
		"published": 9,
		"pending":   6,
		"rejected":  5,
		"all":       20,
		"":          20,
	} {
		res := Apply(posts, Query{Status: status, PerPage: 100})
		assert.Equal(t, want, res.Total, "status %q", status)
	}
}

func TestApplySearch(t *testing.T) {
	posts := []models.Post{
		{Title: "Getting Started With React", Status: models.StatusPublished},
		{Title: "Go Concurrency", Excerpt: "Compared with React hooks", Status: models.StatusPublished},
		{Title: "Plain CSS", Description: "<p>No frameworks, not even React.</p>", Status: models.StatusPublished},
		{Title: "Unrelated", Status: models.StatusPublished},
	}

	res := Apply(posts, Query{Search: "react", PerPage: 100})
	assert.Equal(t, 3, res.Total, "search must match title, excerpt and stripped body, case-insensitively")

	res = Apply(posts, Query{Search: "REACT", PerPage: 100})
	assert.Equal(t, 3, res.Total)

	res = Apply(posts, Query{Search: "nothing matches this", PerPage: 100})
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Items)
}

func TestApplyPagination(t *testing.T) {
	posts := corpus()

	res := Apply(posts, Query{Page: 1, PerPage: 9})
	assert.Equal(t, 20, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Items, 9)

	res = Apply(posts, Query{Page: 3, PerPage: 9})
	assert.Len(t, res.Items, 2, "last page holds the remainder")
	assert.Equal(t, 3, res.Page)
}

func TestApplyPageClamping(t *testing.T) {
	posts := corpus()

	res := Apply(posts, Query{Page: 99, PerPage: 9})
	assert.Equal(t, 3, res.Page)
	assert.Len(t, res.Items, 2)

	res = Apply(posts, Query{Page: -5, PerPage: 9})
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Items, 9)
}

func TestApplyEmptyCollection(t *testing.T) {
	res := Apply(nil, Query{Page: 1, PerPage: 9})
	assert.Zero(t, res.Total)
	assert.Zero(t, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.Empty(t, res.Items)

	// Out-of-range requests against an empty collection clamp to page 1 too.
	res = Apply(nil, Query{Page: 7, PerPage: 9})
	assert.Equal(t, 1, res.Page)
	assert.Empty(t, res.Items)

	// Same when a filter empties the collection.
	res = Apply(corpus(), Query{Search: "no such post anywhere", Page: 7, PerPage: 9})
	assert.Zero(t, res.Total)
	assert.Equal(t, 1, res.Page)
}

func TestApplySortNewestDefault(t *testing.T) {
	posts := corpus()

	res := Apply(posts, Query{PerPage: 100})
	require.Len(t, res.Items, 20)
	assert.Equal(t, "p19", res.Items[0].ID)
	assert.Equal(t, "p00", res.Items[19].ID)
}

func TestApplySortOrders(t *testing.T) {
	posts := corpus()

	res := Apply(posts, Query{Sort: SortOldest, PerPage: 100})
	assert.Equal(t, "p00", res.Items[0].ID)

	res = Apply(posts, Query{Sort: SortViews, PerPage: 100})
	assert.Equal(t, "p19", res.Items[0].ID, "highest view count first")

	res = Apply(posts, Query{Sort: SortTitle, PerPage: 100})
	assert.Equal(t, "Post number 00", res.Items[0].Title)

	res = Apply(posts, Query{Sort: SortLikes, PerPage: 100})
	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i-1].Likes, res.Items[i].Likes)
	}
}

func TestApplyFilterThenPaginate(t *testing.T) {
	posts := corpus()

	// 6 pending posts at 9 per page fit on a single page.
	res := Apply(posts, Query{Status: "pending", Page: 1, PerPage: 9})
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.Len(t, res.Items, 6)
	for _, p := range res.Items {
		assert.Equal(t, models.StatusPending, p.Status)
	}
}
