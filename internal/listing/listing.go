// Package listing applies status filter, free-text search, sort order and
// page slicing to an in-memory post collection. The whole pipeline re-runs on
// every request; with tens to low hundreds of posts per fetch, correctness
// beats cleverness.
package listing

import (
	"math"
	"sort"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/utils"
)

type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortTitle  Sort = "title"
	SortViews  Sort = "views"
	SortLikes  Sort = "likes"
)

// StatusAll passes every status through the filter.
const StatusAll = "all"

// DashboardPageSize is the fixed page size of the author dashboard and the
// moderation queue.
const DashboardPageSize = 9

// Query describes one view over a fetched collection.
type Query struct {
	Status  string // a models.Status value or StatusAll/""
	Search  string
	Sort    Sort
	Page    int
	PerPage int
}

// Result is the visible page plus the numbers the pagination controls need.
type Result struct {
	Items      []models.Post
	Total      int // filtered count, before slicing
	Page       int // clamped page actually shown
	TotalPages int
}

// Apply runs filter -> search -> sort -> paginate and returns the exact
// visible subset. Out-of-range pages clamp to the nearest valid page; an
// empty collection yields an empty page rather than an error.
func Apply(posts []models.Post, q Query) Result {
	filtered := make([]models.Post, 0, len(posts))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range posts {
		if q.Status != "" && q.Status != StatusAll && string(p.Status) != q.Status {
			continue
		}
		if search != "" && !matches(&p, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortPosts(filtered, q.Sort)

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DashboardPageSize
	}
	totalPages := int(math.Ceil(float64(len(filtered)) / float64(perPage)))

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages == 0 {
		// An empty collection still reports page 1, never the requested
		// out-of-range number.
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Items:      filtered[start:end],
		Total:      len(filtered),
		Page:       page,
		TotalPages: totalPages,
	}
}

// matches checks a case-insensitive substring against title, excerpt and the
// HTML-stripped body.
func matches(p *models.Post, search string) bool {
	if strings.Contains(strings.ToLower(p.Title), search) {
		return true
	}
	if p.Excerpt != "" && strings.Contains(strings.ToLower(p.Excerpt), search) {
		return true
	}
	if p.Description != "" && strings.Contains(strings.ToLower(utils.StripHTML(p.Description)), search) {
		return true
	}
	return false
}

func sortPosts(posts []models.Post, order Sort) {
	switch order {
	case SortOldest:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(posts, func(i, j int) bool {
			return strings.ToLower(posts[i].Title) < strings.ToLower(posts[j].Title)
		})
	case SortViews:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Views > posts[j].Views
		})
	case SortLikes:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Likes > posts[j].Likes
		})
	default: // SortNewest
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}
