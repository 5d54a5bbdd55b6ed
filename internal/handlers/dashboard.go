package handlers

import (
	"net/http"

	"inkwell/internal/api"
	"inkwell/internal/listing"
	"inkwell/internal/models"

	"github.com/gin-gonic/gin"
)

// Dashboard renders the author's posts across every status. The collection
// is fetched once per page load; filter, search, sort and paging all run
// in-memory so switching views never refetches.
func (h *BlogHandler) Dashboard(c *gin.Context) {
	posts, err := h.authed(c).MyBlogs(c.Request.Context())
	if err != nil {
		if api.IsUnauthorized(err) {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		RenderError(c, http.StatusBadGateway, api.Message(err, "Could not load your posts, please try again."))
		return
	}

	query := dashboardQuery(c)
	result := listing.Apply(posts, query)

	counts := map[string]int{"all": len(posts)}
	for _, p := range posts {
		counts[string(p.Status)]++
	}

	Render(c, http.StatusOK, "dashboard/myblogs.html", gin.H{
		"Title":        "My posts",
		"Posts":        result.Items,
		"Total":        result.Total,
		"CurrentPage":  result.Page,
		"TotalPages":   result.TotalPages,
		"StatusFilter": query.Status,
		"Query":        query.Search,
		"Sort":         string(query.Sort),
		"Counts":       counts,
		"Active":       "dashboard",
		"Statuses": []string{
			string(models.StatusPending),
			string(models.StatusPublished),
			string(models.StatusRejected),
		},
	})
}
