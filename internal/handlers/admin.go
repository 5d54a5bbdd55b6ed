package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/listing"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

const pendingCacheKey = "admin:pending"

type AdminHandler struct {
	api     *api.Client
	cache   *utils.PageCache
	refresh *utils.Debouncer
}

func NewAdminHandler(client *api.Client) *AdminHandler {
	return &AdminHandler{
		api:   client,
		cache: utils.GetCache(),
		// A burst of approve/reject clicks collapses into one queue refetch
		// shortly after the last action.
		refresh: utils.NewDebouncer(300 * time.Millisecond),
	}
}

// checkModerator enforces the role gate. Non-moderators get the blocking
// access-denied page and no fetch is issued on their behalf.
func (h *AdminHandler) checkModerator(c *gin.Context) *models.User {
	user := middleware.UserFrom(c)
	if !user.CanModerate() {
		RenderError(c, http.StatusForbidden, "The approval queue is only available to administrators and editors.")
		return nil
	}
	return user
}

func (h *AdminHandler) fetchPending(ctx context.Context, token string) ([]models.Post, error) {
	data, err := h.cache.Do(pendingCacheKey, 30*time.Second, func() (interface{}, error) {
		return h.api.WithToken(token).Pending(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]models.Post), nil
}

// Queue renders the moderation queue: pending posts only, with the same
// in-memory search/sort/paging pipeline as the author dashboard.
func (h *AdminHandler) Queue(c *gin.Context) {
	if h.checkModerator(c) == nil {
		return
	}

	posts, err := h.fetchPending(c.Request.Context(), middleware.TokenFrom(c))
	if err != nil {
		if api.IsUnauthorized(err) {
			middleware.ClearSession(c)
			c.Redirect(http.StatusFound, "/login")
			return
		}
		RenderError(c, http.StatusBadGateway, api.Message(err, "Could not load the approval queue, please try again."))
		return
	}

	query := dashboardQuery(c)
	query.Status = string(models.StatusPending)
	result := listing.Apply(posts, query)

	Render(c, http.StatusOK, "admin/queue.html", gin.H{
		"Title":       "Approval queue",
		"Posts":       result.Items,
		"Total":       result.Total,
		"CurrentPage": result.Page,
		"TotalPages":  result.TotalPages,
		"Query":       query.Search,
		"Active":      "admin",
	})
}

// scheduleRefresh invalidates the queue cache now and schedules a debounced
// refill so the next page load is warm again.
func (h *AdminHandler) scheduleRefresh(token string) {
	h.cache.Delete(pendingCacheKey)
	h.refresh.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := h.fetchPending(ctx, token); err != nil {
			log.Printf("[admin] queue refresh failed: %v", err)
		}
	})
}

// Approve publishes a pending post.
func (h *AdminHandler) Approve(c *gin.Context) {
	user := h.checkModerator(c)
	if user == nil {
		return
	}
	id := c.Param("id")

	if _, err := models.Transition(models.StatusPending, models.ActionApprove, user); err != nil {
		RenderError(c, http.StatusForbidden, err.Error())
		return
	}

	token := middleware.TokenFrom(c)
	if err := h.api.WithToken(token).Approve(c.Request.Context(), id); err != nil {
		Flash(c, api.Message(err, "Approving failed, please try again."))
		c.Redirect(http.StatusFound, "/admin/queue")
		return
	}

	h.scheduleRefresh(token)
	h.cache.Delete("blog:list:page:1")
	Flash(c, "Post approved and published.")
	c.Redirect(http.StatusFound, "/admin/queue")
}

// Reject declines a pending post with an optional reason the author sees on
// their dashboard. Destructive, so the queue only updates after the API
// confirms.
func (h *AdminHandler) Reject(c *gin.Context) {
	user := h.checkModerator(c)
	if user == nil {
		return
	}
	id := c.Param("id")
	reason := c.PostForm("reason")

	if _, err := models.Transition(models.StatusPending, models.ActionReject, user); err != nil {
		RenderError(c, http.StatusForbidden, err.Error())
		return
	}

	token := middleware.TokenFrom(c)
	if err := h.api.WithToken(token).Reject(c.Request.Context(), id, reason); err != nil {
		Flash(c, api.Message(err, "Rejecting failed, please try again."))
		c.Redirect(http.StatusFound, "/admin/queue")
		return
	}

	h.scheduleRefresh(token)
	Flash(c, "Post rejected.")
	c.Redirect(http.StatusFound, "/admin/queue")
}
