package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTemplates covers the views the handlers under test render, without
// dragging the full template tree into unit tests.
var testTemplates = template.Must(template.New("").Parse(`
{{define "error.html"}}error: {{.Error}}{{end}}
{{define "admin/queue.html"}}queue total={{.Total}} page={{.CurrentPage}}{{end}}
{{define "dashboard/myblogs.html"}}dashboard total={{.Total}}{{end}}
`))

// newHandlerRouter wires sessions plus a middleware that injects user as the
// signed-in visitor, mirroring what LoadUser does after a real login.
func newHandlerRouter(user *models.User, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(testTemplates)
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
			c.Set(middleware.TokenKey, token)
		}
		c.Next()
	})
	return r
}

func resetQueueCache() {
	utils.GetCache().Delete(pendingCacheKey)
}

func pendingPostJSON(id, slug string) map[string]interface{} {
	return map[string]interface{}{
		"id":        id,
		"slug":      slug,
		"title":     "Waiting For Review " + id,
		"status":    "pending",
		"user":      map[string]interface{}{"id": "u1", "username": "alice"},
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}
}

func TestQueueDeniedWithoutModeratorRole(t *testing.T) {
	resetQueueCache()

	var apiCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&apiCalls, 1)
	}))
	defer server.Close()

	h := NewAdminHandler(api.NewWithBase(server.URL))
	r := newHandlerRouter(&models.User{ID: "u1", Username: "alice", Role: models.RoleUser}, "tok")
	r.GET("/admin/queue", h.Queue)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/queue", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "administrators and editors")
	assert.Zero(t, atomic.LoadInt32(&apiCalls), "the gate must block before any fetch")
}

func TestQueueListsPendingPosts(t *testing.T) {
	resetQueueCache()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/blogs/pending", r.URL.Path)
		assert.Equal(t, "Bearer mod-tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"blogs": []interface{}{pendingPostJSON("p1", "a"), pendingPostJSON("p2", "b")},
		})
	}))
	defer server.Close()

	h := NewAdminHandler(api.NewWithBase(server.URL))
	r := newHandlerRouter(&models.User{ID: "m1", Username: "mod", Role: models.RoleAdmin}, "mod-tok")
	r.GET("/admin/queue", h.Queue)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/queue", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total=2")
}

func TestApproveRedirectsAndInvalidatesQueue(t *testing.T) {
	resetQueueCache()

	var approved int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/blogs/approve/p1":
			require.Equal(t, http.MethodPut, r.Method)
			atomic.AddInt32(&approved, 1)
			w.Write([]byte(`{}`))
		case r.URL.Path == "/blogs/pending":
			json.NewEncoder(w).Encode(map[string]interface{}{"blogs": []interface{}{}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	h := NewAdminHandler(api.NewWithBase(server.URL))
	r := newHandlerRouter(&models.User{ID: "m1", Username: "mod", Role: models.RoleEditor}, "mod-tok")
	r.POST("/admin/approve/:id", h.Approve)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/approve/p1", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/queue", w.Header().Get("Location"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&approved))

	// The debounced refresh should refill the cache shortly after.
	h.refresh.Cancel()
}

func TestRejectSendsReason(t *testing.T) {
	resetQueueCache()

	var gotReason string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blogs/reject/p1":
			var payload struct {
				Reason string `json:"reason"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			gotReason = payload.Reason
			w.Write([]byte(`{}`))
		case "/blogs/pending":
			json.NewEncoder(w).Encode(map[string]interface{}{"blogs": []interface{}{}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	h := NewAdminHandler(api.NewWithBase(server.URL))
	r := newHandlerRouter(&models.User{ID: "m1", Username: "mod", Role: models.RoleAdmin}, "mod-tok")
	r.POST("/admin/reject/:id", h.Reject)

	form := url.Values{"reason": {"Needs more sources"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/reject/p1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "Needs more sources", gotReason)
	h.refresh.Cancel()
}
