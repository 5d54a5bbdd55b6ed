package handlers

import (
	"fmt"
	"net/http"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/listing"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

const publicPageSize = 9

type BlogHandler struct {
	api   *api.Client
	cache *utils.PageCache
}

func NewBlogHandler(client *api.Client) *BlogHandler {
	return &BlogHandler{
		api:   client,
		cache: utils.GetCache(),
	}
}

// authed returns a client carrying the visitor's bearer token.
func (h *BlogHandler) authed(c *gin.Context) *api.Client {
	return h.api.WithToken(middleware.TokenFrom(c))
}

// sidebarCategories is shared by every public page; the category set changes
// rarely, so one upstream call serves five minutes of traffic.
func (h *BlogHandler) sidebarCategories(c *gin.Context) []models.Category {
	data, err := h.cache.Do("categories:with-count", 5*time.Minute, func() (interface{}, error) {
		return h.api.CategoriesWithCount(c.Request.Context())
	})
	if err != nil {
		return nil
	}
	return data.([]models.Category)
}

// List renders the public home page: published posts with the API-side
// filters (category, search, flags, sort) passed straight through.
func (h *BlogHandler) List(c *gin.Context) {
	opts := api.ListOptions{
		Page:     utils.ParsePage(c.Query("page")),
		Limit:    publicPageSize,
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Featured: c.Query("featured") == "true",
		Hot:      c.Query("hot") == "true",
		Popular:  c.Query("popular") == "true",
		Sort:     c.Query("sort"),
	}

	fetch := func() (interface{}, error) {
		return h.api.ListPublished(c.Request.Context(), opts)
	}

	var list *api.PostList
	var err error
	if opts.Search == "" && opts.Category == "" && !opts.Featured && !opts.Hot && !opts.Popular && opts.Sort == "" {
		// Only the plain paged listing is cached; filtered views are cheap
		// enough to pass through.
		cacheKey := fmt.Sprintf("blog:list:page:%d", opts.Page)
		var data interface{}
		data, err = h.cache.Do(cacheKey, time.Minute, fetch)
		if err == nil {
			list = data.(*api.PostList)
		}
	} else {
		var data interface{}
		data, err = fetch()
		if err == nil {
			list = data.(*api.PostList)
		}
	}
	if err != nil {
		RenderError(c, http.StatusBadGateway, api.Message(err, "The blog service is unavailable right now, please try again."))
		return
	}

	siteURL := getSiteURL()
	fullURL := siteURL
	if opts.Page > 1 {
		fullURL = fmt.Sprintf("%s/?page=%d", siteURL, opts.Page)
	}

	Render(c, http.StatusOK, "blog/list.html", gin.H{
		"Title":       "Latest articles",
		"Posts":       list.Posts,
		"Categories":  h.sidebarCategories(c),
		"CurrentPage": list.Page,
		"TotalPages":  list.TotalPages,
		"Query":       c.Query("q"),
		"Sort":        opts.Sort,
		"Active":      "home",
		"Description": "Stories, tutorials and updates from the Inkwell community.",
		"FullURL":     fullURL,
	})
}

// ListByCategory renders one category's published posts.
func (h *BlogHandler) ListByCategory(c *gin.Context) {
	slug := c.Param("slug")
	page := utils.ParsePage(c.Query("page"))

	list, err := h.api.ListPublished(c.Request.Context(), api.ListOptions{
		Page:     page,
		Limit:    publicPageSize,
		Category: slug,
		Search:   c.Query("q"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		if api.IsNotFound(err) {
			Flash(c, "That category does not exist.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		RenderError(c, http.StatusBadGateway, api.Message(err, "The blog service is unavailable right now, please try again."))
		return
	}

	var active *models.Category
	for _, cat := range h.sidebarCategories(c) {
		if cat.Slug == slug {
			active = &cat
			break
		}
	}

	title := slug
	description := "Articles in the " + slug + " category."
	if active != nil {
		title = active.Name
		if active.Description != "" {
			description = active.Description
		}
	}

	Render(c, http.StatusOK, "blog/list.html", gin.H{
		"Title":       title,
		"Posts":       list.Posts,
		"Categories":  h.sidebarCategories(c),
		"Category":    active,
		"CurrentPage": list.Page,
		"TotalPages":  list.TotalPages,
		"Query":       c.Query("q"),
		"Sort":        c.Query("sort"),
		"Active":      "category",
		"Description": description,
		"FullURL":     fmt.Sprintf("%s/category/%s", getSiteURL(), slug),
	})
}

// Categories renders the category index with post counts.
func (h *BlogHandler) Categories(c *gin.Context) {
	cats := h.sidebarCategories(c)
	Render(c, http.StatusOK, "blog/categories.html", gin.H{
		"Title":       "Categories",
		"Categories":  cats,
		"Active":      "categories",
		"Description": "Browse Inkwell articles by topic.",
		"FullURL":     getSiteURL() + "/categories",
	})
}

// Detail renders a single published post plus its related posts. The shared
// render data is cached; the per-visitor liked state is computed per request.
func (h *BlogHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	cacheKey := "blog:detail:" + slug
	data, err := h.cache.Do(cacheKey, 5*time.Minute, func() (interface{}, error) {
		return h.api.GetBySlug(c.Request.Context(), slug)
	})
	if err != nil {
		if api.IsNotFound(err) {
			Flash(c, "That article could not be found.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		RenderError(c, http.StatusBadGateway, api.Message(err, "The blog service is unavailable right now, please try again."))
		return
	}
	detail := data.(*api.PostDetail)
	post := detail.Post

	user := middleware.UserFrom(c)

	keywords := post.Keywords
	if keywords == "" {
		keywords = post.Tags.String()
	}
	description := post.Excerpt
	if description == "" {
		description = utils.Truncate(utils.StripHTML(post.Description), 150)
	}

	Render(c, http.StatusOK, "blog/detail.html", gin.H{
		"Title":         post.Title,
		"Post":          post,
		"Content":       utils.SanitizeHTML(post.Description),
		"Related":       detail.Related,
		"IsLiked":       post.LikedByUser(user),
		"Categories":    h.sidebarCategories(c),
		"Description":   description,
		"Keywords":      keywords,
		"FullURL":       fmt.Sprintf("%s/blog/%s", getSiteURL(), post.Slug),
		"ImageURL":      post.ImageURL,
		"Author":        post.User.Username,
		"PublishedTime": post.CreatedAt.Format(time.RFC3339),
	})
}

// Like toggles the signed-in visitor's like on a post. Answered as JSON for
// the in-page toggle; no optimistic update, the count comes from the server.
func (h *BlogHandler) Like(c *gin.Context) {
	id := c.Param("id")

	result, err := h.authed(c).ToggleLike(c.Request.Context(), id)
	if err != nil {
		if api.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Your session has expired, please sign in again."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": api.Message(err, "Could not update like")})
		return
	}

	// The cached detail page embeds the like count; drop it so the next
	// load shows the fresh number.
	h.invalidatePost(c.PostForm("slug"))
	c.JSON(http.StatusOK, gin.H{"likes": result.Likes, "liked": result.Liked})
}

// invalidatePost drops the cached views of a post after a mutation.
func (h *BlogHandler) invalidatePost(slug string) {
	if slug != "" {
		h.cache.Delete("blog:detail:" + slug)
	}
	h.cache.Delete("blog:list:page:1")
}

// dashboardQuery builds the in-memory pipeline query from request parameters.
func dashboardQuery(c *gin.Context) listing.Query {
	return listing.Query{
		Status:  c.DefaultQuery("status", listing.StatusAll),
		Search:  c.Query("q"),
		Sort:    listing.Sort(c.DefaultQuery("sort", string(listing.SortNewest))),
		Page:    utils.ParsePage(c.Query("page")),
		PerPage: listing.DashboardPageSize,
	}
}
