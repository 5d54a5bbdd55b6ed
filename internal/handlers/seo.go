package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	api   *api.Client
	cache *utils.PageCache
}

func NewSEOHandler(client *api.Client) *SEOHandler {
	return &SEOHandler{api: client, cache: utils.GetCache()}
}

func getSiteURL() string {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "https://inkwell.blog"
	}
	return strings.TrimSuffix(siteURL, "/")
}

func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /dashboard
Disallow: /admin
Disallow: /login
Disallow: /signup
Disallow: /write

Sitemap: %s/sitemap.xml
`, getSiteURL())

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML builds the sitemap from the newest published posts and the
// category index. Regenerated at most once per hour.
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	data, err := h.cache.Do("seo:sitemap", time.Hour, func() (interface{}, error) {
		list, err := h.api.ListPublished(c.Request.Context(), api.ListOptions{Limit: 200, Sort: "newest"})
		if err != nil {
			return nil, err
		}
		cats, err := h.api.CategoriesWithCount(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return buildSitemap(list.Posts, cats), nil
	})
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, data.(string))
}

func buildSitemap(posts []models.Post, cats []models.Category) string {
	siteURL := getSiteURL()
	now := time.Now().Format("2006-01-02")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeURL := func(loc, lastmod, changefreq, priority string) {
		fmt.Fprintf(&b, "  <url>\n    <loc>%s</loc>\n    <lastmod>%s</lastmod>\n    <changefreq>%s</changefreq>\n    <priority>%s</priority>\n  </url>\n",
			loc, lastmod, changefreq, priority)
	}

	writeURL(siteURL+"/", now, "daily", "1.0")
	writeURL(siteURL+"/categories", now, "weekly", "0.7")
	writeURL(siteURL+"/contact", now, "monthly", "0.3")

	for _, cat := range cats {
		writeURL(siteURL+"/category/"+cat.Slug, now, "daily", "0.8")
	}
	for _, post := range posts {
		writeURL(siteURL+"/blog/"+post.Slug, post.CreatedAt.Format("2006-01-02"), "weekly", "0.9")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}
