package router

import (
	"inkwell/internal/api"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, client *api.Client) {
	// Handlers
	authHandler := handlers.NewAuthHandler(client)
	blogHandler := handlers.NewBlogHandler(client)
	adminHandler := handlers.NewAdminHandler(client)
	contactHandler := handlers.NewContactHandler(client)
	newsletterHandler := handlers.NewNewsletterHandler(client)
	seoHandler := handlers.NewSEOHandler(client)

	// Public routes
	r.GET("/", blogHandler.List)                        // published listing
	r.GET("/blog/:slug", blogHandler.Detail)            // article page
	r.GET("/category/:slug", blogHandler.ListByCategory) // one category
	r.GET("/categories", blogHandler.Categories)        // category index

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/contact", contactHandler.Show)
	r.POST("/contact", contactHandler.Submit)
	r.POST("/newsletter/subscribe", newsletterHandler.Subscribe)

	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/write", blogHandler.ShowCreate)
		authorized.POST("/write", blogHandler.Create)
		authorized.GET("/write/check-slug", blogHandler.CheckSlug) // editor slug probe
		authorized.POST("/write/preview", blogHandler.Preview)     // markdown preview pane
		authorized.POST("/blog/:id/like", blogHandler.Like)
	}

	// Author dashboard
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("", blogHandler.Dashboard)
		dashboard.GET("/posts/:id/edit", blogHandler.ShowEdit)
		dashboard.POST("/posts/:id/edit", blogHandler.Update)
		dashboard.POST("/posts/:id/delete", blogHandler.Delete)
		dashboard.POST("/posts/:id/resubmit", blogHandler.Resubmit)
	}

	// Moderation (role checked inside the handlers, gate renders 403)
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.GET("/queue", adminHandler.Queue)
		admin.POST("/approve/:id", adminHandler.Approve)
		admin.POST("/reject/:id", adminHandler.Reject)
	}
}
