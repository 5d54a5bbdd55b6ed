package main

import (
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
	"inkwell/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// API client (the only data source this app has)
	client := api.New()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("inkwell_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r, client)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Inkwell server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	components, err := filepath.Glob(templatesDir + "/components/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files: base layout + components + the view itself
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, components...)
		files = append(files, view)
		return files
	}

	funcMap := templateFuncs()

	// Manual registration to ensure keys match handler expectation
	// Blog
	r.AddFromFilesFuncs("blog/list.html", funcMap, assemble(templatesDir+"/views/blog/list.html")...)
	r.AddFromFilesFuncs("blog/detail.html", funcMap, assemble(templatesDir+"/views/blog/detail.html")...)
	r.AddFromFilesFuncs("blog/compose.html", funcMap, assemble(templatesDir+"/views/blog/compose.html")...)
	r.AddFromFilesFuncs("blog/categories.html", funcMap, assemble(templatesDir+"/views/blog/categories.html")...)

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Dashboard
	r.AddFromFilesFuncs("dashboard/myblogs.html", funcMap, assemble(templatesDir+"/views/dashboard/myblogs.html")...)

	// Admin
	r.AddFromFilesFuncs("admin/queue.html", funcMap, assemble(templatesDir+"/views/admin/queue.html")...)

	// Misc
	r.AddFromFilesFuncs("contact.html", funcMap, assemble(templatesDir+"/views/contact.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			seconds := int(time.Since(timeVal).Seconds())
			switch {
			case seconds < 60:
				return fmt.Sprintf("%ds ago", seconds)
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			case seconds < 2592000:
				return fmt.Sprintf("%dd ago", seconds/86400)
			case seconds < 31536000:
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"stripHTML": utils.StripHTML,
		"truncate":  utils.Truncate,
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
	}
}
