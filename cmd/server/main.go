package main

import (
	"log"
	"net/http"

	"github.com/akulakov/blogicum/internal/render"
	"github.com/akulakov/blogicum/internal/router"
	"github.com/akulakov/blogicum/internal/validators"
	"github.com/akulakov/blogicum/pkg/config"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Template renderer
	registry, err := render.NewTemplateRegistry(cfg.TemplateDir)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = registry

	// Validator
	e.Validator = validators.NewValidator()

	// Error pages
	e.HTTPErrorHandler = httpErrorHandler

	// Setup global middleware
	router.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// httpErrorHandler renders the themed error pages. NotFound is the uniform
// signal for both missing and hidden content, so 404s are not logged.
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code != http.StatusNotFound {
		c.Logger().Error(err)
	}
	if c.Response().Committed {
		return
	}

	page := "500.html"
	switch code {
	case http.StatusForbidden:
		page = "403.html"
	case http.StatusNotFound:
		page = "404.html"
	}
	if err := c.Render(code, page, echo.Map{}); err != nil {
		c.Logger().Error(err)
	}
}
