package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PagesHandler serves the static about and rules pages
type PagesHandler struct{}

// NewPagesHandler creates a new PagesHandler
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// RegisterPageRoutes registers the static page routes
func (h *PagesHandler) RegisterPageRoutes(e *echo.Echo) {
	e.GET("/about", h.About)
	e.GET("/rules", h.Rules)
}

func (h *PagesHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", struct{ nav }{navFrom(c)})
}

func (h *PagesHandler) Rules(c echo.Context) error {
	return c.Render(http.StatusOK, "rules.html", struct{ nav }{navFrom(c)})
}
