package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CategoryHandler handles the per-category listing page
type CategoryHandler struct {
	categoryRepository repositories.CategoryRepository
	postRepository     repositories.PostRepository
	pageSize           int
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryRepo repositories.CategoryRepository, postRepo repositories.PostRepository, pageSize int) *CategoryHandler {
	return &CategoryHandler{
		categoryRepository: categoryRepo,
		postRepository:     postRepo,
		pageSize:           pageSize,
	}
}

// RegisterCategoryRoutes registers category-related routes
func (h *CategoryHandler) RegisterCategoryRoutes(e *echo.Echo) {
	e.GET("/category/:slug", h.CategoryPosts)
}

// CategoryPosts renders the paginated visible posts of one category. An
// unpublished category is a 404, exactly like a missing one.
func (h *CategoryHandler) CategoryPosts(c echo.Context) error {
	category, err := h.categoryRepository.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	page, err := h.postRepository.ListByCategory(category.ID, pageParam(c), h.pageSize, now)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "category.html", struct {
		nav
		Category *models.Category
		Page     pageView
	}{navFrom(c), category, newPageView(page, now)})
}
