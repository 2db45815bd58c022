package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/akulakov/blogicum/internal/middleware"
	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ProfileHandler handles the public profile page and profile editing
type ProfileHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	pageSize       int
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, pageSize int) *ProfileHandler {
	return &ProfileHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		pageSize:       pageSize,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/profile/edit", h.EditForm, requireLogin)
	e.POST("/profile/edit", h.Edit, requireLogin)
	e.GET("/profile/:username", h.Profile)
}

// Profile renders a user's paginated posts. Users browsing their own
// profile see every post they wrote, drafts and scheduled ones included;
// everyone else only sees what passes the public publication gate.
func (h *ProfileHandler) Profile(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	isOwner := middleware.ViewerID(c) == user.ID
	page, err := h.postRepository.ListByAuthor(user.ID, isOwner, pageParam(c), h.pageSize, now)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "profile.html", struct {
		nav
		Profile  *models.User
		FullName string
		IsOwner  bool
		Page     pageView
	}{navFrom(c), user, user.FullName(), isOwner, newPageView(page, now)})
}

// EditForm renders the profile form with the viewer's current fields
func (h *ProfileHandler) EditForm(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(middleware.ViewerID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	form := models.UpdateProfileRequest{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	return h.renderEditForm(c, form, "")
}

// Edit updates the viewer's own first/last name and email
func (h *ProfileHandler) Edit(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(middleware.ViewerID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	var form models.UpdateProfileRequest
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return h.renderEditForm(c, form, "Please enter a valid email address")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user.FirstName = form.FirstName
	user.LastName = form.LastName
	if form.Email != "" {
		user.Email = form.Email
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *ProfileHandler) renderEditForm(c echo.Context, form models.UpdateProfileRequest, msg string) error {
	status := http.StatusOK
	if msg != "" {
		status = http.StatusBadRequest
	}
	return c.Render(status, "profile-edit.html", struct {
		nav
		Form  models.UpdateProfileRequest
		Error string
	}{navFrom(c), form, msg})
}
