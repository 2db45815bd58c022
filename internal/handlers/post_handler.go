package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akulakov/blogicum/internal/middleware"
	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/policy"
	"github.com/akulakov/blogicum/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles the index, detail and post mutation pages
type PostHandler struct {
	postRepository     repositories.PostRepository
	commentRepository  repositories.CommentRepository
	categoryRepository repositories.CategoryRepository
	locationRepository repositories.LocationRepository
	pageSize           int
	uploadDir          string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	categoryRepo repositories.CategoryRepository,
	locationRepo repositories.LocationRepository,
	pageSize int,
	uploadDir string,
) *PostHandler {
	return &PostHandler{
		postRepository:     postRepo,
		commentRepository:  commentRepo,
		categoryRepository: categoryRepo,
		locationRepository: locationRepo,
		pageSize:           pageSize,
		uploadDir:          uploadDir,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/", h.Index)
	e.GET("/posts/:id", h.Detail)
	e.GET("/posts/create", h.CreateForm, requireLogin)
	e.POST("/posts/create", h.Create, requireLogin)
	e.GET("/posts/:id/edit", h.EditForm, requireLogin)
	e.POST("/posts/:id/edit", h.Edit, requireLogin)
	e.POST("/posts/:id/delete", h.Delete, requireLogin)
}

// Index renders the paginated listing of publicly visible posts
func (h *PostHandler) Index(c echo.Context) error {
	now := time.Now()
	page, err := h.postRepository.ListPublished(pageParam(c), h.pageSize, now)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "index.html", struct {
		nav
		Page pageView
	}{navFrom(c), newPageView(page, now)})
}

// Detail renders one post with its comments and the comment form. The
// public publication gate applies, except that authors always see their
// own posts, published or not.
func (h *PostHandler) Detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	viewerID := middleware.ViewerID(c)
	if !policy.CanViewPost(post, viewerID, now) {
		// Hidden posts are indistinguishable from missing ones
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	commentViews := make([]commentView, len(comments))
	for i := range comments {
		commentViews[i] = newCommentView(&comments[i], viewerID)
	}

	return c.Render(http.StatusOK, "detail.html", struct {
		nav
		Post     postView
		Comments []commentView
		CanEdit  bool
	}{navFrom(c), newPostView(post, now), commentViews, policy.CanModify(post.AuthorID, viewerID)})
}

// postFormData is what the create/edit template renders
type postFormData struct {
	nav
	Form       models.PostForm
	PostID     uint
	Categories []models.Category
	Locations  []models.Location
	Error      string
}

func (h *PostHandler) formData(c echo.Context, form models.PostForm, postID uint, formErr string) (*postFormData, error) {
	categories, err := h.categoryRepository.GetCategories()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	locations, err := h.locationRepository.GetLocations()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return &postFormData{navFrom(c), form, postID, categories, locations, formErr}, nil
}

// CreateForm renders the empty post form
func (h *PostHandler) CreateForm(c echo.Context) error {
	form := models.PostForm{PubDate: time.Now().Format(pubDateLayout), IsPublished: true}
	data, err := h.formData(c, form, 0, "")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "post-form.html", data)
}

// Create saves a new post owned by the viewer and redirects to their profile
func (h *PostHandler) Create(c echo.Context) error {
	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&form); err != nil {
		return h.renderFormError(c, form, 0, "Title, text and publication date are required")
	}
	pubDate, err := time.Parse(pubDateLayout, form.PubDate)
	if err != nil {
		return h.renderFormError(c, form, 0, "Invalid publication date")
	}

	image, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     pubDate,
		IsPublished: form.IsPublished,
		Image:       image,
		AuthorID:    middleware.ViewerID(c),
		CategoryID:  optionalID(form.CategoryID),
		LocationID:  optionalID(form.LocationID),
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/profile/"+middleware.ViewerUsername(c))
}

// EditForm renders the post form pre-filled with the post's fields
func (h *PostHandler) EditForm(c echo.Context) error {
	post, redirect, err := h.guardedPost(c)
	if err != nil {
		return err
	}
	if redirect != "" {
		return c.Redirect(http.StatusFound, redirect)
	}

	form := models.PostForm{
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate.Format(pubDateLayout),
		IsPublished: post.IsPublished,
	}
	if post.CategoryID != nil {
		form.CategoryID = *post.CategoryID
	}
	if post.LocationID != nil {
		form.LocationID = *post.LocationID
	}

	data, err := h.formData(c, form, post.ID, "")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "post-form.html", data)
}

// Edit applies the submitted form to the post and redirects to its detail page
func (h *PostHandler) Edit(c echo.Context) error {
	post, redirect, err := h.guardedPost(c)
	if err != nil {
		return err
	}
	if redirect != "" {
		return c.Redirect(http.StatusFound, redirect)
	}

	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderFormError(c, form, post.ID, "Title, text and publication date are required")
	}
	pubDate, err := time.Parse(pubDateLayout, form.PubDate)
	if err != nil {
		return h.renderFormError(c, form, post.ID, "Invalid publication date")
	}

	image, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if image != "" {
		post.Image = image
	}

	post.Title = form.Title
	post.Text = form.Text
	post.PubDate = pubDate
	post.IsPublished = form.IsPublished
	post.CategoryID = optionalID(form.CategoryID)
	post.LocationID = optionalID(form.LocationID)

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postURL(post.ID))
}

// Delete removes the post together with its comments
func (h *PostHandler) Delete(c echo.Context) error {
	post, redirect, err := h.guardedPost(c)
	if err != nil {
		return err
	}
	if redirect != "" {
		return c.Redirect(http.StatusFound, redirect)
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/")
}

// guardedPost loads the post from the :id param and applies the access
// guard. A missing post is a 404; a post owned by someone else yields a
// redirect to that post's detail page rather than an error, so "can't
// edit" stays distinct from "doesn't exist".
func (h *PostHandler) guardedPost(c echo.Context) (*models.Post, string, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, "", err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !policy.CanModify(post.AuthorID, middleware.ViewerID(c)) {
		return nil, postURL(post.ID), nil
	}
	return post, "", nil
}

func (h *PostHandler) renderFormError(c echo.Context, form models.PostForm, postID uint, msg string) error {
	data, err := h.formData(c, form, postID, msg)
	if err != nil {
		return err
	}
	return c.Render(http.StatusBadRequest, "post-form.html", data)
}

// saveImage stores an uploaded post image under the upload directory with
// a random filename and returns its public URL. No file attached is not
// an error.
func (h *PostHandler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + filename, nil
}
