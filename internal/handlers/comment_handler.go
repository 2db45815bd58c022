package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/akulakov/blogicum/internal/middleware"
	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/policy"
	"github.com/akulakov/blogicum/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles comment mutation flows under a post
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.POST("/posts/:id/comment", h.Add, requireLogin)
	e.GET("/posts/:id/edit_comment/:cid", h.EditForm, requireLogin)
	e.POST("/posts/:id/edit_comment/:cid", h.Edit, requireLogin)
	e.POST("/posts/:id/delete_comment/:cid", h.Delete, requireLogin)
}

// Add attaches a comment to a publicly visible post. The lookup itself
// excludes hidden and future-dated posts, so commenting on one fails as
// "not found" rather than as a permission error.
func (h *CommentHandler) Add(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetVisiblePostByID(postID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderCommentForm(c, form, post.ID, 0, "Comment text is required")
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: middleware.ViewerID(c),
		Text:     form.Text,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postURL(post.ID))
}

// EditForm renders the comment form pre-filled with the comment text
func (h *CommentHandler) EditForm(c echo.Context) error {
	comment, redirect, err := h.guardedComment(c)
	if err != nil {
		return err
	}
	if redirect != "" {
		return c.Redirect(http.StatusFound, redirect)
	}

	form := models.CommentForm{Text: comment.Text}
	return h.renderCommentForm(c, form, comment.PostID, comment.ID, "")
}

// Edit applies the submitted text to the comment
func (h *CommentHandler) Edit(c echo.Context) error {
	comment, redirect, err := h.guardedComment(c)
	if err != nil {
		return err
	}
	if redirect != "" {
		return c.Redirect(http.StatusFound, redirect)
	}

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderCommentForm(c, form, comment.PostID, comment.ID, "Comment text is required")
	}

	comment.Text = form.Text
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postURL(comment.PostID))
}

// Delete removes the comment
func (h *CommentHandler) Delete(c echo.Context) error {
	comment, redirect, err := h.guardedComment(c)
	if err != nil {
		return err
	}
	if redirect != "" {
		return c.Redirect(http.StatusFound, redirect)
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postURL(comment.PostID))
}

// guardedComment loads the comment from the :cid param, checks it belongs
// to the post in the path and applies the access guard. Ownership is
// checked on the comment itself, without re-applying post visibility, so
// authors keep control of their comments even when the parent post is
// later unpublished. Denied viewers are redirected to the post's detail
// page.
func (h *CommentHandler) guardedComment(c echo.Context) (*models.Comment, string, error) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return nil, "", err
	}
	commentID, err := parseIDParam(c, "cid")
	if err != nil {
		return nil, "", err
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return nil, "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.PostID != postID {
		return nil, "", echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	if !policy.CanModify(comment.AuthorID, middleware.ViewerID(c)) {
		return nil, postURL(comment.PostID), nil
	}
	return comment, "", nil
}

func (h *CommentHandler) renderCommentForm(c echo.Context, form models.CommentForm, postID, commentID uint, msg string) error {
	status := http.StatusOK
	if msg != "" {
		status = http.StatusBadRequest
	}
	return c.Render(status, "comment-form.html", struct {
		nav
		Form      models.CommentForm
		PostID    uint
		CommentID uint
		Error     string
	}{navFrom(c), form, postID, commentID, msg})
}
