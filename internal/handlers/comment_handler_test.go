package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/akulakov/blogicum/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bobComment(id, postID uint) *models.Comment {
	return &models.Comment{
		ID:       id,
		PostID:   postID,
		AuthorID: bobID,
		Author:   models.User{ID: bobID, Username: "bob"},
		Text:     "Nice one",
	}
}

func TestAddComment(t *testing.T) {
	e := newTestEcho(t)
	comments := newFakeCommentRepo()
	h := NewCommentHandler(comments, newFakePostRepo(visiblePost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{"text": {"First!"}}), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asViewer(c, bobID, "bob")

	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/1", rec.Header().Get(echo.HeaderLocation))

	stored, err := comments.GetCommentByID(101)
	require.NoError(t, err)
	assert.Equal(t, bobID, stored.AuthorID)
	assert.Equal(t, "First!", stored.Text)
}

func TestAddCommentToHiddenPostIsNotFound(t *testing.T) {
	e := newTestEcho(t)
	h := NewCommentHandler(newFakeCommentRepo(), newFakePostRepo(draftPost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{"text": {"First!"}}), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	// Even the author cannot comment on a post the public cannot see
	asViewer(c, aliceID, "alice")

	err := h.Add(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestAddCommentEmptyText(t *testing.T) {
	e := newTestEcho(t)
	comments := newFakeCommentRepo()
	h := NewCommentHandler(comments, newFakePostRepo(visiblePost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{"text": {""}}), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asViewer(c, bobID, "bob")

	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, comments.comments)
}

func TestEditCommentByNonOwnerRedirects(t *testing.T) {
	e := newTestEcho(t)
	comments := newFakeCommentRepo(bobComment(5, 1))
	h := NewCommentHandler(comments, newFakePostRepo(visiblePost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{"text": {"Hijacked"}}), rec)
	c.SetParamNames("id", "cid")
	c.SetParamValues("1", "5")
	// The post author does not own the comment
	asViewer(c, aliceID, "alice")

	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/1", rec.Header().Get(echo.HeaderLocation))

	stored, _ := comments.GetCommentByID(5)
	assert.Equal(t, "Nice one", stored.Text)
}

func TestEditOwnCommentOnNowHiddenPost(t *testing.T) {
	// Unpublishing a post does not take comment authors' own comments
	// away from them.
	e := newTestEcho(t)
	comments := newFakeCommentRepo(bobComment(5, 1))
	h := NewCommentHandler(comments, newFakePostRepo(draftPost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{"text": {"Edited"}}), rec)
	c.SetParamNames("id", "cid")
	c.SetParamValues("1", "5")
	asViewer(c, bobID, "bob")

	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusFound, rec.Code)

	stored, _ := comments.GetCommentByID(5)
	assert.Equal(t, "Edited", stored.Text)
}

func TestEditCommentUnderWrongPost(t *testing.T) {
	e := newTestEcho(t)
	comments := newFakeCommentRepo(bobComment(5, 2))
	h := NewCommentHandler(comments, newFakePostRepo(visiblePost(1), visiblePost(2)))

	rec := httptest.NewRecorder()
	c := e.NewContext(getRequest(), rec)
	c.SetParamNames("id", "cid")
	c.SetParamValues("1", "5")
	asViewer(c, bobID, "bob")

	err := h.EditForm(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteCommentByOwner(t *testing.T) {
	e := newTestEcho(t)
	comments := newFakeCommentRepo(bobComment(5, 1))
	h := NewCommentHandler(comments, newFakePostRepo(visiblePost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{}), rec)
	c.SetParamNames("id", "cid")
	c.SetParamValues("1", "5")
	asViewer(c, bobID, "bob")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/1", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []uint{5}, comments.deleted)
}

func TestDeleteCommentByNonOwnerRedirects(t *testing.T) {
	e := newTestEcho(t)
	comments := newFakeCommentRepo(bobComment(5, 1))
	h := NewCommentHandler(comments, newFakePostRepo(visiblePost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{}), rec)
	c.SetParamNames("id", "cid")
	c.SetParamValues("1", "5")
	asViewer(c, aliceID, "alice")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/1", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, comments.deleted)
}

func TestDeleteMissingComment(t *testing.T) {
	e := newTestEcho(t)
	h := NewCommentHandler(newFakeCommentRepo(), newFakePostRepo(visiblePost(1)))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(url.Values{}), rec)
	c.SetParamNames("id", "cid")
	c.SetParamValues("1", "99")
	asViewer(c, bobID, "bob")

	err := h.Delete(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
