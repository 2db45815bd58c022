package handlers

import (
	"html/template"
	"time"

	"github.com/akulakov/blogicum/internal/middleware"
	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/policy"
	"github.com/akulakov/blogicum/internal/render"
	"github.com/labstack/echo/v4"
)

// nav carries the viewer state every template needs for the header
type nav struct {
	LoggedIn bool
	Username string
}

func navFrom(c echo.Context) nav {
	return nav{
		LoggedIn: middleware.ViewerID(c) != policy.AnonymousID,
		Username: middleware.ViewerUsername(c),
	}
}

// postView is a post prepared for rendering: title and body sanitized,
// body converted from markdown, relations flattened for display.
type postView struct {
	ID             uint
	Title          string
	Text           template.HTML
	PubDate        string
	IsPublished    bool
	Hidden         bool
	Image          string
	AuthorName     string
	AuthorUsername string
	CategoryTitle  string
	CategorySlug   string
	LocationName   string
	CommentCount   int
}

func newPostView(p *models.Post, now time.Time) postView {
	v := postView{
		ID:             p.ID,
		Title:          render.SafeText(p.Title),
		Text:           render.SafeMarkdown(p.Text),
		PubDate:        p.PubDate.Format("2 Jan 2006 15:04"),
		IsPublished:    p.IsPublished,
		Hidden:         !policy.PostVisible(p, now),
		Image:          p.Image,
		AuthorName:     p.Author.FullName(),
		AuthorUsername: p.Author.Username,
		CommentCount:   p.CommentCount,
	}
	if p.Category != nil {
		v.CategoryTitle = p.Category.Title
		v.CategorySlug = p.Category.Slug
	}
	if p.Location != nil {
		v.LocationName = p.Location.Name
	}
	return v
}

// pageView is one listing page with pagination controls
type pageView struct {
	Posts      []postView
	Number     int
	TotalPages int
	HasNext    bool
	HasPrev    bool
	NextPage   int
	PrevPage   int
}

func newPageView(page *models.PostPage, now time.Time) pageView {
	posts := make([]postView, len(page.Items))
	for i := range page.Items {
		posts[i] = newPostView(&page.Items[i], now)
	}
	return pageView{
		Posts:      posts,
		Number:     page.Number,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
		NextPage:   page.Number + 1,
		PrevPage:   page.Number - 1,
	}
}

type commentView struct {
	ID        uint
	PostID    uint
	Author    string
	Text      string
	CreatedAt string
	CanEdit   bool
}

func newCommentView(cm *models.Comment, viewerID uint) commentView {
	return commentView{
		ID:        cm.ID,
		PostID:    cm.PostID,
		Author:    cm.Author.FullName(),
		Text:      render.SafeText(cm.Text),
		CreatedAt: cm.CreatedAt.Format("2 Jan 2006 15:04"),
		CanEdit:   policy.CanModify(cm.AuthorID, viewerID),
	}
}
