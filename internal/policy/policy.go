// Package policy holds the visibility and authorization rules shared by all
// handlers. The same publication gate is applied here for single records and
// inside repository queries for listings.
package policy

import (
	"time"

	"github.com/akulakov/blogicum/internal/models"
)

// AnonymousID marks an unauthenticated viewer.
const AnonymousID uint = 0

// PostVisible reports whether the post passes the public publication gate
// at the given instant: the post and its category are published and the
// publication date is not in the future. A pub_date equal to now counts as
// published. Posts without a category are never publicly visible.
func PostVisible(p *models.Post, now time.Time) bool {
	if p == nil || !p.IsPublished {
		return false
	}
	if p.Category == nil || !p.Category.IsPublished {
		return false
	}
	return !p.PubDate.After(now)
}

// CanViewPost applies the detail-page rule: the public gate, plus the owner
// exception letting an author preview their own unpublished or future post.
func CanViewPost(p *models.Post, viewerID uint, now time.Time) bool {
	if p == nil {
		return false
	}
	if viewerID != AnonymousID && viewerID == p.AuthorID {
		return true
	}
	return PostVisible(p, now)
}

// CommentVisible reports whether a comment may be shown. Comment visibility
// is derived entirely from its parent post; c.Post must be loaded.
func CommentVisible(c *models.Comment, now time.Time) bool {
	if c == nil {
		return false
	}
	return PostVisible(&c.Post, now)
}

// CanModify is the access guard for edit and delete: only the authenticated
// author of a resource may mutate it.
func CanModify(ownerID, viewerID uint) bool {
	return viewerID != AnonymousID && viewerID == ownerID
}

// CanComment reports whether the viewer may add a comment to the post:
// any authenticated viewer, but only on a publicly visible post. The owner
// exception deliberately does not apply here.
func CanComment(p *models.Post, viewerID uint, now time.Time) bool {
	return viewerID != AnonymousID && PostVisible(p, now)
}
