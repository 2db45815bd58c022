package repositories

import (
	"time"

	"github.com/akulakov/blogicum/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// commentCountSelect annotates each row with the total number of comments
// on the post, deliberately unfiltered by comment visibility.
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetVisiblePostByID(id uint, now time.Time) (*models.Post, error)
	ListPublished(page, pageSize int, now time.Time) (*models.PostPage, error)
	ListByCategory(categoryID uint, page, pageSize int, now time.Time) (*models.PostPage, error)
	ListByAuthor(authorID uint, includeHidden bool, page, pageSize int, now time.Time) (*models.PostPage, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// published builds the base query for publicly visible posts: the post is
// published, its publication date has passed and its category is published.
// The inner join excludes posts without a category, matching the gate.
func (r *PostgresPostRepository) published(now time.Time) *gorm.DB {
	return r.db.Model(&models.Post{}).
		Joins("JOIN categories ON categories.id = posts.category_id AND categories.is_published = ?", true).
		Where("posts.is_published = ? AND posts.pub_date <= ?", true, now)
}

// listPage counts the filtered query, then fetches one ordered page with
// comment counts and display relations. Ordering is pub_date descending
// with id descending as the deterministic tie-breaker.
func (r *PostgresPostRepository) listPage(query *gorm.DB, page, pageSize int) (*models.PostPage, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := query.Session(&gorm.Session{}).
		Select(commentCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC, posts.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return models.NewPostPage(posts, page, pageSize, total), nil
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Omit(clause.Associations).Create(post).Error
}

// GetPostByID retrieves a post with its display relations, without any
// visibility filter. Callers apply the visibility policy themselves so the
// owner exception can be honored.
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetVisiblePostByID retrieves a post only if it passes the public
// publication gate. Used by the comment-add flow, where a hidden post must
// look like it does not exist.
func (r *PostgresPostRepository) GetVisiblePostByID(id uint, now time.Time) (*models.Post, error) {
	var post models.Post
	err := r.published(now).
		Preload("Author").
		Preload("Category").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished returns one page of publicly visible posts for the index
func (r *PostgresPostRepository) ListPublished(page, pageSize int, now time.Time) (*models.PostPage, error) {
	return r.listPage(r.published(now), page, pageSize)
}

// ListByCategory returns one page of publicly visible posts in a category
func (r *PostgresPostRepository) ListByCategory(categoryID uint, page, pageSize int, now time.Time) (*models.PostPage, error) {
	return r.listPage(r.published(now).Where("posts.category_id = ?", categoryID), page, pageSize)
}

// ListByAuthor returns one page of a user's posts. With includeHidden the
// publication gate is skipped entirely, which is how a user sees their own
// drafts and scheduled posts on their profile page.
func (r *PostgresPostRepository) ListByAuthor(authorID uint, includeHidden bool, page, pageSize int, now time.Time) (*models.PostPage, error) {
	query := r.published(now)
	if includeHidden {
		query = r.db.Model(&models.Post{})
	}
	return r.listPage(query.Where("posts.author_id = ?", authorID), page, pageSize)
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Omit(clause.Associations).Save(post).Error
}

// DeletePost deletes a post by ID; its comments are removed by the
// ON DELETE CASCADE constraint.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
