package repositories

import (
	"github.com/akulakov/blogicum/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	CreateCategory(category *models.Category) error
	GetPublishedBySlug(slug string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error
}

// PostgresCategoryRepository implements CategoryRepository for PostgreSQL
type PostgresCategoryRepository struct {
	db *gorm.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// CreateCategory creates a new category in PostgreSQL
func (r *PostgresCategoryRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetPublishedBySlug retrieves a published category by slug. Unpublished
// categories are treated as nonexistent outside the admin context, so a
// hidden slug surfaces as gorm.ErrRecordNotFound.
func (r *PostgresCategoryRepository) GetPublishedBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategories retrieves all published categories, for the post form select
func (r *PostgresCategoryRepository) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("is_published = ?", true).Order("title ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateCategory updates an existing category in PostgreSQL
func (r *PostgresCategoryRepository) UpdateCategory(category *models.Category) error {
	return r.db.Save(category).Error
}

// DeleteCategory deletes a category; posts referencing it keep existing
// with a null category via the ON DELETE SET NULL constraint.
func (r *PostgresCategoryRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}
