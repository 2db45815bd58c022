package repositories

import (
	"github.com/akulakov/blogicum/internal/models"
	"gorm.io/gorm"
)

// LocationRepository defines the interface for location data operations
type LocationRepository interface {
	CreateLocation(location *models.Location) error
	GetLocations() ([]models.Location, error)
	DeleteLocation(id uint) error
}

// PostgresLocationRepository implements LocationRepository for PostgreSQL
type PostgresLocationRepository struct {
	db *gorm.DB
}

// NewPostgresLocationRepository creates a new PostgresLocationRepository
func NewPostgresLocationRepository(db *gorm.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{db: db}
}

// CreateLocation creates a new location in PostgreSQL
func (r *PostgresLocationRepository) CreateLocation(location *models.Location) error {
	return r.db.Create(location).Error
}

// GetLocations retrieves all published locations, for the post form select
func (r *PostgresLocationRepository) GetLocations() ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.Where("is_published = ?", true).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// DeleteLocation deletes a location; posts referencing it keep existing
// with a null location via the ON DELETE SET NULL constraint.
func (r *PostgresLocationRepository) DeleteLocation(id uint) error {
	return r.db.Delete(&models.Location{}, id).Error
}
