package repositories

import (
	"log"

	"github.com/akulakov/blogicum/internal/models"
	"gorm.io/gorm"
)

// Seed inserts default categories and locations when their tables are
// empty. Category and location management is an admin concern with no
// public UI, so a fresh database gets a usable set out of the box.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := []models.Category{
			{Title: "Travel", Slug: "travel", Description: "Trips, routes and places worth seeing", IsPublished: true},
			{Title: "Food", Slug: "food", Description: "Recipes, restaurants and everything edible", IsPublished: true},
			{Title: "Tech", Slug: "tech", Description: "Software, hardware and the internet", IsPublished: true},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d default categories", len(categories))
	}

	if err := db.Model(&models.Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		locations := []models.Location{
			{Name: "Amsterdam", IsPublished: true},
			{Name: "Lisbon", IsPublished: true},
			{Name: "Tbilisi", IsPublished: true},
		}
		if err := db.Create(&locations).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d default locations", len(locations))
	}

	return nil
}
