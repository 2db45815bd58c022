package models

import "time"

// Location is an optional place a post is written about.
type Location struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:256;not null"`
	IsPublished bool      `json:"is_published" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}
