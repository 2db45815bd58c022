package models

import "time"

// Category groups posts under a unique URL slug. An unpublished category
// hides every post that references it.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:256;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsPublished bool      `json:"is_published" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}
