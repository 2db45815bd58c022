package models

import (
	"time"
)

// Post is a blog publication. A post is publicly visible only while it is
// published, its category is published and its pub_date is not in the future.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:256;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	PubDate     time.Time `json:"pub_date" gorm:"index;not null"`
	IsPublished bool      `json:"is_published" gorm:"default:true"`
	Image       string    `json:"image,omitempty"`
	AuthorID    uint      `json:"author_id" gorm:"index;not null"`
	Author      User      `json:"author" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	Category    *Category `json:"category" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	LocationID  *uint     `json:"location_id"`
	Location    *Location `json:"location" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt   time.Time `json:"created_at"`

	// Filled by listing queries, not a database column.
	CommentCount int `json:"comment_count" gorm:"->;-:migration"`
}

// PostForm is the create/edit form payload. PubDate arrives in the
// datetime-local wire format and is parsed by the handler.
type PostForm struct {
	Title       string `form:"title" validate:"required,min=1,max=256"`
	Text        string `form:"text" validate:"required,min=1"`
	PubDate     string `form:"pub_date" validate:"required"`
	CategoryID  uint   `form:"category_id" validate:"omitempty"`
	LocationID  uint   `form:"location_id" validate:"omitempty"`
	IsPublished bool   `form:"is_published"`
}
