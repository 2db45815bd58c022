package models

import "time"

// Comment represents a comment on a post. Comments are deleted together
// with their post; they inherit the post's visibility.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	Post      Post      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentForm is the add/edit form payload for a comment
type CommentForm struct {
	Text string `form:"text" validate:"required,min=1,max=2000"`
}
