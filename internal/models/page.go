package models

import "math"

// PostPage is one page of a post listing.
type PostPage struct {
	Items      []Post `json:"items"`
	Number     int    `json:"number"`
	TotalPages int    `json:"total_pages"`
	TotalItems int64  `json:"total_items"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
}

// NewPostPage wraps a slice of posts with pagination metadata.
func NewPostPage(items []Post, number, pageSize int, total int64) *PostPage {
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	return &PostPage{
		Items:      items,
		Number:     number,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
