package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPostPage(t *testing.T) {
	// 25 qualifying posts with page size 10: pages 1 and 2 are full with
	// a next page, page 3 holds the remaining 5.
	page1 := NewPostPage(make([]Post, 10), 1, 10, 25)
	assert.Equal(t, 3, page1.TotalPages)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)

	page2 := NewPostPage(make([]Post, 10), 2, 10, 25)
	assert.True(t, page2.HasNext)
	assert.True(t, page2.HasPrev)

	page3 := NewPostPage(make([]Post, 5), 3, 10, 25)
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.HasNext)
	assert.True(t, page3.HasPrev)
}

func TestNewPostPageEmpty(t *testing.T) {
	page := NewPostPage(nil, 1, 10, 0)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
	assert.Empty(t, page.Items)
}

func TestNewPostPageExactMultiple(t *testing.T) {
	page := NewPostPage(make([]Post, 10), 2, 10, 20)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}
