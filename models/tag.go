package models

import "time"

// Tag keeps the display text as first entered plus a normalized slug used
// as its unique key. Two texts normalizing to the same key collapse to one
// record; the unique index is the backstop under concurrent creation.
type Tag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
