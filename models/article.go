package models

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Body        string         `json:"body" gorm:"type:text"`
	AuthorID    uint           `json:"author_id" gorm:"not null"`
	Author      User           `json:"author" gorm:"foreignKey:AuthorID"`
	Tags        []Tag          `json:"tags" gorm:"many2many:article_tags;"`
	// Populated on read, favorites live in the profile_favorites join table.
	FavoritesCount int64          `json:"favorites_count" gorm:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
