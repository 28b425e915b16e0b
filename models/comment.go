package models

import "time"

// Comment rows are removed together with their article; they carry no soft
// delete so the cascade is a real delete.
type Comment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	ArticleID uint      `json:"article_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
