package models

import "time"

// Profile is the social face of a user account. It is created together
// with its user and never deleted on its own.
type Profile struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
