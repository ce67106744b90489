package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the auth identity. Everything the application shows about a person
// lives in Profile, which shares the same ID.
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}
