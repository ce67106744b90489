package models

import "time"

type Profile struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	DisplayName string  `gorm:"size:100" json:"display_name"`
	Email       string  `gorm:"size:100;index" json:"email"`
	Role        string  `gorm:"size:20;default:'cliente';not null" json:"role"`
	PlanID      *string `gorm:"size:36" json:"plan_id"`
	Stamps      int     `gorm:"default:0;not null" json:"stamps"`
	Phone       string  `gorm:"size:20" json:"phone"`
	AvatarKey   string  `gorm:"size:255" json:"-"`
	Bio         string  `gorm:"size:500" json:"bio"`
	Location    string  `gorm:"size:100" json:"location"`

	CreatedAt time.Time `json:"joined_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
