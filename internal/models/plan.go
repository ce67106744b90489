package models

import (
	"time"

	"gorm.io/gorm"
)

type Plan struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`

	MonthlyPrice   float64  `gorm:"not null" json:"monthly_price"`
	QuarterlyPrice *float64 `json:"quarterly_price"`

	Features            []string `gorm:"serializer:json;type:text" json:"features"`
	UnavailableFeatures []string `gorm:"serializer:json;type:text" json:"unavailable_features"`
	Highlight           bool     `gorm:"default:false" json:"highlight"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
