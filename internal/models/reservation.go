package models

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	ID     string  `gorm:"primaryKey;size:36" json:"id"`
	UserID *string `gorm:"size:36;index" json:"user_id"`

	CustomerName string `gorm:"size:100;not null" json:"customer_name"`
	Phone        string `gorm:"size:20" json:"phone"`
	Email        string `gorm:"size:100" json:"email"`
	Vehicle      string `gorm:"size:100" json:"vehicle"`

	Date      string    `gorm:"size:10;not null;index" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	StartsAt  time.Time `gorm:"index" json:"starts_at"`
	Service   string    `gorm:"size:30;not null" json:"service"`

	Status        string   `gorm:"size:20;default:'pending';not null" json:"status"`
	PaymentStatus string   `gorm:"size:20;default:'pending';not null" json:"payment_status"`
	PaymentMethod string   `gorm:"size:30" json:"payment_method"`
	PaymentAmount *float64 `json:"payment_amount"`

	CustomerNotes string  `gorm:"size:500" json:"customer_notes"`
	AdminNotes    string  `gorm:"size:500" json:"admin_notes"`
	PlanID        *string `gorm:"size:36" json:"plan_id"`

	Rating        *int   `json:"rating"`
	RatingComment string `gorm:"size:500" json:"rating_comment"`

	// Stored and returned as-is.
	Repetition  *string `gorm:"size:50" json:"repetition"`
	HistoryMeta string  `gorm:"type:text" json:"history_meta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservas"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
