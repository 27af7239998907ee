package models

import (
	"gorm.io/gorm"
)

// Portfolio is a user's saved prediction. Entries are append-only:
// they are created when a prediction is saved and never updated or
// deleted afterwards.
type Portfolio struct {
	gorm.Model
	UserID         uint    `gorm:"index;not null" json:"-"`
	Ticker         string  `gorm:"index;not null" json:"ticker"`
	Year           int     `gorm:"not null" json:"year"`
	PredictedPrice float64 `gorm:"not null" json:"predicted_price"`
}
