package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is static reference data seeded from a file at startup.
type Company struct {
	Ticker string `gorm:"primaryKey" json:"ticker"`
	Name   string `gorm:"not null" json:"name"`
}

// StockPrice is a fetched closing price, immutable once stored.
type StockPrice struct {
	gorm.Model
	Symbol    string    `gorm:"index" json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}
