// Package store holds the database-backed repositories.
package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stock-predictor/models"
)

// PortfolioStore persists saved predictions. Entries are append-only;
// there is no update or delete path.
type PortfolioStore struct {
	db *gorm.DB
}

func NewPortfolioStore(db *gorm.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

// Add saves a prediction for a user.
func (s *PortfolioStore) Add(ctx context.Context, userID uint, ticker string, year int, predictedPrice float64) (*models.Portfolio, error) {
	entry := models.Portfolio{
		UserID:         userID,
		Ticker:         ticker,
		Year:           year,
		PredictedPrice: predictedPrice,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("save portfolio entry: %w", err)
	}
	return &entry, nil
}

// List returns a user's entries in insertion order.
func (s *PortfolioStore) List(ctx context.Context, userID uint) ([]models.Portfolio, error) {
	var entries []models.Portfolio
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	return entries, nil
}
