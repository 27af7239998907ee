package database

import (
	"fmt"
	"reflect"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stock-predictor/config"
	"stock-predictor/models"
)

var (
	ErrInvalidBatchSize = fmt.Errorf("invalid batch size")
	ErrInvalidData      = fmt.Errorf("invalid data, expected slice")
)

// Open connects to PostgreSQL and returns the handle; callers own the
// connection and close it via the underlying sql.DB.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Portfolio{},
		&models.StockPrice{},
	)
}

// CreateInBatches inserts a slice in chunks inside a single
// transaction, rolling back on the first failed chunk.
func CreateInBatches(db *gorm.DB, data interface{}, batchSize int) error {
	if batchSize <= 0 {
		return ErrInvalidBatchSize
	}

	slice := reflect.ValueOf(data)
	if slice.Kind() != reflect.Slice {
		return ErrInvalidData
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	total := slice.Len()
	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}

		chunk := slice.Slice(i, end).Interface()
		if err := tx.Create(chunk).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("batch insert failed: %w", err)
		}
	}

	return tx.Commit().Error
}
