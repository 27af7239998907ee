package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock-predictor/models"
)

// ReadCompaniesFile parses the static company list, a CSV file with a
// "ticker,name" header. Rows with a blank ticker or name are skipped.
func ReadCompaniesFile(path string) ([]models.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open companies file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read companies header: %w", err)
	}

	tickerIdx, nameIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "ticker":
			tickerIdx = i
		case "name":
			nameIdx = i
		}
	}
	if tickerIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("companies file %s missing ticker/name columns", path)
	}

	var companies []models.Company
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read companies row: %w", err)
		}
		ticker := strings.ToUpper(strings.TrimSpace(record[tickerIdx]))
		name := strings.TrimSpace(record[nameIdx])
		if ticker == "" || name == "" {
			continue
		}
		companies = append(companies, models.Company{Ticker: ticker, Name: name})
	}
	return companies, nil
}

// SeedCompanies upserts the company list from a CSV file into the
// companies table and returns how many rows were loaded.
func SeedCompanies(db *gorm.DB, path string) (int, error) {
	companies, err := ReadCompaniesFile(path)
	if err != nil {
		return 0, err
	}
	if len(companies) == 0 {
		return 0, nil
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&companies).Error
	if err != nil {
		return 0, fmt.Errorf("seed companies: %w", err)
	}
	return len(companies), nil
}
