// Package jobs holds the background work scheduled alongside the
// server.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"stock-predictor/models"
)

// QuoteFetcher refreshes the latest price for a ticker; fetched quotes
// land in the cache and price table as a side effect.
type QuoteFetcher interface {
	LatestPrice(ctx context.Context, ticker string) (float64, error)
}

// PriceSync periodically refreshes quotes for every known company so
// that request-path lookups mostly hit the cache. Per-ticker failures
// are logged and skipped; the job itself never fails.
type PriceSync struct {
	db      *gorm.DB
	prices  QuoteFetcher
	log     zerolog.Logger
	timeout time.Duration
}

func NewPriceSync(db *gorm.DB, prices QuoteFetcher, log zerolog.Logger) *PriceSync {
	return &PriceSync{
		db:      db,
		prices:  prices,
		log:     log.With().Str("job", "price_sync").Logger(),
		timeout: 30 * time.Second,
	}
}

// Run implements cron.Job.
func (j *PriceSync) Run() {
	var companies []models.Company
	if err := j.db.Find(&companies).Error; err != nil {
		j.log.Error().Err(err).Msg("failed to list companies")
		return
	}

	refreshed := 0
	for _, company := range companies {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		_, err := j.prices.LatestPrice(ctx, company.Ticker)
		cancel()

		if err != nil {
			j.log.Warn().Err(err).Str("ticker", company.Ticker).Msg("quote refresh failed")
			continue
		}
		refreshed++
	}

	j.log.Info().Int("refreshed", refreshed).Int("total", len(companies)).Msg("price sync complete")
}

// Schedule registers the job on the given cron runner.
func (j *PriceSync) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddJob(spec, j)
}
