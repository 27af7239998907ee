package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"stock-predictor/cache"
	"stock-predictor/database"
	"stock-predictor/models"
)

const (
	quoteTTL   = 5 * time.Minute
	historyTTL = 24 * time.Hour

	historyBatchSize = 100
)

// PriceService is the read-through price store: cache first, then the
// upstream API, persisting fetched prices along the way. Cache and
// database write failures are logged and swallowed so a degraded cache
// never blocks a quote.
type PriceService struct {
	client *Client
	cache  cache.Store
	db     *gorm.DB
	log    zerolog.Logger
}

func NewPriceService(client *Client, store cache.Store, db *gorm.DB, log zerolog.Logger) *PriceService {
	return &PriceService{
		client: client,
		cache:  store,
		db:     db,
		log:    log.With().Str("component", "marketdata").Logger(),
	}
}

// LatestPrice returns the most recent closing price for a ticker.
// Tickers are case-insensitive; cache keys and persisted rows always
// use the upper-cased form.
func (s *PriceService) LatestPrice(ctx context.Context, ticker string) (float64, error) {
	ticker = normalizeTicker(ticker)
	key := quoteKey(ticker)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		price, err := strconv.ParseFloat(cached, 64)
		if err == nil {
			return price, nil
		}
		s.log.Warn().Str("ticker", ticker).Str("value", cached).Msg("discarding unparseable cached quote")
	}

	price, err := s.client.GlobalQuote(ctx, ticker)
	if err != nil {
		return 0, err
	}

	entry := models.StockPrice{
		Symbol:    ticker,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Error().Err(err).Str("ticker", ticker).Msg("failed to persist quote")
	}

	if err := s.cache.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), quoteTTL); err != nil {
		s.log.Error().Err(err).Str("ticker", ticker).Msg("failed to cache quote")
	}

	return price, nil
}

// History returns the daily close series for a ticker, oldest first.
func (s *PriceService) History(ctx context.Context, ticker string) ([]PricePoint, error) {
	ticker = normalizeTicker(ticker)
	key := historyKey(ticker)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var points []PricePoint
		if err := json.Unmarshal([]byte(cached), &points); err == nil {
			return points, nil
		}
		s.log.Warn().Str("ticker", ticker).Msg("discarding corrupt cached history")
	}

	points, err := s.client.DailySeries(ctx, ticker)
	if err != nil {
		return nil, err
	}

	rows := make([]models.StockPrice, 0, len(points))
	for _, p := range points {
		ts, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		rows = append(rows, models.StockPrice{Symbol: ticker, Price: p.Price, Timestamp: ts})
	}
	if err := database.CreateInBatches(s.db, rows, historyBatchSize); err != nil {
		s.log.Error().Err(err).Str("ticker", ticker).Msg("failed to persist history")
	}

	if encoded, err := json.Marshal(points); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), historyTTL); err != nil {
			s.log.Error().Err(err).Str("ticker", ticker).Msg("failed to cache history")
		}
	}

	return points, nil
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func quoteKey(ticker string) string {
	return fmt.Sprintf("stock:%s:price", ticker)
}

func historyKey(ticker string) string {
	return fmt.Sprintf("stock:%s:history", ticker)
}
