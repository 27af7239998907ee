// Package marketdata fetches quotes and daily close series from Alpha
// Vantage and serves them through a cache- and database-backed price
// store.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// ErrNoPriceData is returned when the upstream has no data for a
// ticker (unknown symbol, empty series, exhausted API quota).
var ErrNoPriceData = errors.New("marketdata: no price data")

// PricePoint is one closing price. Date uses the YYYY-MM-DD form the
// upstream returns, which also sorts chronologically as a string.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type alphaVantageResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
	TimeSeriesDaily map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
}

// Client calls the Alpha Vantage HTTP API. Every request carries the
// configured timeout; this is the only outbound call in the system
// that can block.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// GlobalQuote returns the latest known price for a symbol.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (float64, error) {
	var resp alphaVantageResponse
	if err := c.query(ctx, "GLOBAL_QUOTE", symbol, &resp); err != nil {
		return 0, err
	}

	if resp.GlobalQuote.Price == "" {
		return 0, fmt.Errorf("quote for %s: %w", symbol, ErrNoPriceData)
	}

	price, err := strconv.ParseFloat(resp.GlobalQuote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quote for %s: %w", symbol, err)
	}
	return price, nil
}

// DailySeries returns the daily close series for a symbol, oldest
// first.
func (c *Client) DailySeries(ctx context.Context, symbol string) ([]PricePoint, error) {
	var resp alphaVantageResponse
	if err := c.query(ctx, "TIME_SERIES_DAILY", symbol, &resp); err != nil {
		return nil, err
	}

	if len(resp.TimeSeriesDaily) == 0 {
		return nil, fmt.Errorf("history for %s: %w", symbol, ErrNoPriceData)
	}

	points := make([]PricePoint, 0, len(resp.TimeSeriesDaily))
	for date, bar := range resp.TimeSeriesDaily {
		closePrice, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close for %s on %s: %w", symbol, date, err)
		}
		points = append(points, PricePoint{Date: date, Price: closePrice})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

func (c *Client) query(ctx context.Context, function, symbol string, out *alphaVantageResponse) error {
	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s for %s: %w", function, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s for %s: unexpected status %d", function, symbol, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response for %s: %w", function, symbol, err)
	}
	return nil
}
