// Command train fits one regression model per company from its daily
// close series and writes the artifacts the server loads at startup.
// Training is an offline batch step; the server never retrains.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"stock-predictor/database"
	"stock-predictor/forecast"
	"stock-predictor/marketdata"
)

func main() {
	companiesFile := flag.String("companies", "data/companies.csv", "company list CSV")
	outDir := flag.String("out", "ml_models", "artifact output directory")
	timeout := flag.Duration("timeout", 30*time.Second, "per-ticker fetch timeout")
	flag.Parse()

	_ = godotenv.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	baseURL := os.Getenv("ALPHA_VANTAGE_URL")
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	client := marketdata.NewClient(baseURL, os.Getenv("ALPHA_VANTAGE_API_KEY"), *timeout)

	companies, err := database.ReadCompaniesFile(*companiesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *companiesFile).Msg("failed to read company list")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", *outDir).Msg("failed to create output directory")
	}

	trained := 0
	for _, company := range companies {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		points, err := client.DailySeries(ctx, company.Ticker)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("ticker", company.Ticker).Msg("skipping: fetch failed")
			continue
		}

		artifact, err := forecast.Fit(company.Ticker, points, time.Now())
		if err != nil {
			log.Warn().Err(err).Str("ticker", company.Ticker).Msg("skipping: fit failed")
			continue
		}

		path, err := artifact.Write(*outDir)
		if err != nil {
			log.Warn().Err(err).Str("ticker", company.Ticker).Msg("skipping: write failed")
			continue
		}

		log.Info().
			Str("ticker", company.Ticker).
			Int("samples", artifact.Samples).
			Float64("slope", artifact.Slope).
			Str("path", path).
			Msg("model trained")
		trained++
	}

	log.Info().Int("trained", trained).Int("total", len(companies)).Msg("training complete")
	if trained == 0 && len(companies) > 0 {
		os.Exit(1)
	}
}
