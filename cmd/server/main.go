package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"stock-predictor/auth"
	"stock-predictor/cache"
	"stock-predictor/config"
	"stock-predictor/database"
	"stock-predictor/forecast"
	"stock-predictor/handlers"
	"stock-predictor/jobs"
	"stock-predictor/marketdata"
	"stock-predictor/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := newLogger(cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database handle")
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	seeded, err := database.SeedCompanies(db, cfg.CompaniesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.CompaniesFile).Msg("company seed failed")
	}
	log.Info().Int("companies", seeded).Msg("company list seeded")

	ctx := context.Background()
	redisStore, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisStore.Close()

	registry, err := forecast.LoadRegistry(cfg.ModelsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ModelsDir).Msg("model load failed")
	}
	log.Info().Int("models", registry.Len()).Strs("tickers", registry.Tickers()).Msg("models loaded")

	client := marketdata.NewClient(cfg.AlphaVantageURL, cfg.AlphaVantageKey, cfg.MarketTimeout)
	prices := marketdata.NewPriceService(client, redisStore, db, log)
	forecastService := forecast.NewService(registry, prices, log)
	authService := auth.NewService(db, cfg.JWTSecret, cfg.AccessTokenTTL)
	portfolios := store.NewPortfolioStore(db)

	router := handlers.NewRouter(handlers.Deps{
		Log:         log,
		DB:          db,
		Auth:        authService,
		Forecast:    forecastService,
		Prices:      prices,
		Portfolios:  portfolios,
		FrontendURL: cfg.FrontendURL,
	})

	scheduler := cron.New()
	if cfg.PriceSyncSpec != "" {
		sync := jobs.NewPriceSync(db, prices, log)
		if _, err := sync.Schedule(scheduler, cfg.PriceSyncSpec); err != nil {
			log.Fatal().Err(err).Str("spec", cfg.PriceSyncSpec).Msg("invalid price sync schedule")
		}
		log.Info().Str("spec", cfg.PriceSyncSpec).Msg("price sync scheduled")
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
