package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"stock-predictor/auth"
	"stock-predictor/forecast"
	"stock-predictor/marketdata"
	"stock-predictor/middleware"
	"stock-predictor/store"
)

// Deps are the services the HTTP layer is wired with. Everything is
// constructed once in main and injected here.
type Deps struct {
	Log         zerolog.Logger
	DB          *gorm.DB
	Auth        *auth.Service
	Forecast    *forecast.Service
	Prices      *marketdata.PriceService
	Portfolios  *store.PortfolioStore
	FrontendURL string
}

// NewRouter assembles the full route set.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{deps.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	authH := NewAuthHandler(deps.Auth, deps.Log)
	stocksH := NewStocksHandler(deps.DB, deps.Forecast, deps.Prices, deps.Log)
	predictH := NewPredictHandler(deps.Forecast, deps.Log)
	portfolioH := NewPortfolioHandler(deps.Portfolios, deps.Forecast, deps.Log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/users/register", authH.Register)
		api.POST("/users/login", authH.Login)

		api.GET("/companies", stocksH.ListCompanies)

		stocks := api.Group("/stocks")
		{
			stocks.GET("/", stocksH.ListCompanies)
			stocks.POST("/predict", stocksH.Predict)
			stocks.GET("/history/:ticker", stocksH.History)
		}

		api.GET("/predict", predictH.Predict)

		portfolio := api.Group("/portfolio", middleware.RequireAuth(deps.Auth))
		{
			portfolio.POST("/", portfolioH.Add)
			portfolio.GET("/", portfolioH.List)
		}
	}

	return router
}
