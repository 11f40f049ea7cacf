package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/cache"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/config"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/handler"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/logging"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/parser"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/ratelimit"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/search"
	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/settour"
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	limiter := ratelimit.NewStageLimiterWithDefaults()
	limiter.SetStageLimit(ratelimit.StageOutbound, cfg.OutboundRPS, int(cfg.OutboundRPS)*2)
	limiter.SetStageLimit(ratelimit.StageInbound, cfg.InboundRPS, int(cfg.InboundRPS)*2)

	client := settour.New(settour.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Limiter: limiter,
	}, logger)

	searcher := search.New(client, parser.New(logger), search.Config{
		Timeout:       cfg.RequestTimeout * 2,
		MaxRetries:    cfg.MaxRetries,
		RetryDelays:   search.DefaultRetryDelays(),
		MaxConcurrent: cfg.MaxConcurrent,
	}, logger)

	var fareCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		fareCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		fareCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	searchHandler := handler.NewSearchHandler(searcher, fareCache)

	api := e.Group("/api/v1")
	api.POST("/fares/search", searchHandler.Search)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting fare search server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
