package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/backlink-outreach/internal/config"
	"github.com/octobees/backlink-outreach/internal/handler"
	"github.com/octobees/backlink-outreach/internal/logging"
	middlewarepkg "github.com/octobees/backlink-outreach/internal/middleware"
	"github.com/octobees/backlink-outreach/internal/router"
	"github.com/octobees/backlink-outreach/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	fetcher := service.NewFetcher(cfg.FetchTimeout)
	scraper := service.NewScraper(fetcher, cfg.CourtesyDelay, logger)
	orchestrator := service.NewOrchestrator(scraper, cfg.ScrapeWorkers, cfg.BatchDeadline, logger)
	cleaner := service.NewContactCleaner(cfg.PhoneRegion)

	drafterFor := func(apiKey string) service.Drafter {
		return service.NewOutreachClient(apiKey, logger)
	}

	handlers := router.Handlers{
		Scrape: handler.NewScrapeHandler(orchestrator, drafterFor, cfg.OpenAIAPIKey),
		Clean:  handler.NewCleanHandler(cleaner),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, handlers)

	logger.Info("starting server",
		zap.String("port", cfg.Port),
		zap.Int("scrape_workers", cfg.ScrapeWorkers),
		zap.Duration("batch_deadline", cfg.BatchDeadline))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
