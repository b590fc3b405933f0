package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/backlink-outreach/internal/config"
	"github.com/octobees/backlink-outreach/internal/handler"
	middlewarepkg "github.com/octobees/backlink-outreach/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Scrape *handler.ScrapeHandler
	Clean  *handler.CleanHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	e.POST("/scrape", handlers.Scrape.Scrape, middlewarepkg.ScrapeRateLimiter(cfg.RateLimitScrape))
	e.POST("/clean-contacts", handlers.Clean.Clean)
}
