package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/backlink-outreach/internal/entity"
	"github.com/octobees/backlink-outreach/internal/service/extract"
)

const defaultCourtesyDelay = 1 * time.Second

// Scraper runs the single-URL extraction pipeline: fetch, parse, run every
// field extractor, assemble a BusinessRecord. Any failure along the way is
// converted into an ExtractionError here; nothing propagates to the caller.
type Scraper struct {
	fetcher *Fetcher
	delay   time.Duration
	logger  *zap.Logger
}

// NewScraper builds a scraper. delay is the courtesy pause applied after
// each fetch to throttle the outbound request rate; non-positive values
// fall back to 1s.
func NewScraper(fetcher *Fetcher, delay time.Duration, logger *zap.Logger) *Scraper {
	if delay <= 0 {
		delay = defaultCourtesyDelay
	}
	return &Scraper{fetcher: fetcher, delay: delay, logger: logger}
}

// ScrapeURL processes one URL and always returns a result: a
// BusinessRecord on success, an ExtractionError otherwise.
func (s *Scraper) ScrapeURL(ctx context.Context, rawURL string) (result entity.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extraction panicked",
				zap.String("url", rawURL),
				zap.Any("panic", r))
			result = extractionError(rawURL, fmt.Sprintf("%v", r))
		}
	}()

	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.logger.Warn("fetch failed", zap.String("url", rawURL), zap.Error(err))
		return extractionError(rawURL, fetchErrorMessage(err, rawURL))
	}

	parsed, err := extract.ParsePage(page.Body, page.FinalURL)
	if err != nil {
		s.logger.Warn("parse failed", zap.String("url", rawURL), zap.Error(err))
		return extractionError(rawURL, err.Error())
	}

	record := entity.BusinessRecord{
		URL:          rawURL,
		BusinessName: extract.BusinessName(parsed, rawURL),
		Emails:       extract.Emails(parsed.Text),
		Phones:       extract.Phones(parsed.Text),
		SocialLinks:  extract.SocialLinks(parsed),
		Address:      extract.Address(parsed),
	}

	s.courtesyDelay(ctx)

	return record
}

func (s *Scraper) courtesyDelay(ctx context.Context) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func fetchErrorMessage(err error, rawURL string) string {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return fmt.Sprintf("Invalid URL: %s", rawURL)
	case errors.Is(err, ErrRequestTimeout):
		return "Request timed out"
	default:
		return err.Error()
	}
}

func extractionError(rawURL, message string) entity.ExtractionError {
	return entity.ExtractionError{
		URL:          rawURL,
		Error:        message,
		BusinessName: extract.DomainName(rawURL),
	}
}
