package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/backlink-outreach/internal/dto"
	"github.com/octobees/backlink-outreach/internal/entity"
	"github.com/octobees/backlink-outreach/internal/service"
)

// BatchProcessor runs a batch of URL extractions and returns one result
// per input URL.
type BatchProcessor interface {
	Process(ctx context.Context, urls []string, campaign entity.CampaignContext, drafter service.Drafter) []entity.Result
}

// DrafterFactory builds a drafting client for a given API key, so
// per-request credentials live only for the duration of one request.
type DrafterFactory func(apiKey string) service.Drafter

// ScrapeHandler serves the batch scrape-and-draft endpoint.
type ScrapeHandler struct {
	processor  BatchProcessor
	drafterFor DrafterFactory
	// processKey is the process-wide OpenAI credential. When empty the
	// handler requires the caller to supply one per request.
	processKey string
}

// NewScrapeHandler constructs the handler.
func NewScrapeHandler(processor BatchProcessor, drafterFor DrafterFactory, processKey string) *ScrapeHandler {
	return &ScrapeHandler{processor: processor, drafterFor: drafterFor, processKey: processKey}
}

// Scrape handles POST /scrape. Validation short-circuits on the first
// failing field; the 200 body is the bare per-URL result array.
func (h *ScrapeHandler) Scrape(c echo.Context) error {
	var req dto.ScrapeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.BacklinkURL = strings.TrimSpace(req.BacklinkURL)
	req.OpenAIAPIKey = strings.TrimSpace(req.OpenAIAPIKey)
	req.SenderName = strings.TrimSpace(req.SenderName)
	req.SenderOrganization = strings.TrimSpace(req.SenderOrganization)

	if len(req.URLs) == 0 {
		return Error(c, http.StatusBadRequest, "urls must be a non-empty array")
	}
	if req.CompanyName == "" {
		return Error(c, http.StatusBadRequest, "companyName is required")
	}
	if req.BacklinkURL == "" {
		return Error(c, http.StatusBadRequest, "backlinkUrl is required")
	}
	if h.processKey == "" {
		if req.OpenAIAPIKey == "" {
			return Error(c, http.StatusBadRequest, "openaiApiKey is required")
		}
		if req.SenderName == "" {
			return Error(c, http.StatusBadRequest, "senderName is required")
		}
		if req.SenderOrganization == "" {
			return Error(c, http.StatusBadRequest, "senderOrganization is required")
		}
	}

	apiKey := h.processKey
	if req.OpenAIAPIKey != "" {
		apiKey = req.OpenAIAPIKey
	}

	campaign := entity.CampaignContext{
		CompanyName:        req.CompanyName,
		BacklinkURL:        req.BacklinkURL,
		SenderName:         req.SenderName,
		SenderOrganization: req.SenderOrganization,
	}

	results := h.processor.Process(c.Request().Context(), req.URLs, campaign, h.drafterFor(apiKey))
	return c.JSON(http.StatusOK, results)
}
