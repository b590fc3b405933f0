package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/backlink-outreach/internal/entity"
	"github.com/octobees/backlink-outreach/internal/service"
)

type stubProcessor struct {
	gotURLs     []string
	gotCampaign entity.CampaignContext
	gotDrafter  service.Drafter
	results     []entity.Result
}

func (s *stubProcessor) Process(_ context.Context, urls []string, campaign entity.CampaignContext, drafter service.Drafter) []entity.Result {
	s.gotURLs = urls
	s.gotCampaign = campaign
	s.gotDrafter = drafter
	return s.results
}

type stubDrafter struct{ key string }

func (stubDrafter) Draft(context.Context, string, entity.CampaignContext) (string, error) {
	return "", nil
}

func postScrape(t *testing.T, h *ScrapeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h.Scrape(c)
	return rec
}

func newStubHandler(processor *stubProcessor, processKey string) *ScrapeHandler {
	return NewScrapeHandler(processor, func(apiKey string) service.Drafter {
		return stubDrafter{key: apiKey}
	}, processKey)
}

func TestScrapeValidationOrder(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		processKey string
		wantMsg    string
	}{
		{
			name:    "missing urls",
			body:    `{"companyName":"Acme","backlinkUrl":"https://a.example"}`,
			wantMsg: "urls must be a non-empty array",
		},
		{
			name:    "empty urls",
			body:    `{"urls":[],"companyName":"Acme","backlinkUrl":"https://a.example"}`,
			wantMsg: "urls must be a non-empty array",
		},
		{
			name:    "missing company name",
			body:    `{"urls":["https://x.example"],"backlinkUrl":"https://a.example"}`,
			wantMsg: "companyName is required",
		},
		{
			name:    "missing backlink url",
			body:    `{"urls":["https://x.example"],"companyName":"Acme"}`,
			wantMsg: "backlinkUrl is required",
		},
		{
			name:    "missing api key in per-request model",
			body:    `{"urls":["https://x.example"],"companyName":"Acme","backlinkUrl":"https://a.example"}`,
			wantMsg: "openaiApiKey is required",
		},
		{
			name:    "missing sender name in per-request model",
			body:    `{"urls":["https://x.example"],"companyName":"Acme","backlinkUrl":"https://a.example","openaiApiKey":"sk-1"}`,
			wantMsg: "senderName is required",
		},
		{
			name:    "missing sender organization in per-request model",
			body:    `{"urls":["https://x.example"],"companyName":"Acme","backlinkUrl":"https://a.example","openaiApiKey":"sk-1","senderName":"Jamie"}`,
			wantMsg: "senderOrganization is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newStubHandler(&stubProcessor{}, tt.processKey)
			rec := postScrape(t, h, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var resp APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestScrapeSenderFieldsOptionalWithProcessKey(t *testing.T) {
	processor := &stubProcessor{results: []entity.Result{}}
	h := newStubHandler(processor, "sk-process")

	body := `{"urls":["https://x.example"],"companyName":"Acme","backlinkUrl":"https://a.example"}`
	rec := postScrape(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if d, ok := processor.gotDrafter.(stubDrafter); !ok || d.key != "sk-process" {
		t.Fatalf("expected drafter built with process key, got %#v", processor.gotDrafter)
	}
}

func TestScrapePerRequestKeyWins(t *testing.T) {
	processor := &stubProcessor{results: []entity.Result{}}
	h := newStubHandler(processor, "sk-process")

	body := `{"urls":["https://x.example"],"companyName":"Acme","backlinkUrl":"https://a.example","openaiApiKey":"sk-request"}`
	rec := postScrape(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if d := processor.gotDrafter.(stubDrafter); d.key != "sk-request" {
		t.Fatalf("expected per-request key, got %q", d.key)
	}
}

func TestScrapeReturnsBareResultArray(t *testing.T) {
	processor := &stubProcessor{results: []entity.Result{
		entity.BusinessRecord{
			URL:          "https://x.example",
			BusinessName: "X",
			Emails:       []string{"a@x.example"},
			Phones:       []string{},
			SocialLinks:  map[string]string{},
		},
		entity.ExtractionError{URL: "https://y.example", Error: "Request timed out", BusinessName: "Y"},
	}}
	h := newStubHandler(processor, "sk-process")

	body := `{"urls":["https://x.example","https://y.example"],"companyName":"Acme","backlinkUrl":"https://a.example","senderName":"Jamie","senderOrganization":"Octobees"}`
	rec := postScrape(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if processor.gotCampaign.SenderName != "Jamie" || processor.gotCampaign.SenderOrganization != "Octobees" {
		t.Fatalf("campaign context not propagated: %+v", processor.gotCampaign)
	}

	var payload []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected bare array body: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(payload))
	}
	if payload[0]["business_name"] != "X" {
		t.Fatalf("unexpected first record: %v", payload[0])
	}
	if payload[1]["error"] != "Request timed out" {
		t.Fatalf("unexpected error record: %v", payload[1])
	}
}

func TestScrapeInvalidPayload(t *testing.T) {
	h := newStubHandler(&stubProcessor{}, "sk-process")
	rec := postScrape(t, h, "{")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
