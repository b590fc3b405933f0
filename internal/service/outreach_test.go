package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/octobees/backlink-outreach/internal/entity"
)

func TestBuildOutreachPrompt(t *testing.T) {
	campaign := entity.CampaignContext{
		CompanyName: "Tanglewood Care Homes",
		BacklinkURL: "https://tanglewood.example/guide",
	}

	prompt := buildOutreachPrompt("Acme Widgets", campaign)

	for _, want := range []string{
		"outreach email to Acme Widgets",
		"Introduce Tanglewood Care Homes",
		"backlink (https://tanglewood.example/guide)",
		"mutual benefits",
		"call to action",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Sign the email") {
		t.Errorf("unexpected sender line without sender fields:\n%s", prompt)
	}
}

func TestBuildOutreachPromptWithSender(t *testing.T) {
	campaign := entity.CampaignContext{
		CompanyName:        "Tanglewood Care Homes",
		BacklinkURL:        "https://tanglewood.example/guide",
		SenderName:         "Jamie Doe",
		SenderOrganization: "Octobees",
	}

	prompt := buildOutreachPrompt("Acme Widgets", campaign)
	if !strings.Contains(prompt, "Sign the email as Jamie Doe from Octobees") {
		t.Fatalf("expected sender line, got:\n%s", prompt)
	}
}

func TestDraftMissingParameters(t *testing.T) {
	client := NewOutreachClient("sk-test", zap.NewNop())
	campaign := entity.CampaignContext{CompanyName: "Tanglewood", BacklinkURL: "https://t.example"}

	if _, err := client.Draft(context.Background(), "", campaign); !errors.Is(err, ErrMissingParameters) {
		t.Fatalf("expected ErrMissingParameters, got %v", err)
	}

	if _, err := client.Draft(context.Background(), "Acme", entity.CampaignContext{}); !errors.Is(err, ErrMissingParameters) {
		t.Fatalf("expected ErrMissingParameters for empty campaign, got %v", err)
	}
}

func TestClassifyDraftError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{401, ErrAuthenticationFailure},
		{403, ErrAuthenticationFailure},
		{429, ErrRateLimited},
		{500, ErrServiceUnavailable},
		{503, ErrServiceUnavailable},
	}
	for _, tt := range tests {
		err := classifyDraftError(&openai.Error{StatusCode: tt.status})
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}

	plain := errors.New("connection refused")
	if got := classifyDraftError(plain); got != plain {
		t.Errorf("unclassifiable errors must pass through, got %v", got)
	}
}
