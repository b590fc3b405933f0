package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/octobees/backlink-outreach/internal/entity"
)

// Drafting failures form a closed set. Every one degrades to a descriptive
// string embedded in the record; none aborts the surrounding extraction.
var (
	ErrMissingParameters     = errors.New("missing required parameters for email generation")
	ErrAuthenticationFailure = errors.New("authentication failed")
	ErrServiceUnavailable    = errors.New("service unavailable")
	ErrRateLimited           = errors.New("rate limited")
	ErrEmptyResponse         = errors.New("empty response")
)

const (
	outreachSystemPrompt = "You are a professional outreach specialist writing an email to request a backlink."
	outreachMaxTokens    = 300
	outreachTemperature  = 0.7
)

// Drafter generates one outreach email per extracted business.
type Drafter interface {
	Draft(ctx context.Context, businessName string, campaign entity.CampaignContext) (string, error)
}

// OutreachClient drafts backlink outreach emails with the OpenAI chat API.
// The credential is fixed at construction so per-request keys cannot leak
// across concurrent batches.
type OutreachClient struct {
	client openai.Client
	model  openai.ChatModel
	logger *zap.Logger
}

// NewOutreachClient builds a drafting client for the given API key. The
// underlying transport is configured with no proxy, independent of the
// process environment.
func NewOutreachClient(apiKey string, logger *zap.Logger) *OutreachClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{
			Transport: &http.Transport{Proxy: nil},
		}),
	)
	return &OutreachClient{
		client: client,
		model:  openai.ChatModelGPT3_5Turbo,
		logger: logger,
	}
}

// Draft generates an outreach email body for one business.
func (c *OutreachClient) Draft(ctx context.Context, businessName string, campaign entity.CampaignContext) (string, error) {
	if businessName == "" || campaign.CompanyName == "" || campaign.BacklinkURL == "" {
		return "", ErrMissingParameters
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(outreachSystemPrompt),
			openai.UserMessage(buildOutreachPrompt(businessName, campaign)),
		},
		MaxTokens:   openai.Int(outreachMaxTokens),
		Temperature: openai.Float(outreachTemperature),
	})
	if err != nil {
		c.logger.Warn("outreach drafting failed",
			zap.String("business", businessName),
			zap.Error(err))
		return "", classifyDraftError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildOutreachPrompt(businessName string, campaign entity.CampaignContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a friendly and professional outreach email to %s.\n", businessName)
	b.WriteString("The email should:\n")
	fmt.Fprintf(&b, "1. Introduce %s\n", campaign.CompanyName)
	fmt.Fprintf(&b, "2. Request to add our backlink (%s)\n", campaign.BacklinkURL)
	b.WriteString("3. Explain the mutual benefits\n")
	b.WriteString("4. Keep it concise and natural\n")
	b.WriteString("5. End with a clear call to action\n")
	if campaign.SenderName != "" {
		fmt.Fprintf(&b, "Sign the email as %s", campaign.SenderName)
		if campaign.SenderOrganization != "" {
			fmt.Fprintf(&b, " from %s", campaign.SenderOrganization)
		}
		b.WriteString(".\n")
	}
	return b.String()
}

// classifyDraftError collapses SDK errors into the closed failure set.
func classifyDraftError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAuthenticationFailure
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return ErrServiceUnavailable
		}
	}
	return err
}

// DraftFailureMessage renders a drafting error as the email body itself so
// a failed draft never invalidates the rest of the record.
func DraftFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrAuthenticationFailure):
		return "Error: OpenAI API key is invalid"
	case errors.Is(err, ErrServiceUnavailable):
		return "Error: OpenAI API is currently unavailable"
	case errors.Is(err, ErrRateLimited):
		return "Error: OpenAI API rate limit exceeded"
	case errors.Is(err, ErrMissingParameters), errors.Is(err, ErrEmptyResponse):
		return fmt.Sprintf("Error: %s", err)
	default:
		return "Error: An unexpected error occurred while generating the email"
	}
}
