package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Typed fetch failures. The scraper maps each to a distinct error message.
var (
	ErrInvalidURL     = errors.New("invalid url")
	ErrRequestTimeout = errors.New("request timed out")
	ErrRequestFailed  = errors.New("request failed")
)

const (
	defaultFetchTimeout = 10 * time.Second
	fetchUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// FetchedPage is the outcome of a successful fetch.
type FetchedPage struct {
	// FinalURL is the URL after following redirects, for resolving
	// relative links on the page.
	FinalURL string
	Body     string
}

// Fetcher performs a single bounded-timeout GET per URL. The transport is
// built with no proxy so fetches behave the same regardless of ambient
// HTTP_PROXY-style environment variables. No retries: a failed or timed-out
// fetch is terminal for that URL.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a fetcher with the given per-request timeout.
// A non-positive timeout falls back to the 10s default.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: nil,
			},
		},
	}
}

// Fetch validates the URL syntactically, then performs one GET.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchedPage, error) {
	if !isValidURL(rawURL) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrRequestTimeout, rawURL)
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrRequestTimeout, rawURL)
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	return &FetchedPage{
		FinalURL: resp.Request.URL.String(),
		Body:     string(body),
	}, nil
}

func isValidURL(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
