// Package ingest fetches character data from a remote endpoint and
// caches it in the local database.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/arenalab/arena-advisor/internal/roster"
)

const (
	defaultTimeout = 15 * time.Second
	defaultRate    = 2 // requests per second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 8 * time.Second
	userAgent      = "arena-advisor/1.0"
)

// Config holds ingest client settings.
type Config struct {
	// BaseURL is the character data endpoint. A GET on it must return
	// the roster as a JSON array.
	BaseURL string

	// RatePerSec caps outgoing requests. Default: 2.
	RatePerSec float64

	// Timeout is the per-request timeout. Default: 15s.
	Timeout time.Duration
}

// Client fetches character data with rate limiting and retries.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
}

// NewClient creates an ingest client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = defaultRate
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL:     cfg.BaseURL,
	}
}

// NotFoundError indicates the requested resource does not exist.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// FetchRoster downloads the full character roster.
func (c *Client) FetchRoster(ctx context.Context) ([]roster.Character, error) {
	body, err := c.doRequest(ctx, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	chars, err := roster.Load(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	return chars, nil
}

// FetchCharacter downloads a single character by id.
func (c *Client) FetchCharacter(ctx context.Context, id roster.ID) (*roster.Character, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, id)

	body, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch character %s: %w", id, err)
	}

	var char roster.Character
	if err := json.Unmarshal(body, &char); err != nil {
		return nil, fmt.Errorf("failed to parse character %s: %w", id, err)
	}
	return &char, nil
}

// doRequest performs a GET with rate limiting, retrying transient
// failures with exponential backoff.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("failed to read response body: %w", readErr)
			}
			return body, nil

		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, lastErr

		case http.StatusNotFound:
			return nil, &NotFoundError{URL: url}

		default:
			if resp.StatusCode >= 500 && attempt < maxRetries {
				lastErr = fmt.Errorf("server error (HTTP %d)", resp.StatusCode)
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
