package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// ErrRateLimited is returned when the server keeps answering 503 after the
// configured maximum number of retries.
var ErrRateLimited = errors.New("rate limited by server")

// StatusError reports a non-2xx response other than 503.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, http.StatusText(e.Code))
}

// Options configures a Client.
type Options struct {
	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// RateLimitCooldown is how long to wait after a 503 before retrying.
	RateLimitCooldown time.Duration

	// MaxRateLimitRetries caps consecutive 503 retries. Zero means retry
	// until the server answers or the context is cancelled.
	MaxRateLimitRetries int

	Logger zerolog.Logger
}

// DefaultOptions returns the options used when fields are left zero.
func DefaultOptions() Options {
	return Options{
		UserAgent:         "playlistgen/1.0 ( https://github.com/handiism/playlist-generator )",
		Timeout:           30 * time.Second,
		RateLimitCooldown: time.Second,
		Logger:            zerolog.Nop(),
	}
}

// Client wraps resty with the MusicBrainz retry discipline.
//
// Requests are issued one at a time by callers; the client itself holds
// no per-request state and is safe for concurrent use.
//
// Example usage:
//
//	client := NewClient(Options{UserAgent: "playlistgen/1.0"})
//	body, err := client.Get(ctx, "https://musicbrainz.org/ws/2/recording/ID?inc=ratings&fmt=json")
type Client struct {
	rest       *resty.Client
	cooldown   time.Duration
	maxRetries int
	log        zerolog.Logger
}

// NewClient creates a client. Zero-valued options fall back to DefaultOptions.
func NewClient(opts Options) *Client {
	def := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.RateLimitCooldown <= 0 {
		opts.RateLimitCooldown = def.RateLimitCooldown
	}

	rest := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		rest:       rest,
		cooldown:   opts.RateLimitCooldown,
		maxRetries: opts.MaxRateLimitRetries,
		log:        opts.Logger,
	}
}

// Get performs a GET request and returns the response body.
//
// A 503 response is retried after the cooldown; the wait honours ctx.
// Any other non-2xx status returns a *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	for tries := 0; ; tries++ {
		resp, err := c.rest.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, err
		}

		code := resp.StatusCode()
		switch {
		case code == http.StatusServiceUnavailable:
			if c.maxRetries > 0 && tries >= c.maxRetries {
				return nil, fmt.Errorf("%s: %w", url, ErrRateLimited)
			}
			c.log.Debug().Str("url", url).Int("attempt", tries+1).Msg("rate limited, waiting")
			if err := c.waitForRetry(ctx); err != nil {
				return nil, err
			}
		case code < 200 || code > 299:
			return nil, &StatusError{URL: url, Code: code}
		default:
			return resp.Body(), nil
		}
	}
}

// GetJSON performs Get and decodes the body into dst.
func (c *Client) GetJSON(ctx context.Context, url string, dst any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) waitForRetry(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.cooldown):
		return nil
	}
}
