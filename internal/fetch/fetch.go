// Package fetch provides URL downloading with bounded retries, exponential
// backoff, and HTML-to-text processing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for the retry contract.
const (
	DefaultMaxRetries  = 3
	DefaultBackoffBase = 5 * time.Second
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (compatible; ResumeTailor/1.0)"
)

// Error represents a failure during URL fetching.
type Error struct {
	URL        string
	StatusCode int  // last observed HTTP status, 0 if none
	Attempts   int  // attempts made before giving up
	Exhausted  bool // true when retries ran out on rate limiting
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	MaxRetries  int
	BackoffBase time.Duration
	Timeout     time.Duration
	UserAgent   string
	Headers     map[string]string

	// FallbackProxy is the URL of an alternate egress route, activated for
	// attempts after the first rate-limit response. Empty disables fallback
	// routing; retries then stay on the primary route.
	FallbackProxy string

	// Sleep overrides the backoff delay, for tests. Nil uses a
	// context-aware wait.
	Sleep func(time.Duration)

	Logger zerolog.Logger
}

// DefaultOptions returns the default retry configuration.
func DefaultOptions() *Options {
	return &Options{
		MaxRetries:  DefaultMaxRetries,
		BackoffBase: DefaultBackoffBase,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Logger:      zerolog.Nop(),
	}
}

// Fetch downloads a URL with bounded retries and exponential backoff.
//
// Rate-limit responses (429) are retried after sleeping
// BackoffBase * 2^attempt; attempts after the first 429 are routed through
// the fallback proxy when one is configured. Any other failure is
// non-retryable and returned immediately. A transport error that produces no
// HTTP response carries no status to inspect and is likewise non-retryable.
// Exhausting MaxRetries on rate limiting returns an Error with Exhausted set.
func Fetch(ctx context.Context, urlStr string, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	primary := &http.Client{Timeout: opts.Timeout}
	var fallback *http.Client
	fallbackActive := false

	for attempt := 0; attempt < opts.MaxRetries; attempt++ {
		client := primary
		if fallbackActive {
			if fallback == nil {
				fallback, err = buildProxyClient(opts)
				if err != nil {
					return nil, &Error{URL: urlStr, Attempts: attempt, Message: "failed to build fallback route", Cause: err}
				}
			}
			if fallback != nil {
				client = fallback
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
		if err != nil {
			return nil, &Error{URL: urlStr, Attempts: attempt, Message: "failed to create request", Cause: err}
		}
		req.Header.Set("User-Agent", opts.UserAgent)
		for key, value := range opts.Headers {
			req.Header.Set(key, value)
		}

		resp, err := client.Do(req)
		if err != nil {
			// No response means no status code to branch on: treat the
			// failure as non-retryable rather than guessing.
			return nil, &Error{URL: urlStr, Attempts: attempt + 1, Message: "request failed before a response", Cause: err}
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				return nil, &Error{URL: urlStr, StatusCode: resp.StatusCode, Attempts: attempt + 1, Message: "failed to read response body", Cause: readErr}
			}
			return body, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			delay := opts.BackoffBase * (1 << attempt)
			opts.Logger.Warn().
				Str("url", urlStr).
				Int("attempt", attempt+1).
				Dur("backoff", delay).
				Bool("fallback_route", fallbackActive).
				Msg("rate limited, backing off")
			if err := sleep(ctx, opts, delay); err != nil {
				return nil, &Error{URL: urlStr, StatusCode: resp.StatusCode, Attempts: attempt + 1, Message: "canceled during backoff", Cause: err}
			}
			fallbackActive = true

		default:
			return nil, &Error{
				URL:        urlStr,
				StatusCode: resp.StatusCode,
				Attempts:   attempt + 1,
				Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			}
		}
	}

	return nil, &Error{
		URL:        urlStr,
		StatusCode: http.StatusTooManyRequests,
		Attempts:   opts.MaxRetries,
		Exhausted:  true,
		Message:    fmt.Sprintf("retries exhausted after %d attempts", opts.MaxRetries),
	}
}

// buildProxyClient constructs a client routed through the fallback proxy.
// Returns (nil, nil) when no fallback proxy is configured.
func buildProxyClient(opts *Options) (*http.Client, error) {
	if opts.FallbackProxy == "" {
		return nil, nil
	}
	proxyURL, err := url.Parse(opts.FallbackProxy)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback proxy URL: %w", err)
	}
	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
		},
	}, nil
}

// sleep waits for the backoff delay, honoring context cancellation.
func sleep(ctx context.Context, opts *Options, delay time.Duration) error {
	if opts.Sleep != nil {
		opts.Sleep(delay)
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
