package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOptions returns options with an instant, recorded sleep.
func newOptions(sleeps *[]time.Duration) *Options {
	opts := DefaultOptions()
	opts.BackoffBase = 5 * time.Second
	opts.Sleep = func(d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return opts
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	body, err := Fetch(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ok")
}

func TestFetch_BackoffScheduleThenSuccess(t *testing.T) {
	// 429 on attempts 1 and 2, then 200 on attempt 3: sleeps must be 5s then
	// 10s and the fetch succeeds without exceeding MaxRetries.
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("finally"))
	}))
	defer server.Close()

	var sleeps []time.Duration
	body, err := Fetch(context.Background(), server.URL, newOptions(&sleeps))
	require.NoError(t, err)
	assert.Equal(t, "finally", string(body))
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, sleeps)
}

func TestFetch_RetriesExhausted(t *testing.T) {
	// 429 on every attempt with MaxRetries=3: exactly 3 attempts, then an
	// exhausted error, not 4.
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	var sleeps []time.Duration
	_, err := Fetch(context.Background(), server.URL, newOptions(&sleeps))
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, fetchErr.Exhausted)
	assert.Equal(t, 3, fetchErr.Attempts)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_NonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var sleeps []time.Duration
	_, err := Fetch(context.Background(), server.URL, newOptions(&sleeps))
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.False(t, fetchErr.Exhausted)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, sleeps)
}

func TestFetch_TransportErrorIsNonRetryable(t *testing.T) {
	// Connection refused before any response: there is no status code to
	// inspect, so the failure must surface immediately instead of crashing
	// or retrying.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	var sleeps []time.Duration
	_, err := Fetch(context.Background(), url, newOptions(&sleeps))
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.False(t, fetchErr.Exhausted)
	assert.Empty(t, sleeps)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := Fetch(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "invalid URL")
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, seen)
}
