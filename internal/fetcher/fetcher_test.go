package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"

	"github.com/YukiMaitani/tcgp-card-data/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPFetcher_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.WriteString(w, "image bytes"); err != nil {
			t.Fatalf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, newTestLogger())
	outcome := f.Fetch(context.Background(), server.URL)

	assert.Equal(t, domain.AttemptSuccess, outcome.Kind)
	assert.Equal(t, []byte("image bytes"), outcome.Body)
	assert.NoError(t, outcome.Err)
}

func TestHTTPFetcher_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, newTestLogger())
	outcome := f.Fetch(context.Background(), server.URL)

	assert.Equal(t, domain.AttemptNotFound, outcome.Kind)
	assert.NoError(t, outcome.Err)
	assert.Nil(t, outcome.Body)
}

func TestHTTPFetcher_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, newTestLogger())
	outcome := f.Fetch(context.Background(), server.URL)

	assert.Equal(t, domain.AttemptTransient, outcome.Kind)
	assert.Error(t, outcome.Err)
}

func TestHTTPFetcher_RateLimitIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, newTestLogger())
	outcome := f.Fetch(context.Background(), server.URL)

	assert.Equal(t, domain.AttemptTransient, outcome.Kind)
}

func TestHTTPFetcher_ConnectionErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	f := NewHTTPFetcher(time.Second, newTestLogger())
	outcome := f.Fetch(context.Background(), server.URL)

	assert.Equal(t, domain.AttemptTransient, outcome.Kind)
	assert.Error(t, outcome.Err)
}

func TestHTTPFetcher_TimeoutIsTransient(t *testing.T) {
	block := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	// Unblock the handler before Close waits on it.
	defer close(block)

	f := NewHTTPFetcher(50*time.Millisecond, newTestLogger())
	outcome := f.Fetch(context.Background(), server.URL)

	assert.Equal(t, domain.AttemptTransient, outcome.Kind)
	assert.Error(t, outcome.Err)
}
