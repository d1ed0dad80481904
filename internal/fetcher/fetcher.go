package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/YukiMaitani/tcgp-card-data/internal/domain"
	"github.com/YukiMaitani/tcgp-card-data/internal/metrics"
)

// Fetcher performs exactly one retrieval attempt for a source locator and
// classifies the result. It never writes files and keeps no per-task state.
type Fetcher interface {
	Fetch(ctx context.Context, source string) domain.AttemptOutcome
}

// HTTPFetcher fetches assets over HTTP. A 404 is classified as a missing
// localization rather than an error; every other failure, including
// timeouts, is transient and eligible for retry by the caller.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPFetcher creates an HTTPFetcher whose individual attempts are
// bounded by the given timeout.
func NewHTTPFetcher(timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch performs one GET of source and returns the classified outcome.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) domain.AttemptOutcome {
	metrics.AttemptsTotal.Inc()

	start := time.Now()
	defer func() {
		metrics.AttemptDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return transient(fmt.Errorf("create request: %w", err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("fetch attempt failed", "source", source, "error", err)
		return transient(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.AttemptOutcome{Kind: domain.AttemptNotFound}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Debug("fetch attempt got bad status", "source", source, "status", resp.Status)
		return transient(fmt.Errorf("unexpected status: %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transient(fmt.Errorf("read body: %w", err))
	}

	return domain.AttemptOutcome{Kind: domain.AttemptSuccess, Body: body}
}

func transient(err error) domain.AttemptOutcome {
	return domain.AttemptOutcome{Kind: domain.AttemptTransient, Err: err}
}
