package retry

import (
	"context"
	"time"

	"log/slog"

	"github.com/YukiMaitani/tcgp-card-data/internal/domain"
	"github.com/YukiMaitani/tcgp-card-data/internal/fetcher"
)

// Storage is the slice of file storage the runner needs: the resume check
// and the post-success write.
type Storage interface {
	Exists(name string) bool
	WriteFile(name string, data []byte) error
}

// Options configures per-task retry behaviour.
type Options struct {
	// RetryCount is the maximum number of fetch attempts per task.
	RetryCount int

	// RetryDelay is the base inter-attempt backoff; attempt n waits n times this.
	RetryDelay time.Duration

	// RequestDelay is the fixed throttle applied after any real network
	// attempt, successful or not. Skipped tasks pay no delay.
	RequestDelay time.Duration

	// Force re-fetches destinations that already exist.
	Force bool
}

// Runner drives a single task to its terminal outcome: skip check,
// bounded retries with linear backoff, and the inter-request throttle.
type Runner struct {
	fetcher fetcher.Fetcher
	store   Storage
	opts    Options
	logger  *slog.Logger
}

// NewRunner creates a Runner. A RetryCount below 1 is raised to 1.
func NewRunner(f fetcher.Fetcher, store Storage, opts Options, logger *slog.Logger) *Runner {
	if opts.RetryCount < 1 {
		opts.RetryCount = 1
	}
	return &Runner{
		fetcher: f,
		store:   store,
		opts:    opts,
		logger:  logger,
	}
}

// Run executes one task to completion. Every failure is classified and
// recorded in the outcome; nothing propagates past this boundary.
func (r *Runner) Run(ctx context.Context, task domain.Task) domain.TaskOutcome {
	if !r.opts.Force && r.store.Exists(task.Destination) {
		r.logger.Debug("destination already present, skipping", "label", task.Label)
		return domain.TaskOutcome{Task: task, Kind: domain.OutcomeSkipped}
	}

	outcome := r.attempt(ctx, task)

	// Throttle after any real network call, regardless of how it went.
	// Cancellation only cuts the pause short; the outcome is already terminal.
	if err := sleep(ctx, r.opts.RequestDelay); err != nil {
		r.logger.Debug("throttle cut short", "label", task.Label, "error", err)
	}

	return outcome
}

func (r *Runner) attempt(ctx context.Context, task domain.Task) domain.TaskOutcome {
	for attempt := 1; attempt <= r.opts.RetryCount; attempt++ {
		result := r.fetcher.Fetch(ctx, task.Source)

		switch result.Kind {
		case domain.AttemptNotFound:
			// A legitimately absent localization, terminal on the first sighting.
			return domain.TaskOutcome{Task: task, Kind: domain.OutcomeNotFound}

		case domain.AttemptSuccess:
			if err := r.store.WriteFile(task.Destination, result.Body); err != nil {
				r.logger.Error("failed to write downloaded asset", "label", task.Label, "error", err)
				return domain.TaskOutcome{Task: task, Kind: domain.OutcomeFailed, Err: err}
			}
			return domain.TaskOutcome{
				Task:  task,
				Kind:  domain.OutcomeDownloaded,
				Bytes: int64(len(result.Body)),
			}

		case domain.AttemptTransient:
			if attempt == r.opts.RetryCount {
				return domain.TaskOutcome{Task: task, Kind: domain.OutcomeFailed, Err: result.Err}
			}

			r.logger.Debug("transient failure, retrying",
				"label", task.Label,
				"attempt", attempt,
				"error", result.Err,
			)

			if err := sleep(ctx, r.opts.RetryDelay*time.Duration(attempt)); err != nil {
				return domain.TaskOutcome{Task: task, Kind: domain.OutcomeFailed, Err: err}
			}
		}
	}

	// Unreachable: the loop always returns on the final attempt.
	return domain.TaskOutcome{Task: task, Kind: domain.OutcomeFailed}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
