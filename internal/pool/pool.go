package pool

import (
	"context"
	"sync"

	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/YukiMaitani/tcgp-card-data/internal/domain"
	"github.com/YukiMaitani/tcgp-card-data/internal/metrics"
)

// Runner takes one task to its terminal outcome.
type Runner interface {
	Run(ctx context.Context, task domain.Task) domain.TaskOutcome
}

// ProgressFunc receives a cumulative snapshot after every recorded
// outcome. Snapshots are delivered in recording order.
type ProgressFunc func(domain.Progress)

// Pool runs a fixed number of workers over a shared task sequence and
// aggregates their terminal outcomes into a run summary. A failing task
// never aborts the run or any other worker.
type Pool struct {
	runner   Runner
	workers  int
	progress ProgressFunc
	logger   *slog.Logger

	mu      sync.Mutex
	summary domain.Summary
}

// NewPool creates a Pool with the given worker count (minimum 1).
// progress may be nil.
func NewPool(runner Runner, workers int, progress ProgressFunc, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		runner:   runner,
		workers:  workers,
		progress: progress,
		logger:   logger,
	}
}

// Run processes every task and returns the finalized summary. It returns
// only after all workers have drained the dispatch and every in-flight
// task has a recorded outcome.
func (p *Pool) Run(ctx context.Context, tasks []domain.Task) domain.Summary {
	dispatch := NewDispatch(tasks)

	p.logger.Info("worker pool starting", "workers", p.workers, "tasks", len(tasks))

	var g errgroup.Group
	for i := 0; i < p.workers; i++ {
		workerID := i + 1
		g.Go(func() error {
			for {
				task, ok := dispatch.Next()
				if !ok {
					p.logger.Debug("worker finished", "worker_id", workerID)
					return nil
				}
				p.record(p.runner.Run(ctx, task))
			}
		})
	}

	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	final := p.summary
	final.FailedLabels = append([]string(nil), p.summary.FailedLabels...)
	return final
}

func (p *Pool) record(outcome domain.TaskOutcome) {
	p.mu.Lock()

	switch outcome.Kind {
	case domain.OutcomeDownloaded:
		p.summary.Downloaded++
		p.summary.Bytes += outcome.Bytes
		metrics.TasksDownloaded.Inc()
		metrics.DownloadBytes.Add(float64(outcome.Bytes))
	case domain.OutcomeSkipped:
		p.summary.Skipped++
		metrics.TasksSkipped.Inc()
	case domain.OutcomeNotFound:
		p.summary.NotFound++
		metrics.TasksNotFound.Inc()
	case domain.OutcomeFailed:
		p.summary.Failed++
		p.summary.FailedLabels = append(p.summary.FailedLabels, outcome.Task.Label)
		metrics.TasksFailed.Inc()
	}

	snapshot := domain.Progress{
		Done:       p.summary.Total(),
		Downloaded: p.summary.Downloaded,
		Skipped:    p.summary.Skipped,
		NotFound:   p.summary.NotFound,
		Failed:     p.summary.Failed,
	}

	// Invoked under the lock so snapshots arrive in recording order.
	if p.progress != nil {
		p.progress(snapshot)
	}

	p.mu.Unlock()

	switch outcome.Kind {
	case domain.OutcomeDownloaded:
		p.logger.Debug("downloaded", "label", outcome.Task.Label, "bytes", outcome.Bytes)
	case domain.OutcomeSkipped:
		p.logger.Debug("skipped", "label", outcome.Task.Label)
	case domain.OutcomeNotFound:
		p.logger.Debug("not available", "label", outcome.Task.Label)
	case domain.OutcomeFailed:
		p.logger.Warn("download failed", "label", outcome.Task.Label, "error", outcome.Err)
	}
}
