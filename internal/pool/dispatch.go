package pool

import "github.com/YukiMaitani/tcgp-card-data/internal/domain"

// Dispatch hands out tasks to workers. Each task is delivered exactly
// once; after the sequence is drained, every current and future call to
// Next observes exhaustion.
type Dispatch struct {
	ch chan domain.Task
}

// NewDispatch creates a Dispatch over the given task sequence.
func NewDispatch(tasks []domain.Task) *Dispatch {
	ch := make(chan domain.Task, len(tasks))
	for _, t := range tasks {
		ch <- t
	}
	close(ch)

	return &Dispatch{ch: ch}
}

// Next returns the next task, or ok=false once the sequence is exhausted.
// Safe for concurrent use by any number of workers.
func (d *Dispatch) Next() (domain.Task, bool) {
	t, ok := <-d.ch
	return t, ok
}
