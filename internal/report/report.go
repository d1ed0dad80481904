package report

import (
	"fmt"
	"io"
	"time"

	"github.com/YukiMaitani/tcgp-card-data/internal/domain"
)

// Reporter renders live progress and the final run summary to a console
// writer. Update is fed by the pool's progress callback, which serializes
// invocations, so the Reporter keeps no locking of its own.
type Reporter struct {
	out   io.Writer
	total int
}

// NewReporter creates a Reporter for a run of total tasks.
func NewReporter(out io.Writer, total int) *Reporter {
	return &Reporter{out: out, total: total}
}

// Update rewrites the progress line with cumulative counts.
func (r *Reporter) Update(p domain.Progress) {
	fmt.Fprintf(r.out, "\r%d/%d | downloaded: %d | skipped: %d | missing: %d | failed: %d    ",
		p.Done,
		r.total,
		p.Downloaded,
		p.Skipped,
		p.NotFound,
		p.Failed,
	)
}

// Summarize prints the final run summary block. bytesOnDisk is the
// aggregate size of the data directory after the run.
func (r *Reporter) Summarize(s domain.Summary, bytesOnDisk int64, elapsed time.Duration) {
	fmt.Fprintf(r.out, "\n\nDone in %s\n", formatDuration(elapsed))
	fmt.Fprintf(r.out, "  downloaded: %d (%s this run)\n", s.Downloaded, formatBytes(s.Bytes))
	fmt.Fprintf(r.out, "  skipped:    %d\n", s.Skipped)
	fmt.Fprintf(r.out, "  missing:    %d\n", s.NotFound)
	fmt.Fprintf(r.out, "  failed:     %d\n", s.Failed)
	fmt.Fprintf(r.out, "  on disk:    %s\n", formatBytes(bytesOnDisk))

	if len(s.FailedLabels) > 0 {
		fmt.Fprintf(r.out, "\nFailed downloads:\n")
		for _, label := range s.FailedLabels {
			fmt.Fprintf(r.out, "  - %s\n", label)
		}
	}
}

func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
