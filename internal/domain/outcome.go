package domain

// AttemptKind classifies the result of a single fetch attempt.
type AttemptKind string

const (
	AttemptSuccess   AttemptKind = "success"
	AttemptNotFound  AttemptKind = "not_found"
	AttemptTransient AttemptKind = "transient"
)

// AttemptOutcome is the result of one network attempt. Body is set only
// for successful attempts and holds the complete resource.
type AttemptOutcome struct {
	Kind AttemptKind
	Body []byte
	Err  error
}

// OutcomeKind is the terminal classification of a task after retries.
type OutcomeKind string

const (
	OutcomeDownloaded OutcomeKind = "downloaded"
	OutcomeSkipped    OutcomeKind = "skipped"
	OutcomeNotFound   OutcomeKind = "not_found"
	OutcomeFailed     OutcomeKind = "failed"
)

// TaskOutcome is the terminal result of one task. Bytes is the size of
// the body written for downloaded tasks, zero otherwise.
type TaskOutcome struct {
	Task  Task
	Kind  OutcomeKind
	Bytes int64
	Err   error
}

// Summary accumulates terminal outcomes for one run.
type Summary struct {
	Downloaded   int
	Skipped      int
	NotFound     int
	Failed       int
	Bytes        int64
	FailedLabels []string
}

// Total returns the number of tasks that reached a terminal outcome.
func (s Summary) Total() int {
	return s.Downloaded + s.Skipped + s.NotFound + s.Failed
}

// Progress is a cumulative snapshot handed to the progress callback after
// every recorded outcome.
type Progress struct {
	Done       int
	Downloaded int
	Skipped    int
	NotFound   int
	Failed     int
}
