package domain

// Task describes one fetch-to-path operation. Tasks are built once by the
// catalog layer and never mutated; Destination is unique within a run.
type Task struct {
	Source      string
	Destination string
	Label       string
}
