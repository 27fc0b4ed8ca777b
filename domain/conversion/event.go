package conversion

import "time"

// EventKind distinguishes per-item status events from the end-of-run event
type EventKind string

const (
	// EventItemStatus reports a status transition of one item
	EventItemStatus EventKind = "item"

	// EventAllDone is the last event of a run
	EventAllDone EventKind = "done"
)

// Event is published to the status sink while a queue drains
type Event struct {
	Kind       EventKind
	RunID      string
	Path       string
	Status     Status
	OutputPath string
	Message    string
	Summary    *RunSummary // set on EventAllDone
}

// RunSummary describes a finished drain
type RunSummary struct {
	RunID     string
	Format    Format
	Folder    string
	Results   []ConversionResult
	StartedAt time.Time
	Elapsed   time.Duration
}

// Completed returns the results that produced an output file
func (s *RunSummary) Completed() []ConversionResult {
	var out []ConversionResult
	for _, r := range s.Results {
		if r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the results that did not produce an output file
func (s *RunSummary) Failed() []ConversionResult {
	var out []ConversionResult
	for _, r := range s.Results {
		if !r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}
