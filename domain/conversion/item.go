package conversion

// Status is the conversion status of a queue item
type Status string

const (
	// StatusPending means the item is queued but not yet claimed by the worker
	StatusPending Status = "Pending"

	// StatusInProgress means the worker is converting the item
	StatusInProgress Status = "InProgress"

	// StatusCompleted means the audio file was written
	StatusCompleted Status = "Completed"

	// StatusFailed means the conversion failed; Message holds the reason
	StatusFailed Status = "Failed"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for Completed and Failed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether next is the status that follows s.
// Items only move Pending -> InProgress -> Completed|Failed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress
	case StatusInProgress:
		return next.IsTerminal()
	default:
		return false
	}
}

// QueueItem is one source video and its conversion status.
// SourcePath is the identity of the item.
type QueueItem struct {
	SourcePath string
	Status     Status
	OutputPath string // set once Completed
	Message    string // set once Failed
}

// NewQueueItem creates a pending item for path
func NewQueueItem(path string) QueueItem {
	return QueueItem{
		SourcePath: path,
		Status:     StatusPending,
	}
}
