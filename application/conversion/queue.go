package conversion

import (
	"fmt"
	"sync"

	"audio-converter/domain/conversion"
)

// Queue holds the videos submitted for conversion.
// Pending paths are dequeued in insertion order; every item keeps its last
// status after it leaves the pending list so it can still be displayed.
type Queue struct {
	mu      sync.Mutex
	pending []string
	items   map[string]*conversion.QueueItem
	order   []string
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{
		items: make(map[string]*conversion.QueueItem),
	}
}

// Enqueue adds path as a Pending item. It returns false, and changes nothing,
// if the exact same path was already enqueued.
func (q *Queue) Enqueue(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.items[path]; exists {
		return false
	}

	item := conversion.NewQueueItem(path)
	q.items[path] = &item
	q.order = append(q.order, path)
	q.pending = append(q.pending, path)
	return true
}

// DequeueNext removes and returns the oldest pending item.
// It returns false when nothing is pending.
func (q *Queue) DequeueNext() (conversion.QueueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return conversion.QueueItem{}, false
	}

	path := q.pending[0]
	q.pending = q.pending[1:]
	return *q.items[path], true
}

// IsEmpty returns true if no item is pending
func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) == 0
}

// Len returns the number of pending items
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Pending returns the pending paths in dequeue order
func (q *Queue) Pending() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]string, len(q.pending))
	copy(out, q.pending)
	return out
}

// Items returns a snapshot of every item ever enqueued, in enqueue order
func (q *Queue) Items() []conversion.QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]conversion.QueueItem, 0, len(q.order))
	for _, path := range q.order {
		out = append(out, *q.items[path])
	}
	return out
}

// Item returns the item for path
func (q *Queue) Item(path string) (conversion.QueueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.items[path]
	if !ok {
		return conversion.QueueItem{}, false
	}
	return *item, true
}

// SetStatus moves the item for path to status.
// Only Pending -> InProgress -> Completed|Failed transitions are accepted.
func (q *Queue) SetStatus(path string, status conversion.Status, outputPath, message string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.items[path]
	if !ok {
		return fmt.Errorf("item not in queue: %s", path)
	}
	if !item.Status.CanTransitionTo(status) {
		return fmt.Errorf("invalid status change for %s: %s -> %s", path, item.Status, status)
	}

	item.Status = status
	item.OutputPath = outputPath
	item.Message = message
	return nil
}
