package conversion

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"audio-converter/domain/conversion"

	"github.com/google/uuid"
)

// State is the state of the drain loop
type State string

const (
	StateIdle     State = "Idle"
	StateDraining State = "Draining"
)

// Converter converts one request. Worker is the production implementation.
type Converter interface {
	Convert(ctx context.Context, req *conversion.ConversionRequest) conversion.ConversionResult
}

// DrainOptions are the settings shared by every item of one run
type DrainOptions struct {
	Format       conversion.Format
	OutputFolder string // defaults to <cwd>/AudioConverted
}

// DefaultEventBuffer is the capacity of each run's events channel
const DefaultEventBuffer = 64

// Drainer processes the queue on a single background goroutine and reports
// progress on a per-run events channel. At most one drain runs at a time.
type Drainer struct {
	queue       *Queue
	converter   Converter
	eventBuffer int
	newRunID    func() string
	now         func() time.Time
	getwd       func() (string, error)

	mu     sync.Mutex
	state  State
	events <-chan conversion.Event
	done   chan struct{}
}

// DrainerOption is a functional option for configuring Drainer
type DrainerOption func(*Drainer)

// WithEventBuffer sets the capacity of each run's events channel
func WithEventBuffer(size int) DrainerOption {
	return func(d *Drainer) {
		d.eventBuffer = size
	}
}

// WithRunIDGenerator sets a custom run ID generator (for testing)
func WithRunIDGenerator(fn func() string) DrainerOption {
	return func(d *Drainer) {
		d.newRunID = fn
	}
}

// WithClock sets a custom time source (for testing)
func WithClock(now func() time.Time) DrainerOption {
	return func(d *Drainer) {
		d.now = now
	}
}

// WithWorkingDir sets the directory the default output folder is resolved against
func WithWorkingDir(dir string) DrainerOption {
	return func(d *Drainer) {
		d.getwd = func() (string, error) { return dir, nil }
	}
}

// NewDrainer creates an idle Drainer over queue
func NewDrainer(queue *Queue, converter Converter, opts ...DrainerOption) *Drainer {
	closed := make(chan conversion.Event)
	close(closed)

	d := &Drainer{
		queue:       queue,
		converter:   converter,
		eventBuffer: DefaultEventBuffer,
		newRunID:    func() string { return uuid.New().String() },
		now:         time.Now,
		getwd:       os.Getwd,
		state:       StateIdle,
		events:      closed,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Events returns the status sink of the most recent run. It carries only
// that run's events, ends with EventAllDone and is then closed. Before the
// first run it is already closed.
// The drain goroutine never waits for the reader; unread events are held
// until they are received.
func (d *Drainer) Events() <-chan conversion.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.events
}

// State returns the current state
func (d *Drainer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Validate reports whether Start would accept opts right now, without
// starting anything.
func (d *Drainer) Validate(opts DrainOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.validate(opts)
}

func (d *Drainer) validate(opts DrainOptions) error {
	if d.state == StateDraining {
		return conversion.NewValidationError(conversion.ErrAlreadyRunning, "wait for the current conversion to finish")
	}
	if d.queue.IsEmpty() {
		return conversion.NewValidationError(conversion.ErrNoFileSelected, "select at least one video file")
	}
	if !opts.Format.Valid() {
		return conversion.NewValidationError(conversion.ErrNoFormatSelected, "choose one of mp3, wav, aac, ogg")
	}
	return nil
}

// Start validates the run and begins draining the queue in the background.
// It returns the run ID, or a *conversion.ValidationError if the drain is
// already running, the queue is empty, or the format is missing.
func (d *Drainer) Start(ctx context.Context, opts DrainOptions) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validate(opts); err != nil {
		return "", err
	}

	folder := opts.OutputFolder
	if folder == "" {
		cwd, err := d.getwd()
		if err != nil {
			return "", err
		}
		folder = conversion.DefaultOutputFolder(cwd)
	}

	summary := &conversion.RunSummary{
		RunID:     d.newRunID(),
		Format:    opts.Format,
		Folder:    folder,
		StartedAt: d.now(),
	}

	events := newRunEvents(d.eventBuffer)
	d.events = events.out
	d.state = StateDraining
	d.done = make(chan struct{})
	go d.drain(ctx, summary, events, d.done)

	return summary.RunID, nil
}

// Wait blocks until the current drain, if any, has published its final
// event. It does not depend on anyone reading Events.
func (d *Drainer) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (d *Drainer) drain(ctx context.Context, summary *conversion.RunSummary, events *runEvents, done chan struct{}) {
	defer close(done)

	for {
		item, ok := d.queue.DequeueNext()
		if !ok {
			break
		}
		summary.Results = append(summary.Results, d.process(ctx, summary, events, item))
	}

	summary.Elapsed = d.now().Sub(summary.StartedAt)

	d.mu.Lock()
	d.state = StateIdle
	d.mu.Unlock()

	events.publish(conversion.Event{
		Kind:    conversion.EventAllDone,
		RunID:   summary.RunID,
		Summary: summary,
	})
}

func (d *Drainer) process(ctx context.Context, summary *conversion.RunSummary, events *runEvents, item conversion.QueueItem) conversion.ConversionResult {
	path := item.SourcePath

	if err := d.queue.SetStatus(path, conversion.StatusInProgress, "", ""); err != nil {
		result := conversion.ConversionResult{Item: item, Err: err}
		result.Item.Status = result.Status()
		result.Item.Message = result.Message()
		events.publish(itemEvent(summary.RunID, result.Item))
		return result
	}
	item.Status = conversion.StatusInProgress
	events.publish(itemEvent(summary.RunID, item))

	var result conversion.ConversionResult
	req, err := conversion.NewConversionRequest(item, summary.Format, summary.Folder)
	if err != nil {
		result = conversion.ConversionResult{Item: item, Err: err}
	} else {
		result = d.converter.Convert(ctx, req)
	}

	if err := d.queue.SetStatus(path, result.Status(), result.OutputPath, result.Message()); err != nil {
		result.Err = errors.Join(result.Err, err)
	}

	item.Status = result.Status()
	item.OutputPath = result.OutputPath
	item.Message = result.Message()
	result.Item = item
	events.publish(itemEvent(summary.RunID, item))

	return result
}

func itemEvent(runID string, item conversion.QueueItem) conversion.Event {
	return conversion.Event{
		Kind:       conversion.EventItemStatus,
		RunID:      runID,
		Path:       item.SourcePath,
		Status:     item.Status,
		OutputPath: item.OutputPath,
		Message:    item.Message,
	}
}

// runEvents delivers the events of one run in order. publish never blocks;
// forward hands events to out as the reader takes them and closes out after
// EventAllDone.
type runEvents struct {
	out   chan conversion.Event
	ready chan struct{}

	mu      sync.Mutex
	pending []conversion.Event
}

func newRunEvents(buffer int) *runEvents {
	r := &runEvents{
		out:   make(chan conversion.Event, buffer),
		ready: make(chan struct{}, 1),
	}
	go r.forward()
	return r
}

func (r *runEvents) publish(ev conversion.Event) {
	r.mu.Lock()
	r.pending = append(r.pending, ev)
	r.mu.Unlock()

	select {
	case r.ready <- struct{}{}:
	default:
	}
}

func (r *runEvents) forward() {
	defer close(r.out)

	for range r.ready {
		r.mu.Lock()
		batch := r.pending
		r.pending = nil
		r.mu.Unlock()

		for _, ev := range batch {
			r.out <- ev
			if ev.Kind == conversion.EventAllDone {
				return
			}
		}
	}
}
