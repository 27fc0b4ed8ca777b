package conversion

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFileSelected is returned when a drain is started with an empty queue
	ErrNoFileSelected = errors.New("no video file selected")

	// ErrNoFormatSelected is returned when a drain is started without a valid output format
	ErrNoFormatSelected = errors.New("no output format selected")

	// ErrAlreadyRunning is returned when a drain is started while another one is running
	ErrAlreadyRunning = errors.New("conversion already running")

	// ErrNoAudioTrack is returned when the source video has no audio stream
	ErrNoAudioTrack = errors.New("video has no audio track")
)

// ValidationError blocks a drain from starting. The queue is left untouched.
type ValidationError struct {
	Err        error
	Message    string
	Suggestion string
}

// NewValidationError creates a ValidationError for one of the sentinel errors
func NewValidationError(err error, suggestion string) *ValidationError {
	return &ValidationError{
		Err:        err,
		Message:    err.Error(),
		Suggestion: suggestion,
	}
}

func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s\n\nTo fix this:\n  %s", e.Message, e.Suggestion)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// OpenError wraps a media library failure to open a source video
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// EncodeError wraps a media library failure to write the audio stream
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
