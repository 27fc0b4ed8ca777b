package conversion

// ConversionResult is the outcome of converting one item.
// Err is nil on success, in which case OutputPath is set.
type ConversionResult struct {
	Item       QueueItem
	OutputPath string
	Err        error
}

// Succeeded returns true if the conversion produced an output file
func (r ConversionResult) Succeeded() bool {
	return r.Err == nil
}

// Message returns the human readable failure message, or "" on success
func (r ConversionResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Status returns the terminal status matching the outcome
func (r ConversionResult) Status() Status {
	if r.Err == nil {
		return StatusCompleted
	}
	return StatusFailed
}
