package notification

import (
	"context"
	"time"
)

// Recipient represents an email recipient with name and address
type Recipient struct {
	Name    string
	Address string
}

// ItemLine is one converted (or failed) video listed in a summary email
type ItemLine struct {
	Source  string // Base name of the source video
	Output  string // Base name of the written audio file
	URL     string // Shareable link, when the file was published
	Message string // Failure reason
}

// SummaryEmail contains all the data needed to send an end-of-run summary
type SummaryEmail struct {
	To         []Recipient   // Primary recipients
	CC         []Recipient   // Carbon copy recipients
	RunID      string        // Identifier of the drain run
	Format     string        // Output format of the run
	Folder     string        // Output folder of the run
	Completed  []ItemLine    // Items that produced an audio file
	Failed     []ItemLine    // Items that did not
	FinishedAt time.Time     // When the run ended
	Elapsed    time.Duration // Duration of the run
	SenderName string        // Name to sign the email
}

// Validate checks that the email request has all required fields
func (r *SummaryEmail) Validate() error {
	if len(r.To) == 0 {
		return ErrNoRecipients
	}
	for _, to := range append(append([]Recipient{}, r.To...), r.CC...) {
		if to.Address == "" {
			return ErrInvalidRecipient
		}
	}
	if r.FinishedAt.IsZero() {
		return ErrNoFinishTime
	}
	if len(r.Completed) == 0 && len(r.Failed) == 0 {
		return ErrNoItems
	}
	return nil
}

// EmailSender defines the interface for sending emails
type EmailSender interface {
	Send(ctx context.Context, req *SummaryEmail) error
}
