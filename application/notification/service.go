package notification

import (
	"context"
	"path/filepath"
	"time"

	"audio-converter/domain/conversion"
	"audio-converter/domain/notification"
)

// Service handles email notification operations
type Service struct {
	sender     notification.EmailSender
	senderName string
	now        func() time.Time
}

// NewService creates a new notification service
func NewService(sender notification.EmailSender, senderName string) *Service {
	return &Service{
		sender:     sender,
		senderName: senderName,
		now:        time.Now,
	}
}

// SendRequest contains the parameters for sending a run summary
type SendRequest struct {
	To      []notification.Recipient
	CC      []notification.Recipient
	Summary *conversion.RunSummary
	// URLs maps an output path to its shareable link, for published runs
	URLs map[string]string
}

// Send sends the summary email of a finished run
func (s *Service) Send(ctx context.Context, req SendRequest) error {
	return s.sender.Send(ctx, s.buildEmail(req))
}

func (s *Service) buildEmail(req SendRequest) *notification.SummaryEmail {
	summary := req.Summary
	email := &notification.SummaryEmail{
		To:         req.To,
		CC:         req.CC,
		RunID:      summary.RunID,
		Format:     summary.Format.String(),
		Folder:     summary.Folder,
		FinishedAt: summary.StartedAt.Add(summary.Elapsed),
		Elapsed:    summary.Elapsed,
		SenderName: s.senderName,
	}
	if summary.StartedAt.IsZero() {
		email.FinishedAt = s.now()
	}

	for _, r := range summary.Completed() {
		email.Completed = append(email.Completed, notification.ItemLine{
			Source: filepath.Base(r.Item.SourcePath),
			Output: filepath.Base(r.OutputPath),
			URL:    req.URLs[r.OutputPath],
		})
	}
	for _, r := range summary.Failed() {
		email.Failed = append(email.Failed, notification.ItemLine{
			Source:  filepath.Base(r.Item.SourcePath),
			Message: r.Message(),
		})
	}
	return email
}
