package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"audio-converter/domain/conversion"
	"audio-converter/domain/notification"
)

type mockSender struct {
	sent []*notification.SummaryEmail
	err  error
}

func (m *mockSender) Send(ctx context.Context, req *notification.SummaryEmail) error {
	m.sent = append(m.sent, req)
	return m.err
}

func TestService_Send(t *testing.T) {
	started := time.Date(2025, 12, 28, 10, 0, 0, 0, time.UTC)
	summary := &conversion.RunSummary{
		RunID:     "run-1",
		Format:    conversion.FormatMP3,
		Folder:    "/work/AudioConverted",
		StartedAt: started,
		Elapsed:   5 * time.Second,
		Results: []conversion.ConversionResult{
			{Item: conversion.NewQueueItem("/videos/a.mp4"), OutputPath: "/work/AudioConverted/a.mp3"},
			{Item: conversion.NewQueueItem("/videos/b.mkv"), Err: conversion.ErrNoAudioTrack},
		},
	}

	sender := &mockSender{}
	svc := NewService(sender, "Jonathan")

	err := svc.Send(context.Background(), SendRequest{
		To:      []notification.Recipient{{Name: "John", Address: "john@example.com"}},
		Summary: summary,
		URLs:    map[string]string{"/work/AudioConverted/a.mp3": "https://drive.example/a"},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}
	email := sender.sent[0]

	if email.RunID != "run-1" || email.Format != "mp3" || email.SenderName != "Jonathan" {
		t.Errorf("email header fields = %+v", email)
	}
	if !email.FinishedAt.Equal(started.Add(5 * time.Second)) {
		t.Errorf("FinishedAt = %v, want %v", email.FinishedAt, started.Add(5*time.Second))
	}
	if len(email.Completed) != 1 || email.Completed[0].Source != "a.mp4" || email.Completed[0].Output != "a.mp3" || email.Completed[0].URL != "https://drive.example/a" {
		t.Errorf("Completed = %+v", email.Completed)
	}
	if len(email.Failed) != 1 || email.Failed[0].Source != "b.mkv" || email.Failed[0].Message != conversion.ErrNoAudioTrack.Error() {
		t.Errorf("Failed = %+v", email.Failed)
	}
}

func TestService_Send_PropagatesError(t *testing.T) {
	sender := &mockSender{err: notification.ErrSendFailed}
	svc := NewService(sender, "Jonathan")

	err := svc.Send(context.Background(), SendRequest{
		Summary: &conversion.RunSummary{Format: conversion.FormatWAV},
	})
	if !errors.Is(err, notification.ErrSendFailed) {
		t.Errorf("Send() error = %v, want ErrSendFailed", err)
	}
}
