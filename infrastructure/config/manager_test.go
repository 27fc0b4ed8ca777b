package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestConfigManager_Recipients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	mgr := NewConfigManager(cfg, path)

	if err := mgr.AddRecipient("Jane Doe", "jane@example.com"); err != nil {
		t.Fatalf("AddRecipient() unexpected error: %v", err)
	}
	if err := mgr.AddRecipient("Jane Again", "JANE@example.com"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("AddRecipient() duplicate error = %v, want ErrDuplicateKey", err)
	}
	if err := mgr.AddRecipient("Bad", "not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("AddRecipient() invalid email error = %v, want ErrInvalidEmail", err)
	}
	if err := mgr.AddRecipient("", "x@example.com"); err == nil {
		t.Error("AddRecipient() without name expected error, got nil")
	}

	saved, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(saved.Email.Recipients) != 1 {
		t.Fatalf("saved recipients = %+v, want 1", saved.Email.Recipients)
	}

	if err := mgr.RemoveRecipient("missing@example.com"); !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("RemoveRecipient() missing error = %v, want ErrRecipientNotFound", err)
	}
	if err := mgr.RemoveRecipient("jane@example.com"); err != nil {
		t.Fatalf("RemoveRecipient() unexpected error: %v", err)
	}
	if n := len(mgr.ListRecipients()); n != 0 {
		t.Errorf("ListRecipients() = %d entries, want 0", n)
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"", false},
		{"@example.com", false},
		{"jane@example", false},
		{"jane@.com", false},
		{"jane@example.", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := isValidEmail(tt.email); got != tt.want {
				t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
