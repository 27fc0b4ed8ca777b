package conversion

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        Format
		wantErr     bool
		errContains string
	}{
		{name: "mp3", input: "mp3", want: FormatMP3},
		{name: "wav", input: "wav", want: FormatWAV},
		{name: "aac", input: "aac", want: FormatAAC},
		{name: "ogg", input: "ogg", want: FormatOGG},
		{name: "upper case", input: "WAV", want: FormatWAV},
		{name: "surrounding spaces", input: "  ogg ", want: FormatOGG},
		{name: "empty", input: "", wantErr: true, errContains: "output format is required"},
		{name: "unsupported", input: "flac", wantErr: true, errContains: "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) expected error, got nil", tt.input)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseFormat(%q) error = %v, want error containing %q", tt.input, err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/videos/a.mp4", true},
		{"/videos/b.MKV", true},
		{"clip.mov", true},
		{"voice.m4a", true},
		{"old.avi", true},
		{"song.mp3", false},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsVideoFile(tt.path); got != tt.want {
				t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
