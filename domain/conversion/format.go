package conversion

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output audio format
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
	FormatAAC Format = "aac"
	FormatOGG Format = "ogg"
)

// DefaultFormat is used when neither a flag nor the config selects a format
const DefaultFormat = FormatMP3

// SupportedFormats lists the output formats in display order
var SupportedFormats = []Format{FormatMP3, FormatWAV, FormatAAC, FormatOGG}

// VideoExtensions lists the source extensions offered for selection (without the dot)
var VideoExtensions = []string{"mp4", "mkv", "mov", "m4a", "avi"}

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return "", fmt.Errorf("output format is required")
	}
	if !f.Valid() {
		return "", fmt.Errorf("unsupported output format %q: expected one of %s", s, formatList())
	}
	return f, nil
}

// Valid reports whether f is one of SupportedFormats
func (f Format) Valid() bool {
	for _, s := range SupportedFormats {
		if f == s {
			return true
		}
	}
	return false
}

func (f Format) String() string {
	return string(f)
}

// IsVideoFile reports whether path has one of VideoExtensions
func IsVideoFile(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

func formatList() string {
	names := make([]string, len(SupportedFormats))
	for i, f := range SupportedFormats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
