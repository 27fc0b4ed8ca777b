package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `output:
  folder: /music/extracted
  format: wav
ffmpeg:
  ffmpeg_path: /usr/local/bin/ffmpeg
google:
  folder_id: abc123
email:
  from_name: Converter
  from_address: converter@example.com
  recipients:
    - name: Jane Doe
      address: jane@example.com
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Output.Folder != "/music/extracted" || cfg.Output.Format != "wav" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.FFmpeg.FFmpegPath != "/usr/local/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.FFmpeg.FFmpegPath)
	}
	// defaults fill the gaps
	if cfg.FFmpeg.FFprobePath != "ffprobe" || cfg.FFmpeg.Bitrate != "192k" {
		t.Errorf("FFmpeg defaults not applied: %+v", cfg.FFmpeg)
	}
	if cfg.Google.FolderID != "abc123" || cfg.Google.TokenFile != "token.json" {
		t.Errorf("Google = %+v", cfg.Google)
	}
	if len(cfg.Email.Recipients) != 1 || cfg.Email.Recipients[0].Address != "jane@example.com" {
		t.Errorf("Recipients = %+v", cfg.Email.Recipients)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() on missing file expected error, got nil")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "output: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("Load() on invalid YAML expected error, got nil")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() unexpected error: %v", err)
	}
	if cfg.Output.Format != "mp3" || cfg.Output.Folder != "" {
		t.Errorf("default Output = %+v, want mp3 and empty folder", cfg.Output)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "output: [unclosed")
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("LoadOrDefault() on invalid YAML expected error, got nil")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Output.Format = "ogg"
	cfg.Email.Recipients = []RecipientConfig{{Name: "John", Address: "john@example.com"}}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if loaded.Output.Format != "ogg" || len(loaded.Email.Recipients) != 1 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}
