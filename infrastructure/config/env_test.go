package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvFFmpegPath, "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv(EnvOutputFolder, "/tmp/out")
	t.Setenv(EnvFormat, "")

	cfg := Default()
	ApplyEnv(cfg)

	if cfg.FFmpeg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.FFmpeg.FFmpegPath)
	}
	if cfg.Output.Folder != "/tmp/out" {
		t.Errorf("Output.Folder = %q", cfg.Output.Folder)
	}
	if cfg.Output.Format != "mp3" {
		t.Errorf("empty variable should not override, Output.Format = %q", cfg.Output.Format)
	}
	if cfg.FFmpeg.FFprobePath != "ffprobe" {
		t.Errorf("unset variable should not override, FFprobePath = %q", cfg.FFmpeg.FFprobePath)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadEnvFile() on missing file unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, EnvFFprobePath+"=/opt/ffprobe\n")
	t.Setenv(EnvFFprobePath, "")
	os.Unsetenv(EnvFFprobePath)

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() unexpected error: %v", err)
	}
	if got := os.Getenv(EnvFFprobePath); got != "/opt/ffprobe" {
		t.Errorf("%s = %q, want /opt/ffprobe", EnvFFprobePath, got)
	}
}
