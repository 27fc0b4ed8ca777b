package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvFFmpegPath   = "AUDIO_CONVERTER_FFMPEG"
	EnvFFprobePath  = "AUDIO_CONVERTER_FFPROBE"
	EnvOutputFolder = "AUDIO_CONVERTER_OUTPUT"
	EnvFormat       = "AUDIO_CONVERTER_FORMAT"
)

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment. Variables already set are kept. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides cfg with any of the AUDIO_CONVERTER_* variables that are set
func ApplyEnv(cfg *Config) {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvFFmpegPath, &cfg.FFmpeg.FFmpegPath},
		{EnvFFprobePath, &cfg.FFmpeg.FFprobePath},
		{EnvOutputFolder, &cfg.Output.Folder},
		{EnvFormat, &cfg.Output.Format},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.target = v
		}
	}
}
