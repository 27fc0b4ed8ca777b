package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when --config is not given
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Google  GoogleConfig  `yaml:"google"`
	Email   EmailConfig   `yaml:"email"`
	Inspect InspectConfig `yaml:"inspect"`
}

// OutputConfig contains the defaults for converted files
type OutputConfig struct {
	Folder string `yaml:"folder"` // empty means <cwd>/AudioConverted
	Format string `yaml:"format"`
}

// FFmpegConfig contains media tool settings
type FFmpegConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	Bitrate     string `yaml:"bitrate"`
}

// GoogleConfig contains Google API settings
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	GmailTokenFile  string `yaml:"gmail_token_file"`
	FolderID        string `yaml:"folder_id"`
}

// EmailConfig contains settings for the end-of-run summary email
type EmailConfig struct {
	FromName    string            `yaml:"from_name"`
	FromAddress string            `yaml:"from_address"`
	Recipients  []RecipientConfig `yaml:"recipients"`
}

// RecipientConfig represents an email recipient
type RecipientConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// InspectConfig contains video inspection settings
type InspectConfig struct {
	SampleFrames int `yaml:"sample_frames"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "mp3"
	}
	if c.FFmpeg.FFmpegPath == "" {
		c.FFmpeg.FFmpegPath = "ffmpeg"
	}
	if c.FFmpeg.FFprobePath == "" {
		c.FFmpeg.FFprobePath = "ffprobe"
	}
	if c.FFmpeg.Bitrate == "" {
		c.FFmpeg.Bitrate = "192k"
	}
	if c.Google.CredentialsFile == "" {
		c.Google.CredentialsFile = "credentials.json"
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = "token.json"
	}
	if c.Google.GmailTokenFile == "" {
		c.Google.GmailTokenFile = "gmail_token.json"
	}
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist. A file that exists but cannot be parsed is still an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
