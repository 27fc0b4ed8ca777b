package cmd

import (
	"fmt"
	"os"

	"audio-converter/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "audio-converter",
	Short: "Extract the audio track of video files",
	Long: `audio-converter extracts the audio track of one or more videos and writes
each one as a standalone audio file:

  - Queue videos by path, by folder, or interactively
  - Convert them one at a time to mp3, wav, aac or ogg
  - Optionally share the results on Google Drive
  - Optionally email a summary of the run

Example:
  audio-converter convert talk.mp4 interview.mkv --format mp3`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file of AUDIO_CONVERTER_* overrides")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	if err := config.LoadEnvFile(envFile); err != nil {
		cfgErr = fmt.Errorf("failed to load %s: %w", envFile, err)
		return
	}

	cfg, cfgErr = config.LoadOrDefault(cfgFile)
	if cfgErr != nil {
		return
	}
	config.ApplyEnv(cfg)
}

// GetConfig returns the loaded configuration. A missing config file yields
// the defaults; a malformed one is reported here.
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}
