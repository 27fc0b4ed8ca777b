//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"audio-converter/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	envPath    string
	cfg        *config.Config
	loadErr    error
	envKeys    []string
}

// SharedConfigContext is reset before each scenario
var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		*testCtx = configContext{
			tempDir:    dir,
			configPath: filepath.Join(dir, "config.yaml"),
			envPath:    filepath.Join(dir, ".env"),
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		for _, k := range testCtx.envKeys {
			os.Unsetenv(k)
		}
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a config file containing:$`, testCtx.aConfigFileContaining)
	ctx.Step(`^no config file exists$`, testCtx.noConfigFileExists)
	ctx.Step(`^an env file containing:$`, testCtx.anEnvFileContaining)
	ctx.Step(`^I load the configuration$`, testCtx.iLoadTheConfiguration)
	ctx.Step(`^loading should succeed$`, testCtx.loadingShouldSucceed)
	ctx.Step(`^loading should fail$`, testCtx.loadingShouldFail)
	ctx.Step(`^the output format should be "([^"]*)"$`, testCtx.theOutputFormatShouldBe)
	ctx.Step(`^the output folder should be "([^"]*)"$`, testCtx.theOutputFolderShouldBe)
	ctx.Step(`^the ffmpeg path should be "([^"]*)"$`, testCtx.theFFmpegPathShouldBe)
	ctx.Step(`^the bitrate should be "([^"]*)"$`, testCtx.theBitrateShouldBe)
}

func (c *configContext) aConfigFileContaining(doc *godog.DocString) error {
	return os.WriteFile(c.configPath, []byte(doc.Content), 0644)
}

func (c *configContext) noConfigFileExists() error {
	os.Remove(c.configPath)
	return nil
}

func (c *configContext) anEnvFileContaining(doc *godog.DocString) error {
	for _, k := range []string{config.EnvFFmpegPath, config.EnvFFprobePath, config.EnvOutputFolder, config.EnvFormat} {
		if _, set := os.LookupEnv(k); !set {
			c.envKeys = append(c.envKeys, k)
		}
	}
	return os.WriteFile(c.envPath, []byte(doc.Content), 0644)
}

func (c *configContext) iLoadTheConfiguration() error {
	if err := config.LoadEnvFile(c.envPath); err != nil {
		return err
	}
	c.cfg, c.loadErr = config.LoadOrDefault(c.configPath)
	if c.loadErr == nil {
		config.ApplyEnv(c.cfg)
	}
	return nil
}

func (c *configContext) loadingShouldSucceed() error {
	if c.loadErr != nil {
		return fmt.Errorf("expected configuration to load, got %v", c.loadErr)
	}
	return nil
}

func (c *configContext) loadingShouldFail() error {
	if c.loadErr == nil {
		return fmt.Errorf("expected configuration load to fail")
	}
	return nil
}

func expectValue(field, got, want string) error {
	if got != want {
		return fmt.Errorf("%s = %q, want %q", field, got, want)
	}
	return nil
}

func (c *configContext) theOutputFormatShouldBe(want string) error {
	return expectValue("output.format", c.cfg.Output.Format, want)
}

func (c *configContext) theOutputFolderShouldBe(want string) error {
	return expectValue("output.folder", c.cfg.Output.Folder, want)
}

func (c *configContext) theFFmpegPathShouldBe(want string) error {
	return expectValue("ffmpeg.ffmpeg_path", c.cfg.FFmpeg.FFmpegPath, want)
}

func (c *configContext) theBitrateShouldBe(want string) error {
	return expectValue("ffmpeg.bitrate", c.cfg.FFmpeg.Bitrate, want)
}
