package cmd

import (
	"context"
	"fmt"

	appinspect "audio-converter/application/inspect"
	"audio-converter/domain/inspect"
	"audio-converter/infrastructure/ffmpeg"
	infrainspect "audio-converter/infrastructure/inspect"

	"github.com/spf13/cobra"
)

var inspectFrames bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <video...>",
	Short: "Show the streams of videos before converting them",
	Long: `Probe each video with ffprobe and report its container, duration and
streams. Videos without an audio track cannot be converted.

With --frames the first frames are decoded with OpenCV to report frame rate,
frame count and brightness. This requires a build with '-tags=inspect'.

Example:
  audio-converter inspect talk.mp4
  audio-converter inspect --frames talk.mp4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectFrames, "frames", false, "Decode the first frames with OpenCV")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	lib := ffmpeg.NewLibrary(ffmpeg.WithFFprobePath(cfg.FFmpeg.FFprobePath))

	var sampler inspect.FrameSampler
	if inspectFrames {
		sampler = infrainspect.NewFrameSampler()
	}

	svc := appinspect.NewService(lib, sampler, cfg.Inspect.SampleFrames, DefaultOutput)
	return RunInspectWithDependencies(cmd.Context(), svc, args, DefaultOutput)
}

// RunInspectWithDependencies inspects every path, continuing past failures (for testing)
func RunInspectWithDependencies(ctx context.Context, svc *appinspect.Service, paths []string, out OutputWriter) error {
	failed := 0
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(out)
		}
		report, err := svc.Inspect(ctx, path)
		if err != nil {
			fmt.Fprintf(out, "%s\n  Error: %v\n", path, err)
			failed++
			continue
		}
		appinspect.PrintReport(out, report)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d videos could not be inspected", failed, len(paths))
	}
	return nil
}
