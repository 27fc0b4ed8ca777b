package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appconv "audio-converter/application/conversion"
	appdist "audio-converter/application/distribution"
	appnotif "audio-converter/application/notification"
	"audio-converter/domain/conversion"
	"audio-converter/domain/notification"
	"audio-converter/infrastructure/config"
	"audio-converter/infrastructure/drive"
	"audio-converter/infrastructure/ffmpeg"
	"audio-converter/infrastructure/filesystem"
	"audio-converter/infrastructure/gmail"

	"github.com/spf13/cobra"
)

var (
	convertDir         string
	convertFormat      string
	convertOutput      string
	convertInteractive bool
	convertUpload      bool
	convertNotify      bool
	convertFailOnError bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [video...]",
	Short: "Extract the audio of one or more videos",
	Long: `Queue the given videos and convert them one at a time.

Each video's audio track is written as <name>.<format> in the output folder,
which defaults to ./AudioConverted. A file that already exists is overwritten.
A video without an audio track is reported as failed and the run continues.

Videos can be listed as arguments, taken from a folder with --dir, or picked
from a list with --interactive.

Example:
  audio-converter convert talk.mp4 interview.mkv --format mp3
  audio-converter convert --dir ~/Videos --format ogg --output ~/Music
  audio-converter convert --interactive --dir ~/Videos
  audio-converter convert clip.mov --upload --notify`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertDir, "dir", "", "Queue every video in this folder")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Output format: mp3, wav, aac or ogg (default from config or mp3)")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "Output folder (default from config or ./AudioConverted)")
	convertCmd.Flags().BoolVarP(&convertInteractive, "interactive", "i", false, "Choose videos, format and folder interactively")
	convertCmd.Flags().BoolVar(&convertUpload, "upload", false, "Share converted files on Google Drive")
	convertCmd.Flags().BoolVar(&convertNotify, "notify", false, "Email a summary of the run to the configured recipients")
	convertCmd.Flags().BoolVar(&convertFailOnError, "fail-on-error", false, "Exit non-zero when any video fails to convert")
}

// ConvertOptions are the settings of one convert invocation
type ConvertOptions struct {
	Sources      []string
	Format       string
	OutputFolder string
	FailOnError  bool
	Recipients   []notification.Recipient
}

// RunPublisher shares the outputs of a finished run
type RunPublisher interface {
	PublishRun(ctx context.Context, summary *conversion.RunSummary) *appdist.PublishReport
}

// RunNotifier sends the summary of a finished run
type RunNotifier interface {
	Send(ctx context.Context, req appnotif.SendRequest) error
}

// ConvertDependencies are the collaborators of the convert command.
// Publisher and Notifier are optional.
type ConvertDependencies struct {
	Library   conversion.MediaLibrary
	Dirs      conversion.DirectoryMaker
	Publisher RunPublisher
	Notifier  RunNotifier
	Output    OutputWriter
	Drainer   []appconv.DrainerOption
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	opts := ConvertOptions{
		Format:       firstNonEmpty(convertFormat, cfg.Output.Format),
		OutputFolder: firstNonEmpty(convertOutput, cfg.Output.Folder),
		FailOnError:  convertFailOnError,
	}

	if convertInteractive {
		opts, err = PromptConvertOptions(DefaultPrompter, firstNonEmpty(convertDir, "."), opts)
		if err != nil {
			return err
		}
	} else {
		opts.Sources, err = collectSources(args, convertDir)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	deps := ConvertDependencies{
		Library: ffmpeg.NewLibrary(
			ffmpeg.WithFFmpegPath(cfg.FFmpeg.FFmpegPath),
			ffmpeg.WithFFprobePath(cfg.FFmpeg.FFprobePath),
			ffmpeg.WithBitrate(cfg.FFmpeg.Bitrate),
		),
		Dirs:   filesystem.NewChecker(),
		Output: DefaultOutput,
	}

	if convertUpload {
		if cfg.Google.FolderID == "" {
			return fmt.Errorf("google.folder_id must be set to use --upload")
		}
		client, err := drive.NewClientWithOAuth(ctx, cfg.Google.CredentialsFile, cfg.Google.TokenFile, DefaultOutput)
		if err != nil {
			return fmt.Errorf("failed to create Google Drive client: %w", err)
		}
		deps.Publisher = appdist.NewUploadService(client, cfg.Google.FolderID, DefaultOutput)
	}

	if convertNotify {
		notifier, recipients, err := newNotifier(ctx, cfg)
		if err != nil {
			return err
		}
		deps.Notifier = notifier
		opts.Recipients = recipients
	}

	return RunConvertWithDependencies(ctx, deps, opts)
}

// newNotifier builds the Gmail-backed notifier and its recipient list from config
func newNotifier(ctx context.Context, cfg *config.Config) (*appnotif.Service, []notification.Recipient, error) {
	if len(cfg.Email.Recipients) == 0 {
		return nil, nil, fmt.Errorf("no email recipients configured. Add one with 'audio-converter config add --name NAME --email ADDRESS'")
	}
	if cfg.Email.FromAddress == "" {
		return nil, nil, fmt.Errorf("email.from_address must be set to use --notify")
	}

	from := notification.Recipient{Name: cfg.Email.FromName, Address: cfg.Email.FromAddress}
	client, err := gmail.NewClientWithOAuth(ctx, cfg.Google.CredentialsFile, cfg.Google.GmailTokenFile, from, DefaultOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}

	recipients := make([]notification.Recipient, len(cfg.Email.Recipients))
	for i, r := range cfg.Email.Recipients {
		recipients[i] = notification.Recipient{Name: r.Name, Address: r.Address}
	}
	return appnotif.NewService(client, cfg.Email.FromName), recipients, nil
}

// collectSources resolves positional arguments and the videos of dir
func collectSources(args []string, dir string) ([]string, error) {
	sources, err := filesystem.AbsPaths(args)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		videos, err := filesystem.ListVideos(dir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, videos...)
	}
	return sources, nil
}

// PromptConvertOptions asks which videos of dir to convert, to which format,
// and where to write them. opts supplies the defaults.
func PromptConvertOptions(prompter Prompter, dir string, opts ConvertOptions) (ConvertOptions, error) {
	videos, err := filesystem.ListVideos(dir)
	if err != nil {
		return opts, err
	}
	if len(videos) == 0 {
		return opts, fmt.Errorf("no video files (%s) found in %s", strings.Join(conversion.VideoExtensions, ", "), dir)
	}

	names := make([]string, len(videos))
	byName := make(map[string]string, len(videos))
	for i, v := range videos {
		names[i] = filepath.Base(v)
		byName[names[i]] = v
	}

	picked, err := prompter.MultiSelect("Select videos to convert:", names)
	if err != nil {
		return opts, fmt.Errorf("prompt cancelled")
	}
	opts.Sources = nil
	for _, name := range picked {
		opts.Sources = append(opts.Sources, byName[name])
	}

	formats := make([]string, len(conversion.SupportedFormats))
	for i, f := range conversion.SupportedFormats {
		formats[i] = f.String()
	}
	defaultFormat := strings.ToLower(opts.Format)
	if !conversion.Format(defaultFormat).Valid() {
		defaultFormat = conversion.DefaultFormat.String()
	}
	opts.Format, err = prompter.Select("Output format:", formats, defaultFormat)
	if err != nil {
		return opts, fmt.Errorf("prompt cancelled")
	}

	defaultFolder := opts.OutputFolder
	if defaultFolder == "" {
		if cwd, err := os.Getwd(); err == nil {
			defaultFolder = conversion.DefaultOutputFolder(cwd)
		}
	}
	opts.OutputFolder, err = prompter.Input("Output folder:", defaultFolder)
	if err != nil {
		return opts, fmt.Errorf("prompt cancelled")
	}

	return opts, nil
}

// RunConvertWithDependencies runs the convert command with injected dependencies (for testing)
func RunConvertWithDependencies(ctx context.Context, deps ConvertDependencies, opts ConvertOptions) error {
	output := deps.Output
	if output == nil {
		output = DefaultOutput
	}

	queue := appconv.NewQueue()
	for _, src := range opts.Sources {
		if !queue.Enqueue(src) {
			fmt.Fprintf(output, "Skipping duplicate: %s\n", src)
		}
	}

	worker := appconv.NewWorker(deps.Library, deps.Dirs)
	drainer := appconv.NewDrainer(queue, worker, deps.Drainer...)

	format := conversion.Format(strings.ToLower(strings.TrimSpace(opts.Format)))
	drainOpts := appconv.DrainOptions{Format: format, OutputFolder: opts.OutputFolder}
	if err := drainer.Validate(drainOpts); err != nil {
		return err
	}

	// Verify ffmpeg is available if the library supports it
	if verifiable, ok := deps.Library.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	queued := queue.Len()
	runID, err := drainer.Start(ctx, drainOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Converting %d file(s) to %s (run %s)\n", queued, format, runID)

	summary := consumeEvents(drainer.Events(), output)

	completed, failed := len(summary.Completed()), len(summary.Failed())
	fmt.Fprintf(output, "\nDone: %d converted, %d failed in %s. Output folder: %s\n",
		completed, failed, notification.FormatElapsed(summary.Elapsed), summary.Folder)

	var urls map[string]string
	if deps.Publisher != nil && completed > 0 {
		fmt.Fprintf(output, "\nPublishing to Google Drive...\n")
		report := deps.Publisher.PublishRun(ctx, summary)
		urls = make(map[string]string)
		for _, f := range report.Files {
			if f.Result != nil {
				urls[f.LocalPath] = f.Result.ShareableURL
			}
		}
		if n := report.Failed(); n > 0 {
			fmt.Fprintf(output, "%d upload(s) failed\n", n)
		}
	}

	if deps.Notifier != nil {
		fmt.Fprintf(output, "\nSending summary email...\n")
		err := deps.Notifier.Send(ctx, appnotif.SendRequest{To: opts.Recipients, Summary: summary, URLs: urls})
		if err != nil {
			fmt.Fprintf(output, "Warning: summary email not sent: %v\n", err)
		} else {
			fmt.Fprintf(output, "Summary email sent\n")
		}
	}

	if opts.FailOnError && failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, completed+failed)
	}
	return nil
}

// consumeEvents prints item events until the run's AllDone event and returns its summary
func consumeEvents(events <-chan conversion.Event, output OutputWriter) *conversion.RunSummary {
	for ev := range events {
		if ev.Kind == conversion.EventAllDone {
			return ev.Summary
		}
		name := filepath.Base(ev.Path)
		switch ev.Status {
		case conversion.StatusInProgress:
			fmt.Fprintf(output, "  %-12s %s\n", "converting", name)
		case conversion.StatusCompleted:
			fmt.Fprintf(output, "  %-12s %s -> %s\n", "done", name, ev.OutputPath)
		case conversion.StatusFailed:
			fmt.Fprintf(output, "  %-12s %s: %s\n", "failed", name, ev.Message)
		}
	}
	return &conversion.RunSummary{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
