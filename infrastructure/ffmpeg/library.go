package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"audio-converter/domain/conversion"
)

// DefaultBitrate is used for lossy output formats
const DefaultBitrate = "192k"

// ErrClosed is returned when writing from a video that was already closed
var ErrClosed = errors.New("video already closed")

// Library implements conversion.MediaLibrary with the ffprobe and ffmpeg executables
type Library struct {
	ffmpegPath  string
	ffprobePath string
	bitrate     string
	runner      CommandRunner
}

// LibraryOption is a functional option for configuring Library
type LibraryOption func(*Library)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) LibraryOption {
	return func(l *Library) {
		if path != "" {
			l.ffmpegPath = path
		}
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) LibraryOption {
	return func(l *Library) {
		if path != "" {
			l.ffprobePath = path
		}
	}
}

// WithBitrate sets the bitrate for lossy formats
func WithBitrate(bitrate string) LibraryOption {
	return func(l *Library) {
		if bitrate != "" {
			l.bitrate = bitrate
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) LibraryOption {
	return func(l *Library) {
		l.runner = runner
	}
}

// NewLibrary creates a new ffmpeg-backed media library
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		bitrate:     DefaultBitrate,
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Probe runs ffprobe on path
func (l *Library) Probe(ctx context.Context, path string) (*ProbeInfo, error) {
	out, err := l.runner.Output(ctx, l.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbeOutput(out)
}

// Open implements conversion.MediaLibrary
func (l *Library) Open(ctx context.Context, path string) (conversion.Video, error) {
	info, err := l.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	return &video{lib: l, path: path, info: info}, nil
}

// VerifyInstalled checks that ffmpeg and ffprobe are available
func (l *Library) VerifyInstalled(ctx context.Context) error {
	if _, err := l.runner.Output(ctx, l.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	if _, err := l.runner.Output(ctx, l.ffprobePath, "-version"); err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}

// video is a probed source file. ffmpeg holds no handle between calls,
// so Close only marks the video unusable.
type video struct {
	lib  *Library
	path string
	info *ProbeInfo

	mu     sync.Mutex
	closed bool
}

func (v *video) AudioStream() (conversion.AudioStream, bool) {
	s, ok := v.info.FirstAudio()
	if !ok {
		return nil, false
	}
	return &audioStream{video: v, index: s.Index}, true
}

func (v *video) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}

func (v *video) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

type audioStream struct {
	video *video
	index int
}

// WriteTo implements conversion.AudioStream
func (s *audioStream) WriteTo(ctx context.Context, path string, format conversion.Format) error {
	if s.video.isClosed() {
		return ErrClosed
	}

	args, err := s.video.lib.writeArgs(s.video.path, s.index, path, format)
	if err != nil {
		return err
	}

	if err := s.video.lib.runner.Run(ctx, s.video.lib.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg audio extraction failed: %w", err)
	}
	return nil
}

func (l *Library) writeArgs(source string, streamIndex int, outputPath string, format conversion.Format) ([]string, error) {
	codec, err := CodecFor(format)
	if err != nil {
		return nil, err
	}

	args := []string{
		"-i", source,
		"-vn", // No video
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-c:a", codec.Name,
	}
	if !codec.Lossless {
		args = append(args, "-b:a", l.bitrate)
	}
	args = append(args,
		"-y", // Overwrite output file if it exists
		outputPath,
	)
	return args, nil
}

// Ensure Library implements conversion.MediaLibrary
var _ conversion.MediaLibrary = (*Library)(nil)
