package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"audio-converter/domain/inspect"
)

// DefaultSampleFrames is how many frames are decoded when none is configured
const DefaultSampleFrames = 30

// Service reports what a video contains before it is converted
type Service struct {
	prober       inspect.StreamProber
	sampler      inspect.FrameSampler
	sampleFrames int
	output       io.Writer
}

// NewService creates a new inspect service. sampler may be nil.
func NewService(prober inspect.StreamProber, sampler inspect.FrameSampler, sampleFrames int, output io.Writer) *Service {
	if sampleFrames <= 0 {
		sampleFrames = DefaultSampleFrames
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{
		prober:       prober,
		sampler:      sampler,
		sampleFrames: sampleFrames,
		output:       output,
	}
}

// Inspect probes the streams of a video and, when available, samples its frames.
// A sampling failure is reported but does not fail the inspection.
func (s *Service) Inspect(ctx context.Context, path string) (*inspect.MediaReport, error) {
	report, err := s.prober.Describe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	if s.sampler == nil {
		return report, nil
	}

	frames, err := s.sampler.Sample(path, s.sampleFrames)
	switch {
	case errors.Is(err, inspect.ErrSamplingUnavailable):
		fmt.Fprintf(s.output, "Note: %v\n", err)
	case err != nil:
		fmt.Fprintf(s.output, "Warning: frame sampling failed: %v\n", err)
	default:
		report.Frames = frames
	}
	return report, nil
}

// PrintReport writes a human readable report
func PrintReport(w io.Writer, r *inspect.MediaReport) {
	fmt.Fprintf(w, "%s\n", r.Path)
	fmt.Fprintf(w, "  Container: %s\n", r.Container)
	fmt.Fprintf(w, "  Duration:  %s\n", r.Duration.Round(time.Second))
	if r.Video != nil {
		fmt.Fprintf(w, "  Video:     %s %dx%d\n", r.Video.Codec, r.Video.Width, r.Video.Height)
	}
	if !r.HasAudio() {
		fmt.Fprintf(w, "  Audio:     none (cannot be converted)\n")
	}
	for _, a := range r.Audio {
		fmt.Fprintf(w, "  Audio:     #%d %s %d Hz, %d ch\n", a.Index, a.Codec, a.SampleRate, a.Channels)
	}
	if f := r.Frames; f != nil {
		fmt.Fprintf(w, "  Frames:    %.2f fps, %d total, %d sampled, mean brightness %.1f\n",
			f.FPS, f.FrameCount, f.SampledFrames, f.MeanBrightness)
	}
}
