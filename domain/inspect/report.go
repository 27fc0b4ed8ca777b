package inspect

import (
	"context"
	"errors"
	"time"
)

// ErrSamplingUnavailable is returned by frame samplers built without OpenCV
var ErrSamplingUnavailable = errors.New("frame sampling not available: build with '-tags=inspect' and install OpenCV/GoCV")

// MediaReport describes a source video before it is queued
type MediaReport struct {
	Path      string
	Container string
	Duration  time.Duration
	Audio     []AudioTrack
	Video     *VideoTrack
	Frames    *FrameStats // nil when frames were not sampled
}

// HasAudio reports whether the video can be converted
func (r *MediaReport) HasAudio() bool {
	return len(r.Audio) > 0
}

// AudioTrack is one audio stream of the container
type AudioTrack struct {
	Index      int
	Codec      string
	SampleRate int
	Channels   int
}

// VideoTrack is the first video stream of the container
type VideoTrack struct {
	Codec  string
	Width  int
	Height int
}

// FrameStats is what decoding the first frames of a video shows
type FrameStats struct {
	FPS            float64
	FrameCount     int
	Width          int
	Height         int
	SampledFrames  int
	MeanBrightness float64 // 0-255, averaged over sampled frames
}

// StreamProber reads container and stream metadata
type StreamProber interface {
	Describe(ctx context.Context, path string) (*MediaReport, error)
}

// FrameSampler decodes up to maxFrames frames of a video
type FrameSampler interface {
	Sample(path string, maxFrames int) (*FrameStats, error)
}
