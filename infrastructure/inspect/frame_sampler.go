//go:build inspect

package inspect

import (
	"fmt"

	"audio-converter/domain/inspect"

	"gocv.io/x/gocv"
)

// FrameSampler implements inspect.FrameSampler using GoCV
type FrameSampler struct{}

// NewFrameSampler creates a GoCV frame sampler
func NewFrameSampler() *FrameSampler {
	return &FrameSampler{}
}

// Sample opens the video with OpenCV and decodes up to maxFrames frames
func (s *FrameSampler) Sample(path string, maxFrames int) (*inspect.FrameStats, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	defer capture.Close()

	stats := &inspect.FrameStats{
		FPS:        capture.Get(gocv.VideoCaptureFPS),
		FrameCount: int(capture.Get(gocv.VideoCaptureFrameCount)),
		Width:      int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(capture.Get(gocv.VideoCaptureFrameHeight)),
	}

	frame := gocv.NewMat()
	defer frame.Close()
	gray := gocv.NewMat()
	defer gray.Close()

	var total float64
	for stats.SampledFrames < maxFrames {
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			break
		}
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
		total += gray.Mean().Val1
		stats.SampledFrames++
	}

	if stats.SampledFrames > 0 {
		stats.MeanBrightness = total / float64(stats.SampledFrames)
	}
	return stats, nil
}

// Ensure FrameSampler implements inspect.FrameSampler
var _ inspect.FrameSampler = (*FrameSampler)(nil)
