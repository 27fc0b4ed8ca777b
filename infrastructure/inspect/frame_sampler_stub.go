//go:build !inspect

package inspect

import "audio-converter/domain/inspect"

// FrameSampler is a stub when GoCV/OpenCV is not available
type FrameSampler struct{}

// NewFrameSampler creates a stub sampler (requires building with -tags=inspect)
func NewFrameSampler() *FrameSampler {
	return &FrameSampler{}
}

// Sample returns an error indicating frame sampling is not available
func (s *FrameSampler) Sample(path string, maxFrames int) (*inspect.FrameStats, error) {
	return nil, inspect.ErrSamplingUnavailable
}

// Ensure FrameSampler implements inspect.FrameSampler
var _ inspect.FrameSampler = (*FrameSampler)(nil)
