package conversion

import (
	"context"
	"fmt"

	"audio-converter/domain/conversion"
)

// Worker converts a single queue item
type Worker struct {
	library conversion.MediaLibrary
	dirs    conversion.DirectoryMaker
}

// NewWorker creates a new Worker
func NewWorker(library conversion.MediaLibrary, dirs conversion.DirectoryMaker) *Worker {
	return &Worker{
		library: library,
		dirs:    dirs,
	}
}

// Convert extracts the audio of req.Item into req.OutputPath().
// Failures are reported in the result, never returned or panicked.
func (w *Worker) Convert(ctx context.Context, req *conversion.ConversionRequest) (result conversion.ConversionResult) {
	result.Item = req.Item

	defer func() {
		if r := recover(); r != nil {
			result.OutputPath = ""
			result.Err = fmt.Errorf("conversion aborted: %v", r)
		}
	}()

	if err := w.dirs.EnsureDir(req.OutputFolder); err != nil {
		result.Err = fmt.Errorf("failed to create output folder: %w", err)
		return result
	}

	video, err := w.library.Open(ctx, req.Item.SourcePath)
	if err != nil {
		result.Err = &conversion.OpenError{Path: req.Item.SourcePath, Err: err}
		return result
	}
	defer video.Close()

	stream, ok := video.AudioStream()
	if !ok {
		result.Err = fmt.Errorf("%s: %w", req.Item.SourcePath, conversion.ErrNoAudioTrack)
		return result
	}

	outputPath := req.OutputPath()
	if err := stream.WriteTo(ctx, outputPath, req.Format); err != nil {
		result.Err = &conversion.EncodeError{Path: outputPath, Err: err}
		return result
	}

	result.OutputPath = outputPath
	return result
}
