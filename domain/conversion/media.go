package conversion

import "context"

// MediaLibrary opens source videos. It is a port implemented by infrastructure
// adapters (ffmpeg in production, fakes in tests).
type MediaLibrary interface {
	// Open opens the video at path. Every successful Open must be paired
	// with exactly one Video.Close.
	Open(ctx context.Context, path string) (Video, error)
}

// Video is an opened source video
type Video interface {
	// AudioStream returns the first audio stream, or false if the video has none
	AudioStream() (AudioStream, bool)

	// Close releases the video. Calling it more than once is a no-op.
	Close() error
}

// AudioStream is the sound track of an opened video
type AudioStream interface {
	// WriteTo transcodes the stream into format and writes it to path
	WriteTo(ctx context.Context, path string, format Format) error
}

// DirectoryMaker creates output folders
type DirectoryMaker interface {
	// EnsureDir creates dir and any missing parents
	EnsureDir(dir string) error
}
