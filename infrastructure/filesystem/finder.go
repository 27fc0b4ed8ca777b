package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"audio-converter/domain/conversion"
)

// ListVideos returns the absolute paths of the video files directly inside
// dir, sorted by name
func ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var videos []string
	for _, e := range entries {
		if e.IsDir() || !conversion.IsVideoFile(e.Name()) {
			continue
		}
		videos = append(videos, filepath.Join(abs, e.Name()))
	}

	sort.Strings(videos)
	return videos, nil
}

// AbsPaths resolves every path against the working directory
func AbsPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", p, err)
		}
		out = append(out, abs)
	}
	return out, nil
}
