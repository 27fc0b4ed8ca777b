//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	probeWithAudio = `{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"},{"index":1,"codec_type":"audio","codec_name":"aac","sample_rate":"48000","channels":2}],"format":{"format_name":"mov,mp4","duration":"12.0"}}`
	probeNoAudio   = `{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"}],"format":{"format_name":"mov,mp4","duration":"12.0"}}`
)

// fakeMediaRunner plays the part of the ffmpeg and ffprobe executables.
// Sources listed in silent have no audio track. When gate is set, ffmpeg
// blocks until it is closed.
type fakeMediaRunner struct {
	mu      sync.Mutex
	silent  map[string]bool
	gate    chan struct{}
	started chan string
	written []string
}

func newFakeMediaRunner() *fakeMediaRunner {
	return &fakeMediaRunner{silent: make(map[string]bool)}
}

func (r *fakeMediaRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	path := args[len(args)-1]
	if path == "-version" {
		return []byte(name + " version 6.1"), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("exit status 1: %s: No such file or directory", path)
	}

	r.mu.Lock()
	silent := r.silent[filepath.Base(path)]
	r.mu.Unlock()
	if silent {
		return []byte(probeNoAudio), nil
	}
	return []byte(probeWithAudio), nil
}

func (r *fakeMediaRunner) Run(ctx context.Context, name string, args ...string) error {
	out := args[len(args)-1]

	r.mu.Lock()
	gate, started := r.gate, r.started
	r.mu.Unlock()

	if started != nil {
		started <- out
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	r.written = append(r.written, out)
	r.mu.Unlock()

	return os.WriteFile(out, []byte("encoded audio"), 0644)
}
