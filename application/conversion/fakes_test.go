package conversion

import (
	"context"
	"errors"
	"sync"

	"audio-converter/domain/conversion"
)

// fakeLibrary implements conversion.MediaLibrary for testing
type fakeLibrary struct {
	mu       sync.Mutex
	openErrs map[string]error
	noAudio  map[string]bool
	writeErr map[string]error
	opened   map[string]int
	closed   map[string]int
	written  []string
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		openErrs: make(map[string]error),
		noAudio:  make(map[string]bool),
		writeErr: make(map[string]error),
		opened:   make(map[string]int),
		closed:   make(map[string]int),
	}
}

func (l *fakeLibrary) Open(ctx context.Context, path string) (conversion.Video, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.openErrs[path]; err != nil {
		return nil, err
	}
	l.opened[path]++
	return &fakeVideo{lib: l, path: path}, nil
}

func (l *fakeLibrary) closeCount(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed[path]
}

type fakeVideo struct {
	lib    *fakeLibrary
	path   string
	closed bool
}

func (v *fakeVideo) AudioStream() (conversion.AudioStream, bool) {
	v.lib.mu.Lock()
	defer v.lib.mu.Unlock()

	if v.lib.noAudio[v.path] {
		return nil, false
	}
	return &fakeStream{video: v}, true
}

func (v *fakeVideo) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	v.lib.mu.Lock()
	defer v.lib.mu.Unlock()
	v.lib.closed[v.path]++
	return nil
}

type fakeStream struct {
	video *fakeVideo
}

func (s *fakeStream) WriteTo(ctx context.Context, path string, format conversion.Format) error {
	lib := s.video.lib
	lib.mu.Lock()
	defer lib.mu.Unlock()

	if err := lib.writeErr[s.video.path]; err != nil {
		return err
	}
	lib.written = append(lib.written, path)
	return nil
}

// fakeDirs implements conversion.DirectoryMaker for testing
type fakeDirs struct {
	mu      sync.Mutex
	created []string
	err     error
}

func (d *fakeDirs) EnsureDir(dir string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return d.err
	}
	d.created = append(d.created, dir)
	return nil
}

var errDiskFull = errors.New("No space left on device")
