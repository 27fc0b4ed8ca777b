package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	appconv "audio-converter/application/conversion"
	appdist "audio-converter/application/distribution"
	appnotif "audio-converter/application/notification"
	"audio-converter/domain/conversion"
	"audio-converter/domain/distribution"
	"audio-converter/infrastructure/ffmpeg"
	"audio-converter/infrastructure/filesystem"
)

const (
	probeAudio  = `{"streams":[{"index":0,"codec_type":"video"},{"index":1,"codec_type":"audio","codec_name":"aac"}],"format":{"duration":"1.0"}}`
	probeSilent = `{"streams":[{"index":0,"codec_type":"video"}],"format":{"duration":"1.0"}}`
)

// scriptedRunner stands in for the ffmpeg executables. Sources whose name
// contains "silent" have no audio track; ffmpeg writes a small output file.
type scriptedRunner struct {
	mu         sync.Mutex
	missingBin bool
	written    []string
}

func (r *scriptedRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	last := args[len(args)-1]
	if last == "-version" {
		if r.missingBin {
			return nil, errors.New("executable file not found in $PATH")
		}
		return []byte(name + " version test"), nil
	}
	if _, err := os.Stat(last); err != nil {
		return nil, fmt.Errorf("%s: No such file or directory", last)
	}
	if strings.Contains(filepath.Base(last), "silent") {
		return []byte(probeSilent), nil
	}
	return []byte(probeAudio), nil
}

func (r *scriptedRunner) Run(ctx context.Context, name string, args ...string) error {
	out := args[len(args)-1]
	r.mu.Lock()
	r.written = append(r.written, out)
	r.mu.Unlock()
	return os.WriteFile(out, []byte("audio"), 0644)
}

func writeVideos(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
		if err := os.WriteFile(paths[i], []byte("video"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func testDeps(runner *scriptedRunner, out *bytes.Buffer, workDir string) ConvertDependencies {
	return ConvertDependencies{
		Library: ffmpeg.NewLibrary(ffmpeg.WithCommandRunner(runner)),
		Dirs:    filesystem.NewChecker(),
		Output:  out,
		Drainer: []appconv.DrainerOption{appconv.WithRunIDGenerator(func() string { return "run-1" }), appconv.WithWorkingDir(workDir)},
	}
}

func TestRunConvert_ConvertsInOrder(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "a.mp4", "b.mkv")
	runner := &scriptedRunner{}
	var out bytes.Buffer

	err := RunConvertWithDependencies(context.Background(), testDeps(runner, &out, dir), ConvertOptions{
		Sources: sources,
		Format:  "WAV",
	})
	if err != nil {
		t.Fatalf("RunConvertWithDependencies() error = %v\n%s", err, out.String())
	}

	folder := filepath.Join(dir, "AudioConverted")
	want := []string{filepath.Join(folder, "a.wav"), filepath.Join(folder, "b.wav")}
	if len(runner.written) != 2 || runner.written[0] != want[0] || runner.written[1] != want[1] {
		t.Errorf("written = %v, want %v", runner.written, want)
	}
	for _, w := range want {
		if _, err := os.Stat(w); err != nil {
			t.Errorf("output %s missing: %v", w, err)
		}
	}

	text := out.String()
	if strings.Index(text, "converting   a.mp4") > strings.Index(text, "converting   b.mkv") {
		t.Errorf("a.mp4 should be converted before b.mkv:\n%s", text)
	}
	if !strings.Contains(text, "Converting 2 file(s) to wav (run run-1)") {
		t.Errorf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "Done: 2 converted, 0 failed") {
		t.Errorf("missing summary line:\n%s", text)
	}
}

func TestRunConvert_SkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "a.mp4")
	runner := &scriptedRunner{}
	var out bytes.Buffer

	err := RunConvertWithDependencies(context.Background(), testDeps(runner, &out, dir), ConvertOptions{
		Sources: []string{sources[0], sources[0]},
		Format:  "mp3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.written) != 1 {
		t.Errorf("written %d files, want 1", len(runner.written))
	}
	if !strings.Contains(out.String(), "Skipping duplicate") {
		t.Errorf("missing duplicate notice:\n%s", out.String())
	}
}

func TestRunConvert_FailureContinues(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "silent.mp4", "b.mov")

	tests := []struct {
		name        string
		failOnError bool
		wantErr     bool
	}{
		{"default exit", false, false},
		{"fail on error", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scriptedRunner{}
			var out bytes.Buffer
			err := RunConvertWithDependencies(context.Background(), testDeps(runner, &out, dir), ConvertOptions{
				Sources:      sources,
				Format:       "ogg",
				OutputFolder: filepath.Join(dir, "out"),
				FailOnError:  tt.failOnError,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(runner.written) != 1 || filepath.Base(runner.written[0]) != "b.ogg" {
				t.Errorf("written = %v, want only b.ogg", runner.written)
			}
			if !strings.Contains(out.String(), "failed       silent.mp4") {
				t.Errorf("missing failure line:\n%s", out.String())
			}
		})
	}
}

func TestRunConvert_RejectsStart(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "a.mp4")

	tests := []struct {
		name    string
		opts    ConvertOptions
		wantErr error
	}{
		{"nothing selected", ConvertOptions{Format: "mp3"}, conversion.ErrNoFileSelected},
		{"no format", ConvertOptions{Sources: sources}, conversion.ErrNoFormatSelected},
		{"bad format", ConvertOptions{Sources: sources, Format: "flac"}, conversion.ErrNoFormatSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scriptedRunner{}
			var out bytes.Buffer
			err := RunConvertWithDependencies(context.Background(), testDeps(runner, &out, dir), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(runner.written) != 0 {
				t.Errorf("nothing should be written, got %v", runner.written)
			}
		})
	}
}

func TestRunConvert_FFmpegMissing(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "a.mp4")
	runner := &scriptedRunner{missingBin: true}

	var out bytes.Buffer
	err := RunConvertWithDependencies(context.Background(), testDeps(runner, &out, dir), ConvertOptions{Sources: sources, Format: "mp3"})
	if err == nil || !strings.Contains(err.Error(), "ffmpeg verification failed") {
		t.Errorf("error = %v, want verification failure", err)
	}
	if len(runner.written) != 0 {
		t.Errorf("nothing should be written, got %v", runner.written)
	}
}

func TestRunConvert_ValidatesBeforeFFmpegCheck(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "a.mp4")

	tests := []struct {
		name    string
		opts    ConvertOptions
		wantErr error
	}{
		{"nothing selected", ConvertOptions{Format: "mp3"}, conversion.ErrNoFileSelected},
		{"no format", ConvertOptions{Sources: sources}, conversion.ErrNoFormatSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := RunConvertWithDependencies(context.Background(), testDeps(&scriptedRunner{missingBin: true}, &out, dir), tt.opts)

			var vErr *conversion.ValidationError
			if !errors.As(err, &vErr) || !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want ValidationError(%v)", err, tt.wantErr)
			}
		})
	}
}

type recordingPublisher struct {
	summary *conversion.RunSummary
}

func (p *recordingPublisher) PublishRun(ctx context.Context, summary *conversion.RunSummary) *appdist.PublishReport {
	p.summary = summary
	report := &appdist.PublishReport{}
	for _, r := range summary.Completed() {
		report.Files = append(report.Files, appdist.PublishedFile{
			LocalPath: r.OutputPath,
			Result:    &distribution.UploadResult{ShareableURL: "https://drive.example/" + filepath.Base(r.OutputPath)},
		})
	}
	return report
}

type recordingNotifier struct {
	req appnotif.SendRequest
	err error
}

func (n *recordingNotifier) Send(ctx context.Context, req appnotif.SendRequest) error {
	n.req = req
	return n.err
}

func TestRunConvert_PublishAndNotify(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "a.mp4", "silent.mkv")
	var out bytes.Buffer

	deps := testDeps(&scriptedRunner{}, &out, dir)
	publisher := &recordingPublisher{}
	notifier := &recordingNotifier{}
	deps.Publisher = publisher
	deps.Notifier = notifier

	err := RunConvertWithDependencies(context.Background(), deps, ConvertOptions{Sources: sources, Format: "aac"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if publisher.summary == nil || len(publisher.summary.Results) != 2 {
		t.Fatalf("publisher summary = %+v", publisher.summary)
	}
	if notifier.req.Summary != publisher.summary {
		t.Error("notifier should receive the run summary")
	}
	aOut := filepath.Join(dir, "AudioConverted", "a.aac")
	if got := notifier.req.URLs[aOut]; got != "https://drive.example/a.aac" {
		t.Errorf("URL for %s = %q", aOut, got)
	}
	if !strings.Contains(out.String(), "Summary email sent") {
		t.Errorf("missing email confirmation:\n%s", out.String())
	}
}

func TestRunConvert_NotifyFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	sources := writeVideos(t, dir, "a.mp4")
	var out bytes.Buffer

	deps := testDeps(&scriptedRunner{}, &out, dir)
	deps.Notifier = &recordingNotifier{err: errors.New("quota")}

	if err := RunConvertWithDependencies(context.Background(), deps, ConvertOptions{Sources: sources, Format: "mp3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Warning: summary email not sent: quota") {
		t.Errorf("missing warning:\n%s", out.String())
	}
}

// mockPrompter answers prompts from fixed values
type mockPrompter struct {
	inputs   []string
	confirms []bool
	selects  []string
	multi    []string
	messages []string
	defaults []string
}

func (m *mockPrompter) Input(message, defaultValue string) (string, error) {
	m.messages = append(m.messages, message)
	m.defaults = append(m.defaults, defaultValue)
	if len(m.inputs) == 0 {
		return defaultValue, nil
	}
	v := m.inputs[0]
	m.inputs = m.inputs[1:]
	return v, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.messages = append(m.messages, message)
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	v := m.confirms[0]
	m.confirms = m.confirms[1:]
	return v, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	m.messages = append(m.messages, message)
	m.defaults = append(m.defaults, defaultValue)
	if len(m.selects) == 0 {
		return defaultValue, nil
	}
	v := m.selects[0]
	m.selects = m.selects[1:]
	return v, nil
}

func (m *mockPrompter) MultiSelect(message string, options []string) ([]string, error) {
	m.messages = append(m.messages, message)
	if m.multi == nil {
		return nil, errors.New("interrupt")
	}
	return m.multi, nil
}

func TestPromptConvertOptions(t *testing.T) {
	dir := t.TempDir()
	writeVideos(t, dir, "b.MKV", "a.mp4", "notes.txt")
	abs, _ := filepath.Abs(dir)

	prompter := &mockPrompter{multi: []string{"a.mp4", "b.MKV"}, selects: []string{"ogg"}, inputs: []string{"/music"}}
	opts, err := PromptConvertOptions(prompter, dir, ConvertOptions{Format: "WAV"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSources := []string{filepath.Join(abs, "a.mp4"), filepath.Join(abs, "b.MKV")}
	if len(opts.Sources) != 2 || opts.Sources[0] != wantSources[0] || opts.Sources[1] != wantSources[1] {
		t.Errorf("Sources = %v, want %v", opts.Sources, wantSources)
	}
	if opts.Format != "ogg" || opts.OutputFolder != "/music" {
		t.Errorf("opts = %+v", opts)
	}
	if prompter.defaults[0] != "wav" {
		t.Errorf("format default = %q, want wav", prompter.defaults[0])
	}
}

func TestPromptConvertOptions_Errors(t *testing.T) {
	empty := t.TempDir()
	if _, err := PromptConvertOptions(&mockPrompter{}, empty, ConvertOptions{}); err == nil {
		t.Error("expected error for folder without videos")
	}

	dir := t.TempDir()
	writeVideos(t, dir, "a.mp4")
	if _, err := PromptConvertOptions(&mockPrompter{}, dir, ConvertOptions{}); err == nil {
		t.Error("expected error when selection is cancelled")
	}
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	writeVideos(t, dir, "b.mov", "a.avi", "readme.md")
	abs, _ := filepath.Abs(dir)

	got, err := collectSources([]string{"x.mp4"}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cwd, _ := os.Getwd()
	want := []string{filepath.Join(cwd, "x.mp4"), filepath.Join(abs, "a.avi"), filepath.Join(abs, "b.mov")}
	if len(got) != len(want) {
		t.Fatalf("collectSources() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collectSources()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
