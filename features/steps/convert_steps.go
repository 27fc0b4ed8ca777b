//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appconv "audio-converter/application/conversion"
	"audio-converter/domain/conversion"
	"audio-converter/infrastructure/ffmpeg"
	"audio-converter/infrastructure/filesystem"

	"github.com/cucumber/godog"
)

type convertContext struct {
	workDir  string
	runner   *fakeMediaRunner
	queue    *appconv.Queue
	drainer  *appconv.Drainer
	events   []conversion.Event
	summary  *conversion.RunSummary
	startErr error
	added    []bool
}

// SharedConvertContext is reset before each scenario
var SharedConvertContext = &convertContext{}

func InitializeConvertScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConvertContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "convert-test-*")
		if err != nil {
			return c, err
		}
		testCtx.reset(dir)
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.runner != nil && testCtx.runner.gate != nil {
			select {
			case <-testCtx.runner.gate:
			default:
				close(testCtx.runner.gate)
			}
		}
		if testCtx.drainer != nil {
			testCtx.drainer.Wait()
		}
		if testCtx.workDir != "" {
			os.RemoveAll(testCtx.workDir)
		}
		return c, nil
	})

	ctx.Step(`^a folder with the videos "([^"]*)"$`, testCtx.aFolderWithTheVideos)
	ctx.Step(`^the video "([^"]*)" has no audio track$`, testCtx.theVideoHasNoAudioTrack)
	ctx.Step(`^I queue "([^"]*)"$`, testCtx.iQueue)
	ctx.Step(`^I queue every video in the folder$`, testCtx.iQueueEveryVideoInTheFolder)
	ctx.Step(`^the queue should hold (\d+) pending items?$`, testCtx.theQueueShouldHoldPendingItems)
	ctx.Step(`^the second add should be ignored$`, testCtx.theSecondAddShouldBeIgnored)
	ctx.Step(`^I convert the queue to "([^"]*)"$`, testCtx.iConvertTheQueueTo)
	ctx.Step(`^I convert the queue to "([^"]*)" in "([^"]*)"$`, testCtx.iConvertTheQueueToIn)
	ctx.Step(`^a conversion to "([^"]*)" is running$`, testCtx.aConversionToIsRunning)
	ctx.Step(`^I try to start another conversion to "([^"]*)"$`, testCtx.iTryToStartAnotherConversionTo)
	ctx.Step(`^the running conversion finishes$`, testCtx.theRunningConversionFinishes)
	ctx.Step(`^the start should be rejected because "([^"]*)"$`, testCtx.theStartShouldBeRejectedBecause)
	ctx.Step(`^no conversion should have run$`, testCtx.noConversionShouldHaveRun)
	ctx.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	ctx.Step(`^the file "([^"]*)" should not exist$`, testCtx.theFileShouldNotExist)
	ctx.Step(`^"([^"]*)" should be converted before "([^"]*)"$`, testCtx.shouldBeConvertedBefore)
	ctx.Step(`^"([^"]*)" should go from InProgress to (Completed|Failed)$`, testCtx.shouldGoFromInProgressTo)
	ctx.Step(`^"([^"]*)" should fail with "([^"]*)"$`, testCtx.shouldFailWith)
	ctx.Step(`^the last event should report (\d+) converted and (\d+) failed$`, testCtx.theLastEventShouldReport)
	ctx.Step(`^the converter should be idle$`, testCtx.theConverterShouldBeIdle)
}

func (c *convertContext) reset(dir string) {
	c.workDir = dir
	c.runner = newFakeMediaRunner()
	c.queue = appconv.NewQueue()
	lib := ffmpeg.NewLibrary(ffmpeg.WithCommandRunner(c.runner))
	c.drainer = appconv.NewDrainer(c.queue, appconv.NewWorker(lib, filesystem.NewChecker()), appconv.WithWorkingDir(dir))
	c.events = nil
	c.summary = nil
	c.startErr = nil
	c.added = nil
}

func (c *convertContext) path(name string) string {
	return filepath.Join(c.workDir, name)
}

func (c *convertContext) aFolderWithTheVideos(names string) error {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if err := os.WriteFile(c.path(name), []byte("video"), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (c *convertContext) theVideoHasNoAudioTrack(name string) error {
	c.runner.silent[name] = true
	return nil
}

func (c *convertContext) iQueue(name string) error {
	c.added = append(c.added, c.queue.Enqueue(c.path(name)))
	return nil
}

func (c *convertContext) iQueueEveryVideoInTheFolder() error {
	videos, err := filesystem.ListVideos(c.workDir)
	if err != nil {
		return err
	}
	for _, v := range videos {
		c.added = append(c.added, c.queue.Enqueue(v))
	}
	return nil
}

func (c *convertContext) theQueueShouldHoldPendingItems(n int) error {
	if got := c.queue.Len(); got != n {
		return fmt.Errorf("queue holds %d pending items, want %d", got, n)
	}
	return nil
}

func (c *convertContext) theSecondAddShouldBeIgnored() error {
	if len(c.added) < 2 || !c.added[0] || c.added[1] {
		return fmt.Errorf("add results = %v, want [true false ...]", c.added)
	}
	return nil
}

func (c *convertContext) iConvertTheQueueTo(format string) error {
	return c.iConvertTheQueueToIn(format, "")
}

func (c *convertContext) iConvertTheQueueToIn(format, folder string) error {
	if folder != "" {
		folder = c.path(folder)
	}
	_, c.startErr = c.drainer.Start(context.Background(), appconv.DrainOptions{
		Format:       conversion.Format(format),
		OutputFolder: folder,
	})
	if c.startErr != nil {
		return nil
	}
	return c.collect()
}

// collect reads events until the run's AllDone event
func (c *convertContext) collect() error {
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-c.drainer.Events():
			if !ok {
				return fmt.Errorf("events closed before the conversion finished")
			}
			c.events = append(c.events, ev)
			if ev.Kind == conversion.EventAllDone {
				c.summary = ev.Summary
				return nil
			}
		case <-timeout:
			return fmt.Errorf("timed out waiting for the conversion to finish")
		}
	}
}

func (c *convertContext) aConversionToIsRunning(format string) error {
	c.runner.gate = make(chan struct{})
	c.runner.started = make(chan string, 16)

	if _, err := c.drainer.Start(context.Background(), appconv.DrainOptions{Format: conversion.Format(format)}); err != nil {
		return err
	}

	select {
	case <-c.runner.started:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("conversion did not start")
	}
}

func (c *convertContext) iTryToStartAnotherConversionTo(format string) error {
	_, c.startErr = c.drainer.Start(context.Background(), appconv.DrainOptions{Format: conversion.Format(format)})
	return nil
}

func (c *convertContext) theRunningConversionFinishes() error {
	close(c.runner.gate)
	return c.collect()
}

func (c *convertContext) theStartShouldBeRejectedBecause(reason string) error {
	var want error
	switch reason {
	case "no file is selected":
		want = conversion.ErrNoFileSelected
	case "no format is selected":
		want = conversion.ErrNoFormatSelected
	case "a conversion is running":
		want = conversion.ErrAlreadyRunning
	default:
		return fmt.Errorf("unknown rejection reason %q", reason)
	}

	var verr *conversion.ValidationError
	if !errors.As(c.startErr, &verr) || !errors.Is(c.startErr, want) {
		return fmt.Errorf("start error = %v, want validation error %v", c.startErr, want)
	}
	return nil
}

func (c *convertContext) noConversionShouldHaveRun() error {
	if len(c.runner.written) != 0 || len(c.events) != 0 {
		return fmt.Errorf("expected no conversion, got writes %v and %d events", c.runner.written, len(c.events))
	}
	if c.drainer.State() != appconv.StateIdle {
		return fmt.Errorf("state = %s, want Idle", c.drainer.State())
	}
	return nil
}

func (c *convertContext) theFileShouldExist(name string) error {
	if _, err := os.Stat(c.path(name)); err != nil {
		return fmt.Errorf("expected %s to exist: %w", name, err)
	}
	return nil
}

func (c *convertContext) theFileShouldNotExist(name string) error {
	if _, err := os.Stat(c.path(name)); err == nil {
		return fmt.Errorf("expected %s not to exist", name)
	}
	return nil
}

// eventIndex returns the index of the first event for name with status
func (c *convertContext) eventIndex(name string, status conversion.Status) int {
	for i, ev := range c.events {
		if ev.Kind == conversion.EventItemStatus && filepath.Base(ev.Path) == name && ev.Status == status {
			return i
		}
	}
	return -1
}

func (c *convertContext) terminalIndex(name string) int {
	if i := c.eventIndex(name, conversion.StatusCompleted); i >= 0 {
		return i
	}
	return c.eventIndex(name, conversion.StatusFailed)
}

func (c *convertContext) shouldBeConvertedBefore(first, second string) error {
	firstDone := c.terminalIndex(first)
	secondStart := c.eventIndex(second, conversion.StatusInProgress)
	if firstDone < 0 || secondStart < 0 || firstDone > secondStart {
		return fmt.Errorf("%s finished at event %d, %s started at event %d", first, firstDone, second, secondStart)
	}
	return nil
}

func (c *convertContext) shouldGoFromInProgressTo(name, terminal string) error {
	var statuses []conversion.Status
	for _, ev := range c.events {
		if ev.Kind == conversion.EventItemStatus && filepath.Base(ev.Path) == name {
			statuses = append(statuses, ev.Status)
		}
	}
	want := []conversion.Status{conversion.StatusInProgress, conversion.Status(terminal)}
	if len(statuses) != 2 || statuses[0] != want[0] || statuses[1] != want[1] {
		return fmt.Errorf("%s went through %v, want %v", name, statuses, want)
	}
	return nil
}

func (c *convertContext) shouldFailWith(name, message string) error {
	i := c.eventIndex(name, conversion.StatusFailed)
	if i < 0 {
		return fmt.Errorf("%s did not fail", name)
	}
	if !strings.Contains(c.events[i].Message, message) {
		return fmt.Errorf("%s failed with %q, want it to mention %q", name, c.events[i].Message, message)
	}
	return nil
}

func (c *convertContext) theLastEventShouldReport(completed, failed int) error {
	if len(c.events) == 0 {
		return fmt.Errorf("no events received")
	}
	last := c.events[len(c.events)-1]
	if last.Kind != conversion.EventAllDone || last.Summary == nil {
		return fmt.Errorf("last event is %+v, want AllDone", last)
	}
	if got := len(last.Summary.Completed()); got != completed {
		return fmt.Errorf("%d converted, want %d", got, completed)
	}
	if got := len(last.Summary.Failed()); got != failed {
		return fmt.Errorf("%d failed, want %d", got, failed)
	}
	return nil
}

func (c *convertContext) theConverterShouldBeIdle() error {
	c.drainer.Wait()
	if c.drainer.State() != appconv.StateIdle {
		return fmt.Errorf("state = %s, want Idle", c.drainer.State())
	}
	return nil
}
