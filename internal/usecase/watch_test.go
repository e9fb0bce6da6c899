package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchConvertsAndRemoves(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	events := make(chan WatchEvent, 16)
	done := make(chan error, 1)

	opts := reactOptions(t)
	s := NewWatchService(newBuildService(nil), discardLogger())
	go func() {
		done <- s.Watch(ctx, WatchInput{
			Build:    BuildInput{SourceDir: src, OutputDir: out, Options: opts},
			Debounce: 20 * time.Millisecond,
			OnReady:  func() { close(ready) },
			OnEvent:  func(e WatchEvent) { events <- e },
		})
	}()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("Watch() returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher")
	}

	writeFiles(t, src, map[string]string{"star.svg": testSVG, "notes.txt": "ignored"})

	created := waitForEvent(t, events)
	if created.Removed || created.Err != nil {
		t.Fatalf("expected a conversion, got %+v", created)
	}
	if filepath.Base(created.Source) != "star.svg" {
		t.Errorf("expected star.svg, got %s", created.Source)
	}
	component := filepath.Join(out, "Star.tsx")
	if _, err := os.Stat(component); err != nil {
		t.Fatalf("expected %s to exist: %v", component, err)
	}

	if err := os.Remove(filepath.Join(src, "star.svg")); err != nil {
		t.Fatal(err)
	}

	removed := waitForEvent(t, events)
	if !removed.Removed {
		t.Fatalf("expected a removal, got %+v", removed)
	}
	if _, err := os.Stat(component); !errors.Is(err, os.ErrNotExist) {
		t.Error("expected generated file to be removed")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchRejectsMissingSource(t *testing.T) {
	s := NewWatchService(newBuildService(nil), discardLogger())
	err := s.Watch(context.Background(), WatchInput{
		Build: BuildInput{
			SourceDir: filepath.Join(t.TempDir(), "missing"),
			OutputDir: t.TempDir(),
			Options:   reactOptions(t),
		},
	})
	if err == nil {
		t.Error("expected error for a missing source directory")
	}
}

func waitForEvent(t *testing.T, events <-chan WatchEvent) WatchEvent {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return WatchEvent{}
	}
}
