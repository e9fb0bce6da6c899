package usecase

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/maruel/natural"

	"github.com/3-lines-studio/svger/internal/core"
)

const DefaultDebounce = 150 * time.Millisecond

type WatchInput struct {
	Build BuildInput
	// Debounce is how long the watcher waits for a burst of events to
	// settle before converting.
	Debounce time.Duration
	// OnReady is called once the source directory is being watched.
	OnReady func()
	// OnEvent is called after each changed file has been handled.
	OnEvent func(WatchEvent)
}

type WatchEvent struct {
	Source string
	// Removed is set when the source disappeared and its generated
	// file was deleted.
	Removed    bool
	OutputPath string
	Result     FileResult
	Err        error
}

type WatchService struct {
	builder *BuildService
	logger  *slog.Logger
}

func NewWatchService(builder *BuildService, logger *slog.Logger) *WatchService {
	return &WatchService{
		builder: builder,
		logger:  logger,
	}
}

// Watch keeps the output directory in sync with the source directory
// until ctx is cancelled. Callers usually run a full Build first.
func (s *WatchService) Watch(ctx context.Context, input WatchInput) error {
	build := input.Build
	if err := core.ValidateOutputDir(build.SourceDir, build.OutputDir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(build.SourceDir); err != nil {
		return &core.SourceNotFoundError{Path: build.SourceDir, Err: err}
	}

	debounce := input.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s.logger.Info("watching for changes", "dir", build.SourceDir)
	if input.OnReady != nil {
		input.OnReady()
	}

	pending := make(map[string]fsnotify.Op)
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isWatchEvent(event.Op) || !core.IsSVGFile(event.Name) || excluded(filepath.Base(event.Name), build.Exclude) {
				continue
			}
			s.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
			pending[event.Name] |= event.Op
			flush = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)

		case <-flush:
			flush = nil
			s.apply(ctx, pending, input)
			clear(pending)
		}
	}
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func (s *WatchService) apply(ctx context.Context, pending map[string]fsnotify.Op, input WatchInput) {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	sort.Sort(natural.StringSlice(paths))

	build := input.Build
	for _, path := range paths {
		var event WatchEvent
		// A rename reports the old name; the new one arrives as Create.
		if s.builder.generator.src.FileExists(path) {
			event = s.convert(ctx, path, build)
		} else {
			event = s.remove(path, build)
		}
		if input.OnEvent != nil {
			input.OnEvent(event)
		}
	}

	if build.SkipIndex {
		return
	}
	if path, err := s.builder.RefreshIndex(build); err != nil {
		s.logger.Error("failed to refresh index", "path", path, "error", err)
	}
}

func (s *WatchService) convert(ctx context.Context, path string, build BuildInput) WatchEvent {
	stem := core.DeriveIdentifier(core.StemFromPath(path), core.ConventionPascal)
	result := s.builder.generator.ProcessFile(ctx, ProcessFileInput{
		Source:     path,
		OutputDir:  build.OutputDir,
		Options:    build.Options,
		Identifier: core.ComponentIdentifier(stem, build.Options.Target),
	})
	return WatchEvent{
		Source:     path,
		OutputPath: result.OutputPath,
		Result:     result,
		Err:        result.Err,
	}
}

// remove deletes the generated file of a source that no longer exists.
// Outputs of locked sources are left alone.
func (s *WatchService) remove(path string, build BuildInput) WatchEvent {
	event := WatchEvent{Source: path, Removed: true}

	if locks := s.builder.generator.locks; locks != nil && locks.IsLocked(path) {
		event.Removed = false
		s.logger.Info("source of locked file removed, keeping output", "source", path)
		return event
	}

	ext, err := core.FileExtension(build.Options.Target, build.Options.TypeScript)
	if err != nil {
		event.Err = err
		return event
	}

	stem := core.DeriveIdentifier(core.StemFromPath(path), core.ConventionPascal)
	name := core.FileName(core.ComponentIdentifier(stem, build.Options.Target), ext, build.Options.Naming)
	event.OutputPath = filepath.Join(build.OutputDir, name)

	if err := s.builder.generator.dst.Remove(event.OutputPath); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		event.Err = &core.WriteError{Path: event.OutputPath, Err: err}
		s.logger.Error("failed to remove generated file", "path", event.OutputPath, "error", err)
		return event
	}

	s.logger.Info("removed generated file", "source", path, "output", event.OutputPath)
	return event
}
