package usecase

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/3-lines-studio/svger/internal/core"
)

type ProcessFileInput struct {
	Source    string
	OutputDir string
	Options   GenerateOptions
	// Identifier overrides the name derived from the source file.
	Identifier string
	// Check compares against the existing output instead of writing.
	Check bool
}

// FileResult is the outcome of converting one source file.
type FileResult struct {
	JobID      string
	Source     string
	Identifier string
	OutputPath string
	Success    bool
	Skipped    bool
	Malformed  bool
	// Stale is set in check mode when the output on disk differs from
	// what would be generated. Diff then holds a line diff.
	Stale    bool
	Diff     string
	Err      error
	Duration time.Duration
}

// ProcessFile converts a single source file. Failures are reported on
// the result.
func (s *GenerateService) ProcessFile(ctx context.Context, input ProcessFileInput) FileResult {
	start := time.Now()
	result := FileResult{
		JobID:  uuid.NewString(),
		Source: input.Source,
	}

	if s.locks != nil && s.locks.IsLocked(input.Source) {
		result.Success = true
		result.Skipped = true
		s.logger.Info("skipping locked file", "source", input.Source, "job", result.JobID)
		return s.finish(result, start)
	}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return s.finish(result, start)
	}

	data, err := s.src.ReadFile(input.Source)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			result.Err = &core.SourceNotFoundError{Path: input.Source, Err: err}
		} else {
			result.Err = fmt.Errorf("failed to read %s: %w", input.Source, err)
		}
		return s.finish(result, start)
	}

	identifier := input.Identifier
	if identifier == "" {
		identifier = core.DeriveIdentifier(core.StemFromPath(input.Source), core.ConventionPascal)
	}

	out, err := s.Generate(GenerateInput{
		Identifier: identifier,
		SVG:        string(data),
		Options:    input.Options,
	})
	if err != nil {
		result.Err = err
		return s.finish(result, start)
	}
	result.Identifier = out.Identifier
	result.Malformed = out.Malformed
	result.OutputPath = filepath.Join(input.OutputDir, out.FileName)

	if input.Check {
		result.Stale, result.Diff = s.compare(result.OutputPath, out.Code)
		result.Success = true
		return s.finish(result, start)
	}

	if err := s.dst.MkdirAll(input.OutputDir, 0755); err != nil {
		result.Err = &core.WriteError{Path: input.OutputDir, Err: err}
		return s.finish(result, start)
	}

	if err := s.write(ctx, result.OutputPath, []byte(out.Code)); err != nil {
		result.Err = &core.WriteError{Path: result.OutputPath, Err: err}
		return s.finish(result, start)
	}

	result.Success = true
	return s.finish(result, start)
}

func (s *GenerateService) finish(result FileResult, start time.Time) FileResult {
	result.Duration = time.Since(start)
	if result.Err != nil {
		s.logger.Error("conversion failed", "source", result.Source, "job", result.JobID, "error", result.Err)
	}
	return result
}

func (s *GenerateService) write(ctx context.Context, path string, data []byte) error {
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if err = s.dst.WriteFile(path, data, 0644); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		s.logger.Debug("write failed, retrying", "path", path, "attempt", attempt+1, "error", err)
	}
	return err
}

// compare reports whether the file at path differs from want and
// returns a line-oriented diff when it does.
func (s *GenerateService) compare(path, want string) (bool, string) {
	existing, err := s.dst.ReadFile(path)
	if err != nil {
		return true, fmt.Sprintf("%s does not exist", path)
	}
	if string(existing) == want {
		return false, ""
	}
	return true, lineDiff(string(existing), want)
}

// lineDiff lists removed and added lines, omitting unchanged ones.
func lineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "+ "
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			continue
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return out.String()
}
