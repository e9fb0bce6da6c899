package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/maruel/natural"

	"github.com/3-lines-studio/svger/internal/core"
)

type BuildInput struct {
	SourceDir string
	OutputDir string
	Options   GenerateOptions
	// Exclude holds glob patterns matched against file base names.
	Exclude []string
	// Concurrency is the worker pool size. Zero picks DefaultConcurrency.
	Concurrency int
	Check       bool
	SkipIndex   bool
}

type BuildOutput struct {
	// Results are in discovery order, one per source file.
	Results    []FileResult
	IndexPath  string
	IndexStale bool
	IndexDiff  string
	Success    bool
	Error      error
}

func (o BuildOutput) Counts() (succeeded, skipped, failed int) {
	for _, r := range o.Results {
		switch {
		case r.Skipped:
			skipped++
		case r.Success:
			succeeded++
		default:
			failed++
		}
	}
	return succeeded, skipped, failed
}

// Stale returns check mode results whose output is out of date.
func (o BuildOutput) Stale() []FileResult {
	var stale []FileResult
	for _, r := range o.Results {
		if r.Stale {
			stale = append(stale, r)
		}
	}
	return stale
}

func DefaultConcurrency() int {
	return min(4, runtime.NumCPU())
}

type BuildService struct {
	generator *GenerateService
	logger    *slog.Logger
}

func NewBuildService(generator *GenerateService, logger *slog.Logger) *BuildService {
	return &BuildService{
		generator: generator,
		logger:    logger,
	}
}

type buildJob struct {
	input ProcessFileInput
	// outputPath is where the unit lands, known before conversion so
	// locked files can still be indexed.
	outputPath string
	err        error
}

func (s *BuildService) Build(ctx context.Context, input BuildInput) BuildOutput {
	if err := core.ValidateOutputDir(input.SourceDir, input.OutputDir); err != nil {
		return BuildOutput{Error: err}
	}

	files, err := s.discover(input.SourceDir, input.Exclude)
	if err != nil {
		return BuildOutput{Error: err}
	}

	if len(files) == 0 {
		s.logger.Warn("no svg files found", "dir", input.SourceDir)
		return BuildOutput{Success: true}
	}

	jobs, err := s.plan(files, input)
	if err != nil {
		return BuildOutput{Error: err}
	}

	workers := input.Concurrency
	if workers <= 0 {
		workers = DefaultConcurrency()
	}

	out := BuildOutput{Results: s.run(ctx, jobs, workers)}

	if !input.SkipIndex {
		s.writeIndex(&out, jobs, input)
	}

	out.Success = out.Error == nil && !out.IndexStale
	for _, r := range out.Results {
		if !r.Success || r.Stale {
			out.Success = false
		}
	}
	return out
}

func (s *BuildService) discover(dir string, exclude []string) ([]string, error) {
	entries, err := s.generator.src.ReadDir(dir)
	if err != nil {
		return nil, &core.SourceNotFoundError{Path: dir, Err: err}
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !core.IsSVGFile(name) || excluded(name, exclude) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	sort.Sort(natural.StringSlice(files))
	return files, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// plan derives each file's identifier once and rejects files that
// would overwrite another file's output.
func (s *BuildService) plan(files []string, input BuildInput) ([]buildJob, error) {
	ext, err := core.FileExtension(input.Options.Target, input.Options.TypeScript)
	if err != nil {
		return nil, err
	}

	owners := make(map[string]string, len(files))
	jobs := make([]buildJob, len(files))

	for i, file := range files {
		stem := core.DeriveIdentifier(core.StemFromPath(file), core.ConventionPascal)
		identifier := core.ComponentIdentifier(stem, input.Options.Target)
		fileName := core.FileName(identifier, ext, input.Options.Naming)

		jobs[i] = buildJob{
			input: ProcessFileInput{
				Source:     file,
				OutputDir:  input.OutputDir,
				Options:    input.Options,
				Identifier: identifier,
				Check:      input.Check,
			},
			outputPath: filepath.Join(input.OutputDir, fileName),
		}

		key := strings.ToLower(fileName)
		if owner, taken := owners[key]; taken {
			jobs[i].err = fmt.Errorf("%s and %s both generate %s", owner, file, fileName)
			continue
		}
		owners[key] = file
	}

	return jobs, nil
}

// run converts jobs on a fixed pool of workers. Results keep the order
// of jobs. Once ctx is done, remaining jobs fail with its error.
func (s *BuildService) run(ctx context.Context, jobs []buildJob, workers int) []FileResult {
	results := make([]FileResult, len(jobs))
	queue := make(chan int)

	var wg sync.WaitGroup
	for range min(workers, len(jobs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = s.generator.ProcessFile(ctx, jobs[i].input)
			}
		}()
	}

	for i, job := range jobs {
		if job.err != nil {
			results[i] = FileResult{Source: job.input.Source, Err: job.err}
			continue
		}
		queue <- i
	}
	close(queue)
	wg.Wait()

	return results
}

func (s *BuildService) writeIndex(out *BuildOutput, jobs []buildJob, input BuildInput) {
	var entries []core.IndexEntry
	for i, r := range out.Results {
		if !r.Success {
			continue
		}
		if r.Skipped && !s.generator.dst.FileExists(jobs[i].outputPath) {
			continue
		}
		entries = append(entries, jobs[i].indexEntry())
	}

	out.IndexPath = indexPath(input)
	code := core.RenderIndex(entries, input.Options.Target)

	if input.Check {
		out.IndexStale, out.IndexDiff = s.generator.compare(out.IndexPath, code)
		return
	}

	out.Error = s.saveIndex(input.OutputDir, out.IndexPath, code)
}

// RefreshIndex rewrites the index from the component files currently
// present in the output directory, without converting anything.
func (s *BuildService) RefreshIndex(input BuildInput) (string, error) {
	files, err := s.discover(input.SourceDir, input.Exclude)
	if err != nil {
		return "", err
	}
	jobs, err := s.plan(files, input)
	if err != nil {
		return "", err
	}

	var entries []core.IndexEntry
	for _, job := range jobs {
		if job.err == nil && s.generator.dst.FileExists(job.outputPath) {
			entries = append(entries, job.indexEntry())
		}
	}

	path := indexPath(input)
	return path, s.saveIndex(input.OutputDir, path, core.RenderIndex(entries, input.Options.Target))
}

func (s *BuildService) saveIndex(dir, path, code string) error {
	if err := s.generator.dst.MkdirAll(dir, 0755); err != nil {
		return &core.WriteError{Path: dir, Err: err}
	}
	if err := s.generator.dst.WriteFile(path, []byte(code), 0644); err != nil {
		return &core.WriteError{Path: path, Err: err}
	}
	return nil
}

func (j buildJob) indexEntry() core.IndexEntry {
	return core.IndexEntry{
		Identifier: j.input.Identifier,
		FileName:   filepath.Base(j.outputPath),
	}
}

func indexPath(input BuildInput) string {
	return filepath.Join(input.OutputDir, core.IndexFileName(input.Options.TypeScript))
}
