package svger

import (
	"context"
	iofs "io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/3-lines-studio/svger/internal/adapters/env"
	"github.com/3-lines-studio/svger/internal/adapters/fs"
	"github.com/3-lines-studio/svger/internal/config"
	"github.com/3-lines-studio/svger/internal/core"
	"github.com/3-lines-studio/svger/internal/lock"
	"github.com/3-lines-studio/svger/internal/usecase"
)

type FrameworkOptions = core.FrameworkOptions

// Options select the target framework and shape of generated
// components. The zero value is not useful; start from DefaultOptions
// or LoadOptions.
type Options struct {
	Framework        string
	TypeScript       bool
	Naming           string
	DefaultWidth     int
	DefaultHeight    int
	DefaultFill      string
	FrameworkOptions FrameworkOptions
	// LockFile lists sources ProcessFile must not regenerate. Empty
	// disables lock checks.
	LockFile string
	// Source, when set, is where ProcessFile reads SVG files from, such
	// as an embed.FS. Paths are then relative to its root. Output is
	// always written to the OS filesystem.
	Source iofs.FS
	// Logger receives per-file diagnostics. Nil uses slog.Default.
	Logger *slog.Logger
}

// Result is the outcome of ProcessFile.
type Result struct {
	Source     string
	Identifier string
	OutputPath string
	Success    bool
	Skipped    bool
	Malformed  bool
	Err        error
	Duration   time.Duration
}

func DefaultOptions() Options {
	return optionsFromConfig(config.Defaults())
}

// LoadOptions reads the project config in dir, layering SVGER_*
// environment variables over it.
func LoadOptions(dir string) (Options, error) {
	osfs := fs.NewOSFileSystem()
	cfg, err := config.Load(osfs, config.Discover(osfs, dir))
	if err != nil {
		return Options{}, err
	}

	overrides, err := env.Overrides()
	if err != nil {
		return Options{}, err
	}

	opts := optionsFromConfig(cfg.Apply(overrides))
	opts.LockFile = filepath.Join(dir, lock.FileName)
	return opts, nil
}

func optionsFromConfig(cfg config.Config) Options {
	return Options{
		Framework:        cfg.Framework,
		TypeScript:       cfg.TypeScript,
		Naming:           cfg.Naming,
		DefaultWidth:     cfg.DefaultWidth,
		DefaultHeight:    cfg.DefaultHeight,
		DefaultFill:      cfg.DefaultFill,
		FrameworkOptions: cfg.FrameworkOptions,
	}
}

func (o Options) config() config.Config {
	cfg := config.Defaults()
	cfg.Framework = o.Framework
	cfg.TypeScript = o.TypeScript
	cfg.Naming = o.Naming
	cfg.DefaultWidth = o.DefaultWidth
	cfg.DefaultHeight = o.DefaultHeight
	cfg.DefaultFill = o.DefaultFill
	cfg.FrameworkOptions = o.FrameworkOptions
	return cfg
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// GenerateComponent renders svgText as a component named after
// identifier for the configured framework.
func GenerateComponent(identifier, svgText string, opts Options) (string, error) {
	genOpts, err := usecase.OptionsFromConfig(opts.config())
	if err != nil {
		return "", err
	}

	service := usecase.NewGenerateService(usecase.GenerateConfig{}, opts.logger())
	unit, err := service.Generate(usecase.GenerateInput{
		Identifier: identifier,
		SVG:        svgText,
		Options:    genOpts,
	})
	if err != nil {
		return "", err
	}
	return unit.Code, nil
}

// ProcessFile converts the SVG file at svgPath into a component file in
// outDir. Failures are reported on the result.
func ProcessFile(ctx context.Context, svgPath, outDir string, opts Options) Result {
	result := Result{Source: svgPath}

	genOpts, err := usecase.OptionsFromConfig(opts.config())
	if err != nil {
		result.Err = err
		return result
	}

	osfs := fs.NewOSFileSystem()
	cfg := usecase.GenerateConfig{Source: osfs, Output: osfs}
	if opts.Source != nil {
		cfg.Source = fs.NewReadOnlyFileSystem(opts.Source)
	}
	if opts.LockFile != "" {
		store, err := lock.Open(osfs, opts.LockFile)
		if err != nil {
			result.Err = err
			return result
		}
		cfg.Locks = store
	}

	r := usecase.NewGenerateService(cfg, opts.logger()).ProcessFile(ctx, usecase.ProcessFileInput{
		Source:    svgPath,
		OutputDir: outDir,
		Options:   genOpts,
	})

	return Result{
		Source:     r.Source,
		Identifier: r.Identifier,
		OutputPath: r.OutputPath,
		Success:    r.Success,
		Skipped:    r.Skipped,
		Malformed:  r.Malformed,
		Err:        r.Err,
		Duration:   r.Duration,
	}
}

// GetFileExtension returns the extension, without a leading dot, of
// files generated for target.
func GetFileExtension(target string, typescript bool) (string, error) {
	t, err := core.ParseTarget(target)
	if err != nil {
		return "", err
	}
	return core.FileExtension(t, typescript)
}

// CleanContent strips an SVG document down to the markup inside its
// root element, with presentation attributes camelCased.
func CleanContent(svgText string) string {
	return core.CleanContent(svgText)
}

// DeriveIdentifier turns a file stem into a component name. The camel
// convention lowercases the first letter; kebab only affects file
// names, so it yields the same name as pascal. An unknown convention
// falls back to pascal.
func DeriveIdentifier(stem, convention string) string {
	conv, err := core.ParseConvention(convention)
	if err != nil {
		conv = core.ConventionPascal
	}
	return core.DeriveIdentifier(stem, conv)
}
