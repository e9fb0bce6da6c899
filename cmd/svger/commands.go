package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/3-lines-studio/svger/internal/adapters/cli"
	httpadapter "github.com/3-lines-studio/svger/internal/adapters/http"
	"github.com/3-lines-studio/svger/internal/config"
	"github.com/3-lines-studio/svger/internal/lock"
	"github.com/3-lines-studio/svger/internal/usecase"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type services struct {
	options   usecase.GenerateOptions
	generator *usecase.GenerateService
	builder   *usecase.BuildService
	logger    *slog.Logger
}

func (a *app) newServices(cfg config.Config) (*services, error) {
	opts, err := usecase.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	locks, err := lock.Open(a.fs, lock.FileName)
	if err != nil {
		return nil, err
	}

	logger := newLogger(a.stderr, cfg.LogLevel())
	generator := usecase.NewGenerateService(usecase.GenerateConfig{
		Source:     a.fs,
		Output:     a.fs,
		Locks:      locks,
		MaxRetries: cfg.ErrorHandling.MaxRetries,
		CacheTTL:   usecase.CacheTTL(cfg),
	}, logger)

	return &services{
		options:   opts,
		generator: generator,
		builder:   usecase.NewBuildService(generator, logger),
		logger:    logger,
	}, nil
}

// setup parses args for a converting command and loads its settings.
// positional defaults fill missing positional arguments in order.
func (a *app) setup(fset *flag.FlagSet, flags *commonFlags, args []string) ([]string, config.Config, *services, int) {
	flags.register(fset)
	positional, err := parseArgs(fset, args)
	if err != nil {
		return nil, config.Config{}, nil, exitUsage
	}

	cfg, _, err := flags.loadConfig(a.fs)
	if err != nil {
		a.out.PrintError("%v", err)
		return nil, cfg, nil, exitFailure
	}

	svc, err := a.newServices(cfg)
	if err != nil {
		a.out.PrintError("%v", err)
		return nil, cfg, nil, exitFailure
	}

	return positional, cfg, svc, exitOK
}

func (a *app) buildInput(cfg config.Config, svc *services, positional []string) usecase.BuildInput {
	input := usecase.BuildInput{
		SourceDir:   cfg.Source,
		OutputDir:   cfg.Output,
		Options:     svc.options,
		Exclude:     cfg.Exclude,
		Concurrency: cfg.Workers(),
	}
	if len(positional) > 0 {
		input.SourceDir = positional[0]
	}
	if len(positional) > 1 {
		input.OutputDir = positional[1]
	}
	return input
}

func (a *app) build(ctx context.Context, args []string) int {
	fset := newFlagSet("build", a.stderr)
	var flags commonFlags
	check := fset.Bool("check", false, "report stale files without writing")

	positional, cfg, svc, code := a.setup(fset, &flags, args)
	if code != exitOK {
		return code
	}

	a.out.PrintHeader("svger build")

	input := a.buildInput(cfg, svc, positional)
	input.Check = *check
	a.out.PrintStep("Converting %s to %s components", input.SourceDir, input.Options.Target)

	if !a.renderBuild(svc.builder.Build(ctx, input), input.OutputDir) {
		return exitFailure
	}
	return exitOK
}

// renderBuild prints the batch report and reports whether it passed.
func (a *app) renderBuild(output usecase.BuildOutput, outputDir string) bool {
	report := cli.NewBuildReport(a.out, outputDir)
	report.SetFileCount(len(output.Results))

	for _, r := range output.Results {
		switch {
		case r.Skipped:
			report.AddSkipped(r.Source)
		case r.Err != nil:
			report.AddError(r.Source, r.Err.Error(), nil)
		case r.Stale:
			report.AddError(r.Source, "out of date: "+r.OutputPath, diffLines(r.Diff))
		default:
			report.AddGenerated(r.OutputPath)
			if r.Malformed {
				report.AddWarning(r.Source, "no <svg> wrapper found, content emitted as-is", nil)
			}
		}
	}

	if output.IndexStale {
		report.AddError(output.IndexPath, "index out of date", diffLines(output.IndexDiff))
	}
	if output.Error != nil {
		report.AddError(outputDir, output.Error.Error(), nil)
	}

	report.Render(a.out.Writer())
	return !report.HasFailures()
}

func diffLines(diff string) []string {
	diff = strings.TrimRight(diff, "\n")
	if diff == "" {
		return nil
	}
	return strings.Split(diff, "\n")
}

func (a *app) generate(ctx context.Context, args []string) int {
	fset := newFlagSet("generate", a.stderr)
	var flags commonFlags

	positional, cfg, svc, code := a.setup(fset, &flags, args)
	if code != exitOK {
		return code
	}
	if len(positional) == 0 {
		a.out.PrintError("Missing svg file argument")
		a.out.PrintStep("Usage: svger generate <file.svg> [out]")
		return exitUsage
	}

	outputDir := cfg.Output
	if len(positional) > 1 {
		outputDir = positional[1]
	}

	result := svc.generator.ProcessFile(ctx, usecase.ProcessFileInput{
		Source:    positional[0],
		OutputDir: outputDir,
		Options:   svc.options,
	})

	switch {
	case result.Err != nil:
		a.out.PrintError("%v", result.Err)
		return exitFailure
	case result.Skipped:
		a.out.PrintWarning("%s is locked, skipped", filepath.Base(result.Source))
	default:
		a.out.PrintSuccess("Generated %s", result.Identifier)
		a.out.PrintFile(result.OutputPath)
		if result.Malformed {
			a.out.PrintWarning("no <svg> wrapper found, content emitted as-is")
		}
	}
	return exitOK
}

func (a *app) watch(ctx context.Context, args []string) int {
	fset := newFlagSet("watch", a.stderr)
	var flags commonFlags

	positional, cfg, svc, code := a.setup(fset, &flags, args)
	if code != exitOK {
		return code
	}

	a.out.PrintHeader("svger watch")
	input := a.buildInput(cfg, svc, positional)
	a.renderBuild(svc.builder.Build(ctx, input), input.OutputDir)

	watcher := usecase.NewWatchService(svc.builder, svc.logger)
	err := watcher.Watch(ctx, usecase.WatchInput{
		Build:   input,
		OnReady: func() { a.out.PrintStep("Watching %s (Ctrl+C to stop)", input.SourceDir) },
		OnEvent: a.printWatchEvent,
	})
	if err != nil {
		a.out.PrintError("%v", err)
		return exitFailure
	}
	return exitOK
}

func (a *app) printWatchEvent(e usecase.WatchEvent) {
	name := filepath.Base(e.Source)
	switch {
	case e.Err != nil:
		a.out.PrintError("%s: %v", name, e.Err)
	case e.Removed:
		a.out.PrintStep("Removed %s", e.OutputPath)
	case e.Result.Skipped:
		a.out.PrintStep("Skipped locked %s", name)
	default:
		a.out.PrintSuccess("Generated %s", e.OutputPath)
	}
}

func (a *app) lock(_ context.Context, args []string) int {
	service := usecase.NewLockService(a.fs, lock.FileName, a.out)

	if len(args) == 0 {
		names, err := service.List()
		if err != nil {
			a.out.PrintError("%v", err)
			return exitFailure
		}
		if len(names) == 0 {
			a.out.PrintStep("No locked files")
		}
		for _, name := range names {
			a.out.PrintFile(name)
		}
		return exitOK
	}

	if err := service.Lock(args); err != nil {
		a.out.PrintError("%v", err)
		return exitFailure
	}
	return exitOK
}

func (a *app) unlock(_ context.Context, args []string) int {
	if len(args) == 0 {
		a.out.PrintError("Missing file arguments")
		a.out.PrintStep("Usage: svger unlock <files...>")
		return exitUsage
	}

	service := usecase.NewLockService(a.fs, lock.FileName, a.out)
	if err := service.Unlock(args); err != nil {
		a.out.PrintError("%v", err)
		return exitFailure
	}
	return exitOK
}

func (a *app) config(_ context.Context, args []string) int {
	fset := newFlagSet("config", a.stderr)
	path := fset.String("config", "", "config file (default: discovered in the working directory)")
	initFile := fset.Bool("init", false, "write a config file with default values")
	fset.Bool("show", false, "print the effective config (the default)")
	get := fset.String("get", "", "print the value of a dotted key")
	set := fset.String("set", "", "store key=value")
	validate := fset.Bool("validate", false, "check the config file")
	if err := fset.Parse(args); err != nil {
		return exitUsage
	}

	if *path == "" {
		*path = config.Discover(a.fs, ".")
	}
	service := usecase.NewConfigService(a.fs, *path)
	w := a.out.Writer()

	var err error
	switch {
	case *initFile:
		if err = service.Init(config.Defaults()); err == nil {
			a.out.PrintSuccess("Created %s", service.Path())
		}
	case *get != "":
		var value string
		if value, err = service.Get(*get); err == nil {
			fmt.Fprintln(w, value)
		}
	case *set != "":
		key, value, ok := strings.Cut(*set, "=")
		if !ok || key == "" {
			a.out.PrintError("--set expects key=value")
			return exitUsage
		}
		if err = service.Set(key, value); err == nil {
			a.out.PrintSuccess("Set %s in %s", key, service.Path())
		}
	case *validate:
		if err = service.Validate(); err == nil {
			a.out.PrintSuccess("%s is valid", service.Path())
		}
	default:
		var doc string
		if doc, err = service.Show(); err == nil {
			fmt.Fprint(w, doc)
		}
	}

	if err != nil {
		a.out.PrintError("%v", err)
		return exitFailure
	}
	return exitOK
}

func (a *app) clean(_ context.Context, args []string) int {
	fset := newFlagSet("clean", a.stderr)
	var flags commonFlags
	flags.register(fset)
	positional, err := parseArgs(fset, args)
	if err != nil {
		return exitUsage
	}

	dir := ""
	if len(positional) > 0 {
		dir = positional[0]
	} else {
		cfg, _, err := flags.loadConfig(a.fs)
		if err != nil {
			a.out.PrintError("%v", err)
			return exitFailure
		}
		dir = cfg.Output
	}

	result := usecase.NewCleanService(a.fs, a.out).Clean(dir)
	if result.Error != nil {
		a.out.PrintError("%v", result.Error)
		return exitFailure
	}
	return exitOK
}

func (a *app) initProject(_ context.Context, args []string) int {
	fset := newFlagSet("init", a.stderr)
	var flags commonFlags
	flags.register(fset)
	yamlFile := fset.Bool("yaml", false, "write .svgconfig.yaml instead of JSON")
	source := fset.String("source", "", "directory holding svg files")
	output := fset.String("output", "", "directory for generated components")
	if _, err := parseArgs(fset, args); err != nil {
		return exitUsage
	}

	cfg := config.Defaults().Apply(flags.overrides())
	if *source != "" {
		cfg.Source = *source
	}
	if *output != "" {
		cfg.Output = *output
	}

	path := flags.configPath
	if path == "" {
		path = config.FileNames[0]
		if *yamlFile {
			path = config.FileNames[1]
		}
	}

	result := usecase.NewInitService(a.fs, a.out).InitProject(usecase.InitInput{
		ConfigPath:   path,
		Config:       cfg,
		CreateSource: true,
	})
	if result.Error != nil {
		a.out.PrintError("%v", result.Error)
		return exitFailure
	}
	return exitOK
}

func (a *app) serve(ctx context.Context, args []string) int {
	fset := newFlagSet("serve", a.stderr)
	var flags commonFlags
	addr := fset.String("addr", ":8080", "listen address")
	watch := fset.Bool("watch", false, "also watch the source directory and stream events")

	positional, cfg, svc, code := a.setup(fset, &flags, args)
	if code != exitOK {
		return code
	}

	events := httpadapter.NewEvents()
	server := &http.Server{
		Addr:              *addr,
		Handler:           httpadapter.NewRouter(svc.generator, svc.options, events, svc.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if *watch {
		input := a.buildInput(cfg, svc, positional)
		watcher := usecase.NewWatchService(svc.builder, svc.logger)
		go func() {
			err := watcher.Watch(ctx, usecase.WatchInput{
				Build: input,
				OnEvent: func(e usecase.WatchEvent) {
					a.printWatchEvent(e)
					events.Publish(watchEvent(e))
				},
			})
			if err != nil {
				svc.logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	a.out.PrintHeader("svger serve")
	a.out.PrintStep("Listening on %s", *addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.out.PrintError("%v", err)
			return exitFailure
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.out.PrintError("%v", err)
			return exitFailure
		}
	}
	return exitOK
}

func watchEvent(e usecase.WatchEvent) httpadapter.Event {
	event := httpadapter.Event{
		Kind:       "generated",
		Source:     e.Source,
		Identifier: e.Result.Identifier,
		OutputPath: e.OutputPath,
	}
	if e.Removed {
		event.Kind = "removed"
	}
	if e.Err != nil {
		event.Kind = "error"
		event.Error = e.Err.Error()
	}
	return event
}
