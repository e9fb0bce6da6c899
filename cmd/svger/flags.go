package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/3-lines-studio/svger/internal/adapters/env"
	"github.com/3-lines-studio/svger/internal/adapters/fs"
	"github.com/3-lines-studio/svger/internal/config"
)

// optionalBool is a boolean flag that remembers whether it was given,
// so unset flags leave config values alone.
type optionalBool struct {
	value *bool
}

func (b *optionalBool) String() string {
	if b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

// negatedBool sets target to false when given, for --no-* flags.
type negatedBool struct {
	target *optionalBool
}

func (b negatedBool) String() string { return "" }

func (b negatedBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	v = !v
	b.target.value = &v
	return nil
}

func (b negatedBool) IsBoolFlag() bool { return true }

type optionalString struct {
	value *string
}

func (s *optionalString) String() string {
	if s.value == nil {
		return ""
	}
	return *s.value
}

func (s *optionalString) Set(v string) error {
	s.value = &v
	return nil
}

type optionalInt struct {
	value *int
}

func (i *optionalInt) String() string {
	if i.value == nil {
		return ""
	}
	return strconv.Itoa(*i.value)
}

func (i *optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	i.value = &n
	return nil
}

// commonFlags are the generation settings shared by commands that
// convert files.
type commonFlags struct {
	configPath  string
	framework   optionalString
	naming      optionalString
	logLevel    optionalString
	typescript  optionalBool
	composition optionalBool
	standalone  optionalBool
	signals     optionalBool
	forwardRef  optionalBool
	memo        optionalBool
	concurrency optionalInt
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(stderr)
	return fset
}

func (c *commonFlags) register(fset *flag.FlagSet) {
	fset.StringVar(&c.configPath, "config", "", "config file (default: discovered in the working directory)")
	fset.Var(&c.framework, "framework", "target framework")
	fset.Var(&c.naming, "naming", "file naming convention: pascal, camel or kebab")
	fset.Var(&c.logLevel, "log-level", "log level: debug, info, warn or error")
	fset.Var(&c.typescript, "typescript", "emit TypeScript")
	fset.Var(negatedBool{&c.typescript}, "no-typescript", "emit JavaScript")
	fset.Var(&c.composition, "composition", "vue: use <script setup>")
	fset.Var(&c.standalone, "standalone", "angular: emit standalone components")
	fset.Var(&c.signals, "signals", "angular: use signal inputs")
	fset.Var(&c.forwardRef, "forward-ref", "react: wrap components in forwardRef")
	fset.Var(&c.memo, "memo", "react: wrap components in memo")
	fset.Var(&c.concurrency, "concurrency", "number of files converted in parallel")
}

func (c *commonFlags) overrides() config.Overrides {
	o := config.Overrides{
		Framework:   c.framework.value,
		Naming:      c.naming.value,
		LogLevel:    c.logLevel.value,
		TypeScript:  c.typescript.value,
		Concurrency: c.concurrency.value,
	}
	o.FrameworkOptions.ScriptSetup = c.composition.value
	o.FrameworkOptions.Standalone = c.standalone.value
	o.FrameworkOptions.Signals = c.signals.value
	o.FrameworkOptions.ForwardRef = c.forwardRef.value
	o.FrameworkOptions.Memo = c.memo.value
	return o
}

// loadConfig resolves settings with flags over environment over the
// config file over defaults.
func (c *commonFlags) loadConfig(fsys fs.FileSystem) (config.Config, string, error) {
	path := c.configPath
	if path == "" {
		path = config.Discover(fsys, ".")
	}

	cfg, err := config.Load(fsys, path)
	if err != nil {
		return cfg, path, err
	}

	fromEnv, err := env.Overrides()
	if err != nil {
		return cfg, path, fmt.Errorf("invalid environment: %w", err)
	}

	cfg = cfg.Apply(fromEnv).Apply(c.overrides())
	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, path, nil
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals.
func parseArgs(fset *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fset.Parse(args); err != nil {
			return nil, err
		}
		args = fset.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
