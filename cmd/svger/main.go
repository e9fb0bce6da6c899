package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/3-lines-studio/svger/internal/adapters/cli"
	"github.com/3-lines-studio/svger/internal/adapters/env"
	"github.com/3-lines-studio/svger/internal/adapters/fs"
)

type app struct {
	fs     fs.FileSystem
	out    *cli.Output
	stderr io.Writer
}

type command func(a *app, ctx context.Context, args []string) int

var commands = map[string]command{
	"build":    (*app).build,
	"generate": (*app).generate,
	"watch":    (*app).watch,
	"lock":     (*app).lock,
	"unlock":   (*app).unlock,
	"config":   (*app).config,
	"clean":    (*app).clean,
	"init":     (*app).initProject,
	"serve":    (*app).serve,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		fs:     fs.NewOSFileSystem(),
		out:    cli.NewOutput(),
		stderr: os.Stderr,
	}

	if err := env.LoadDotenv(".env"); err != nil {
		a.out.PrintError("%v", err)
		os.Exit(1)
	}

	os.Exit(a.run(ctx, os.Args[1:]))
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return 2
	}

	if args[0] == "--help" || args[0] == "-h" || args[0] == "help" {
		a.printUsage()
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.out.PrintError("Unknown command %q", args[0])
		a.printUsage()
		return 2
	}

	return cmd(a, ctx, args[1:])
}

func (a *app) printUsage() {
	w := a.out.Writer()
	a.out.PrintHeader("svger")
	fmt.Fprintln(w, "Usage: svger <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build [src] [out]        Convert every svg file and write the index")
	fmt.Fprintln(w, "  generate <svg> [out]     Convert a single svg file")
	fmt.Fprintln(w, "  watch [src] [out]        Build, then regenerate on changes")
	fmt.Fprintln(w, "  lock [files...]          Protect files from regeneration, or list them")
	fmt.Fprintln(w, "  unlock <files...>        Remove files from the lock list")
	fmt.Fprintln(w, "  config                   Show, query or edit the config file")
	fmt.Fprintln(w, "  clean [out]              Remove generated files")
	fmt.Fprintln(w, "  init                     Write a config file")
	fmt.Fprintln(w, "  serve                    Serve the component API over HTTP")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generation options:")
	fmt.Fprintln(w, "  --framework <name>       react, react-native, vue, svelte, angular, solid, preact, lit, vanilla")
	fmt.Fprintln(w, "  --typescript, --no-typescript")
	fmt.Fprintln(w, "  --naming <convention>    pascal, camel or kebab")
	fmt.Fprintln(w, "  --composition            vue: use <script setup>")
	fmt.Fprintln(w, "  --standalone, --signals  angular component options")
	fmt.Fprintln(w, "  --forward-ref, --memo    react component options")
	fmt.Fprintln(w, "  --concurrency <n>        files converted in parallel")
	fmt.Fprintln(w, "  --check                  build: report stale files without writing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  svger build ./src/assets/svg ./src/components/icons --framework vue")
	fmt.Fprintln(w, "  svger config --set frameworkOptions.memo=true")
}
