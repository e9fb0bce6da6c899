package usecase

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/3-lines-studio/svger/internal/adapters/cli"
	"github.com/3-lines-studio/svger/internal/adapters/fs"
	"github.com/3-lines-studio/svger/internal/config"
	"github.com/3-lines-studio/svger/internal/lock"
)

func TestCleanRemovesFiles(t *testing.T) {
	out := t.TempDir()
	writeFiles(t, out, map[string]string{"Home.tsx": "a", "index.ts": "b"})
	if err := os.Mkdir(filepath.Join(out, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	result := NewCleanService(fs.NewOSFileSystem(), cli.NewWriterOutput(&buf)).Clean(out)

	if !result.Success {
		t.Fatalf("Clean() error: %v", result.Error)
	}
	if len(result.Removed) != 2 {
		t.Errorf("expected 2 files removed, got %v", result.Removed)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "nested" {
		t.Errorf("expected only the nested directory to remain, got %v", entries)
	}
	if !strings.Contains(buf.String(), "Removed 2 files") {
		t.Errorf("expected summary output, got %q", buf.String())
	}
}

func TestCleanMissingDirectory(t *testing.T) {
	var buf bytes.Buffer
	s := NewCleanService(fs.NewOSFileSystem(), cli.NewWriterOutput(&buf))

	if result := s.Clean(filepath.Join(t.TempDir(), "missing")); !result.Success {
		t.Errorf("expected missing directory to be clean, got %v", result.Error)
	}
	if result := s.Clean(""); result.Error == nil {
		t.Error("expected error for empty directory")
	}
}

func TestLockService(t *testing.T) {
	path := filepath.Join(t.TempDir(), lock.FileName)
	var buf bytes.Buffer
	s := NewLockService(fs.NewOSFileSystem(), path, cli.NewWriterOutput(&buf))

	if err := s.Lock([]string{"icons/home.svg", "star.svg", "home.svg"}); err != nil {
		t.Fatalf("Lock() error: %v", err)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if diff := cmp.Diff([]string{"home.svg", "star.svg"}, names); diff != "" {
		t.Errorf("locked names mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "1 files were already locked") {
		t.Errorf("expected duplicate warning, got %q", buf.String())
	}

	if err := s.Unlock([]string{"home.svg", "other.svg"}); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	names, _ = s.List()
	if diff := cmp.Diff([]string{"star.svg"}, names); diff != "" {
		t.Errorf("locked names mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigService(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".svgconfig.json")
	s := NewConfigService(fs.NewOSFileSystem(), path)

	if err := s.Init(config.Defaults()); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := s.Init(config.Defaults()); !errors.Is(err, config.ErrConfigExists) {
		t.Errorf("expected ErrConfigExists, got %v", err)
	}

	if err := s.Set("framework", "solid"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := s.Get("framework")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "solid" {
		t.Errorf("expected solid, got %q", got)
	}

	shown, err := s.Show()
	if err != nil {
		t.Fatalf("Show() error: %v", err)
	}
	if !strings.Contains(shown, `"framework": "solid"`) {
		t.Errorf("expected effective config, got:\n%s", shown)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestInitProject(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Source = filepath.Join(dir, "svg")

	var buf bytes.Buffer
	s := NewInitService(fs.NewOSFileSystem(), cli.NewWriterOutput(&buf))
	input := InitInput{
		ConfigPath:   filepath.Join(dir, ".svgconfig.json"),
		Config:       cfg,
		CreateSource: true,
	}

	result := s.InitProject(input)
	if !result.Success {
		t.Fatalf("InitProject() error: %v", result.Error)
	}
	if info, err := os.Stat(cfg.Source); err != nil || !info.IsDir() {
		t.Errorf("expected source directory to be created: %v", err)
	}

	again := s.InitProject(input)
	if again.Success || !errors.Is(again.Error, config.ErrConfigExists) {
		t.Errorf("expected second init to fail with ErrConfigExists, got %v", again.Error)
	}
}
