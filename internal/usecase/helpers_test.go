package usecase

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/3-lines-studio/svger/internal/adapters/fs"
	"github.com/3-lines-studio/svger/internal/config"
)

const testSVG = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><path fill-rule="evenodd" d="M1 1h22v22H1z"/></svg>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type lockedNames map[string]bool

func (l lockedNames) IsLocked(file string) bool {
	return l[filepath.Base(file)]
}

func reactOptions(t *testing.T) GenerateOptions {
	t.Helper()
	opts, err := OptionsFromConfig(config.Defaults())
	if err != nil {
		t.Fatalf("OptionsFromConfig() error: %v", err)
	}
	return opts
}

func newOSGenerator(locks LockStore) *GenerateService {
	osfs := fs.NewOSFileSystem()
	return NewGenerateService(GenerateConfig{
		Source: osfs,
		Output: osfs,
		Locks:  locks,
	}, discardLogger())
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
