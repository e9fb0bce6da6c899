package usecase

import (
	"fmt"
	"path/filepath"
)

type CleanOutput struct {
	Removed []string
	Success bool
	Error   error
}

type CleanService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewCleanService(fs FileSystem, cli CLIOutput) *CleanService {
	return &CleanService{
		fs:  fs,
		cli: cli,
	}
}

// Clean removes every file directly inside dir. Subdirectories are
// left alone and a missing dir is already clean.
func (s *CleanService) Clean(dir string) CleanOutput {
	if dir == "" {
		return CleanOutput{Error: fmt.Errorf("output directory is required")}
	}

	if !s.fs.FileExists(dir) {
		s.cli.PrintStep("Nothing to clean in %s", dir)
		return CleanOutput{Success: true}
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return CleanOutput{Error: fmt.Errorf("failed to read directory: %w", err)}
	}

	var out CleanOutput
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := s.fs.Remove(path); err != nil {
			out.Error = fmt.Errorf("failed to remove %s: %w", path, err)
			return out
		}
		out.Removed = append(out.Removed, path)
	}

	s.cli.PrintSuccess("Removed %d files from %s", len(out.Removed), dir)
	out.Success = true
	return out
}
