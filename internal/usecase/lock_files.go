package usecase

import (
	"fmt"

	"github.com/3-lines-studio/svger/internal/lock"
)

type LockService struct {
	fs   FileSystem
	path string
	cli  CLIOutput
}

func NewLockService(fs FileSystem, path string, cli CLIOutput) *LockService {
	return &LockService{
		fs:   fs,
		path: path,
		cli:  cli,
	}
}

// Lock marks files so builds skip them. Files that are already locked
// are reported and left as they are.
func (s *LockService) Lock(files []string) error {
	store, err := lock.Open(s.fs, s.path)
	if err != nil {
		return err
	}

	added, err := store.Lock(files...)
	if err != nil {
		return fmt.Errorf("failed to lock files: %w", err)
	}

	for _, name := range added {
		s.cli.PrintSuccess("Locked %s", name)
	}
	if len(added) < len(files) {
		s.cli.PrintWarning("%d files were already locked", len(files)-len(added))
	}
	return nil
}

func (s *LockService) Unlock(files []string) error {
	store, err := lock.Open(s.fs, s.path)
	if err != nil {
		return err
	}

	removed, err := store.Unlock(files...)
	if err != nil {
		return fmt.Errorf("failed to unlock files: %w", err)
	}

	for _, name := range removed {
		s.cli.PrintSuccess("Unlocked %s", name)
	}
	if len(removed) < len(files) {
		s.cli.PrintWarning("%d files were not locked", len(files)-len(removed))
	}
	return nil
}

func (s *LockService) List() ([]string, error) {
	store, err := lock.Open(s.fs, s.path)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}
