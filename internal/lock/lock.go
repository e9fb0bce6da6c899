package lock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/maruel/natural"

	"github.com/3-lines-studio/svger/internal/adapters/fs"
)

// FileName is the lock file kept in the working directory.
const FileName = ".svg-lock"

// Store tracks source files that builds must not regenerate. Entries
// are base names, so a lock applies regardless of the directory a
// build is pointed at.
type Store struct {
	fs    fs.FileSystem
	path  string
	mu    sync.Mutex
	names map[string]struct{}
}

func Open(fsys fs.FileSystem, path string) (*Store, error) {
	s := &Store{
		fs:    fsys,
		path:  path,
		names: make(map[string]struct{}),
	}

	if !fsys.FileExists(path) {
		return s, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("invalid lock file %s: %w", path, err)
	}

	for _, name := range names {
		s.names[filepath.Base(name)] = struct{}{}
	}

	return s, nil
}

func (s *Store) IsLocked(file string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.names[filepath.Base(file)]
	return ok
}

// Lock adds files to the store and persists it. It returns the names
// that were not already locked.
func (s *Store) Lock(files ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, file := range files {
		name := filepath.Base(file)
		if _, ok := s.names[name]; ok {
			continue
		}
		s.names[name] = struct{}{}
		added = append(added, name)
	}

	if len(added) == 0 {
		return nil, nil
	}
	return added, s.save()
}

// Unlock removes files from the store and persists it. It returns the
// names that were locked before the call.
func (s *Store) Unlock(files ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for _, file := range files {
		name := filepath.Base(file)
		if _, ok := s.names[name]; !ok {
			continue
		}
		delete(s.names, name)
		removed = append(removed, name)
	}

	if len(removed) == 0 {
		return nil, nil
	}
	return removed, s.save()
}

func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedNames()
}

func (s *Store) sortedNames() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.sortedNames(), "", "  ")
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	return nil
}
