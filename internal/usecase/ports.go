package usecase

import (
	"github.com/3-lines-studio/svger/internal/adapters/fs"
)

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem

// LockStore reports source files that must not be regenerated.
type LockStore interface {
	IsLocked(file string) bool
}
