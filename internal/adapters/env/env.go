package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/3-lines-studio/svger/internal/config"
)

const (
	FrameworkVar   = "SVGER_FRAMEWORK"
	TypeScriptVar  = "SVGER_TYPESCRIPT"
	NamingVar      = "SVGER_NAMING"
	LogLevelVar    = "SVGER_LOG_LEVEL"
	ConcurrencyVar = "SVGER_CONCURRENCY"
)

// LoadDotenv reads KEY=value pairs from the given files into the
// process environment. Missing files are skipped and variables already
// set are kept.
func LoadDotenv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Overrides reads SVGER_* variables. Malformed booleans and integers
// are reported rather than ignored.
func Overrides() (config.Overrides, error) {
	var o config.Overrides

	if v, ok := lookup(FrameworkVar); ok {
		o.Framework = &v
	}
	if v, ok := lookup(NamingVar); ok {
		o.Naming = &v
	}
	if v, ok := lookup(LogLevelVar); ok {
		v = strings.ToLower(v)
		o.LogLevel = &v
	}
	if v, ok := lookup(TypeScriptVar); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return o, fmt.Errorf("%s: %w", TypeScriptVar, err)
		}
		o.TypeScript = &b
	}
	if v, ok := lookup(ConcurrencyVar); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, fmt.Errorf("%s: %w", ConcurrencyVar, err)
		}
		o.Concurrency = &n
	}

	return o, nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}
