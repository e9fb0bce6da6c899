package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/3-lines-studio/svger/internal/adapters/fs"
	"github.com/3-lines-studio/svger/internal/core"
)

// FileNames are the config files looked up in a project directory, in
// order of preference.
var FileNames = []string{".svgconfig.json", ".svgconfig.yaml", ".svgconfig.yml"}

var ErrConfigExists = errors.New("config file already exists")

type Config struct {
	Source           string                `json:"source"`
	Output           string                `json:"output"`
	Framework        string                `json:"framework"`
	TypeScript       bool                  `json:"typescript"`
	Naming           string                `json:"naming"`
	DefaultWidth     int                   `json:"defaultWidth"`
	DefaultHeight    int                   `json:"defaultHeight"`
	DefaultFill      string                `json:"defaultFill"`
	Exclude          []string              `json:"exclude,omitempty"`
	FrameworkOptions core.FrameworkOptions `json:"frameworkOptions"`
	ErrorHandling    ErrorHandling         `json:"errorHandling"`
	Performance      Performance           `json:"performance"`
}

type ErrorHandling struct {
	LogLevel   string `json:"logLevel"`
	MaxRetries int    `json:"maxRetries"`
}

type Performance struct {
	// Parallel false converts files one at a time.
	Parallel bool `json:"parallel"`
	// Concurrency caps parallel file conversions. Zero picks a default
	// from the CPU count.
	Concurrency     int  `json:"concurrency"`
	EnableCache     bool `json:"enableCache"`
	CacheTTLSeconds int  `json:"cacheTTLSeconds"`
}

func Defaults() Config {
	return Config{
		Source:        "./src/assets/svg",
		Output:        "./src/components/icons",
		Framework:     string(core.TargetReact),
		TypeScript:    true,
		Naming:        string(core.ConventionPascal),
		DefaultWidth:  24,
		DefaultHeight: 24,
		DefaultFill:   core.DefaultFill,
		Exclude:       []string{},
		FrameworkOptions: core.FrameworkOptions{
			ForwardRef:  boolPtr(true),
			Memo:        boolPtr(false),
			ScriptSetup: boolPtr(true),
			Standalone:  boolPtr(true),
		},
		ErrorHandling: ErrorHandling{
			LogLevel:   "info",
			MaxRetries: 3,
		},
		Performance: Performance{
			Parallel:        true,
			EnableCache:     true,
			CacheTTLSeconds: 300,
		},
	}
}

// Discover returns the first config file present in dir, or the path
// of the default JSON file when none exists.
func Discover(fsys fs.FileSystem, dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if fsys.FileExists(path) {
			return path
		}
	}
	return filepath.Join(dir, FileNames[0])
}

// Load reads the config at path over the defaults. A missing file is
// not an error.
func Load(fsys fs.FileSystem, path string) (Config, error) {
	cfg := Defaults()
	if !fsys.FileExists(path) {
		return cfg, nil
	}

	doc, err := readDocument(fsys, path)
	if err != nil {
		return cfg, err
	}

	if err := validateDocument(doc); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := json.Unmarshal(doc, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(fsys fs.FileSystem, path string, cfg Config) error {
	if fsys.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	doc, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeDocument(fsys, path, doc)
}

func (c Config) Validate() error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return validateDocument(doc)
}

func (c Config) Target() (core.Target, error) {
	return core.ParseTarget(c.Framework)
}

func (c Config) Convention() (core.Convention, error) {
	return core.ParseConvention(c.Naming)
}

func (c Config) Defaults() core.Defaults {
	d := core.Defaults{Fill: c.DefaultFill}
	if c.DefaultWidth > 0 {
		d.Width = strconv.Itoa(c.DefaultWidth)
	}
	if c.DefaultHeight > 0 {
		d.Height = strconv.Itoa(c.DefaultHeight)
	}
	return d
}

// Workers returns the worker pool size for a batch.
func (c Config) Workers() int {
	if !c.Performance.Parallel {
		return 1
	}
	return c.Performance.Concurrency
}

func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.ErrorHandling.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func boolPtr(v bool) *bool {
	return &v
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// readDocument returns the file at path as JSON regardless of its
// on-disk format.
func readDocument(fsys fs.FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("{}"), nil
	}

	if !isYAML(path) {
		return data, nil
	}

	doc, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return doc, nil
}

func writeDocument(fsys fs.FileSystem, path string, doc []byte) error {
	var out []byte
	if isYAML(path) {
		y, err := yaml.JSONToYAML(doc)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		out = y
	} else {
		var buf bytes.Buffer
		if err := json.Indent(&buf, doc, "", "  "); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		buf.WriteByte('\n')
		out = buf.Bytes()
	}

	if err := fsys.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
