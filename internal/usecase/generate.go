package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/3-lines-studio/svger/internal/cache"
	"github.com/3-lines-studio/svger/internal/config"
	"github.com/3-lines-studio/svger/internal/core"
	"github.com/3-lines-studio/svger/internal/emit"
)

type GenerateOptions struct {
	Target           core.Target
	TypeScript       bool
	Naming           core.Convention
	FrameworkOptions core.FrameworkOptions
	Defaults         core.Defaults
}

// OptionsFromConfig resolves the generation settings of a loaded
// config, failing on an unknown framework or naming convention.
func OptionsFromConfig(cfg config.Config) (GenerateOptions, error) {
	target, err := cfg.Target()
	if err != nil {
		return GenerateOptions{}, err
	}
	naming, err := cfg.Convention()
	if err != nil {
		return GenerateOptions{}, err
	}
	return GenerateOptions{
		Target:           target,
		TypeScript:       cfg.TypeScript,
		Naming:           naming,
		FrameworkOptions: cfg.FrameworkOptions,
		Defaults:         cfg.Defaults(),
	}, nil
}

func (o GenerateOptions) key() string {
	f := o.FrameworkOptions
	return fmt.Sprintf("%s|%t|%s|%t%t%t%t%t|%s|%s|%s",
		o.Target, o.TypeScript, o.Naming,
		f.UseScriptSetup(), f.UseStandalone(), f.UseSignals(), f.UseForwardRef(), f.UseMemo(),
		o.Defaults.Width, o.Defaults.Height, o.Defaults.Fill)
}

type GenerateInput struct {
	// Identifier is the component name. It is made a valid, collision
	// free symbol for the target before use.
	Identifier string
	SVG        string
	Options    GenerateOptions
}

type GeneratedUnit struct {
	Identifier string
	FileName   string
	Code       string
	Extension  string
	Malformed  bool
}

type generated struct {
	unit       emit.Unit
	identifier string
	malformed  bool
}

type GenerateConfig struct {
	Source FileSystem
	Output FileSystem
	Locks  LockStore
	// MaxRetries is how many times a failed write is retried.
	MaxRetries int
	// CacheTTL is how long rendered units are memoized. Zero disables
	// the cache.
	CacheTTL time.Duration
}

// GenerateService renders components from SVG text and converts SVG
// files into component files.
type GenerateService struct {
	src        FileSystem
	dst        FileSystem
	locks      LockStore
	maxRetries int
	units      *cache.Cache[generated]
	logger     *slog.Logger
}

func NewGenerateService(cfg GenerateConfig, logger *slog.Logger) *GenerateService {
	s := &GenerateService{
		src:        cfg.Source,
		dst:        cfg.Output,
		locks:      cfg.Locks,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
	if cfg.CacheTTL > 0 {
		s.units = cache.New[generated](cfg.CacheTTL)
	}
	return s
}

func (s *GenerateService) Generate(input GenerateInput) (GeneratedUnit, error) {
	opts := input.Options
	if !opts.Target.Valid() {
		return GeneratedUnit{}, &core.UnsupportedFrameworkError{Framework: string(opts.Target)}
	}

	key := core.HashContent(input.Identifier, input.SVG, opts.key())
	g, hit := s.lookup(key)
	if !hit {
		spec, malformed := core.NewComponentSpec(input.Identifier, input.SVG, opts.Target, opts.TypeScript, opts.FrameworkOptions, opts.Defaults)
		unit, err := emit.Emit(spec)
		if err != nil {
			return GeneratedUnit{}, err
		}
		g = generated{unit: unit, identifier: spec.Identifier, malformed: malformed}
		s.store(key, g)
	}

	if g.malformed {
		s.logger.Warn("svg has no <svg> wrapper, emitting content as-is", "component", g.identifier)
	}

	return GeneratedUnit{
		Identifier: g.identifier,
		FileName:   core.FileName(g.identifier, g.unit.Extension, opts.Naming),
		Code:       g.unit.Code,
		Extension:  g.unit.Extension,
		Malformed:  g.malformed,
	}, nil
}

func (s *GenerateService) lookup(key string) (generated, bool) {
	if s.units == nil {
		return generated{}, false
	}
	g, ok := s.units.Get(key)
	if ok {
		s.logger.Debug("render cache hit", "key", key)
	}
	return g, ok
}

func (s *GenerateService) store(key string, g generated) {
	if s.units != nil {
		s.units.Set(key, g)
	}
}

// CacheTTL converts a configured number of seconds to a duration,
// returning zero when caching is disabled.
func CacheTTL(cfg config.Config) time.Duration {
	if !cfg.Performance.EnableCache || cfg.Performance.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.Performance.CacheTTLSeconds) * time.Second
}
