package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/3-lines-studio/svger/internal/config"
	"github.com/3-lines-studio/svger/internal/core"
)

func TestGenerateReact(t *testing.T) {
	s := NewGenerateService(GenerateConfig{}, discardLogger())

	unit, err := s.Generate(GenerateInput{
		Identifier: "Home",
		SVG:        testSVG,
		Options:    reactOptions(t),
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if unit.Identifier != "Home" {
		t.Errorf("expected identifier Home, got %q", unit.Identifier)
	}
	if unit.FileName != "Home.tsx" {
		t.Errorf("expected file name Home.tsx, got %q", unit.FileName)
	}
	if unit.Extension != "tsx" {
		t.Errorf("expected extension tsx, got %q", unit.Extension)
	}
	if unit.Malformed {
		t.Error("expected well-formed input")
	}
	for _, want := range []string{"const Home = ", "fillRule=\"evenodd\"", "export default Home;"} {
		if !strings.Contains(unit.Code, want) {
			t.Errorf("expected code to contain %q, got:\n%s", want, unit.Code)
		}
	}
}

func TestGenerateRenamesReservedIdentifier(t *testing.T) {
	s := NewGenerateService(GenerateConfig{}, discardLogger())

	unit, err := s.Generate(GenerateInput{Identifier: "React", SVG: testSVG, Options: reactOptions(t)})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if unit.Identifier != "ReactIcon" {
		t.Errorf("expected ReactIcon, got %q", unit.Identifier)
	}
	if unit.FileName != "ReactIcon.tsx" {
		t.Errorf("expected ReactIcon.tsx, got %q", unit.FileName)
	}
}

func TestGenerateNamingConvention(t *testing.T) {
	opts := reactOptions(t)
	opts.Target = core.TargetVue
	opts.Naming = core.ConventionKebab
	s := NewGenerateService(GenerateConfig{}, discardLogger())

	unit, err := s.Generate(GenerateInput{Identifier: "ArrowUpRight", SVG: testSVG, Options: opts})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if unit.FileName != "arrow-up-right.vue" {
		t.Errorf("expected arrow-up-right.vue, got %q", unit.FileName)
	}
	if !strings.Contains(unit.Code, "fill-rule=\"evenodd\"") {
		t.Errorf("expected vue output to keep kebab-case attributes, got:\n%s", unit.Code)
	}
}

func TestGenerateMalformed(t *testing.T) {
	s := NewGenerateService(GenerateConfig{}, discardLogger())

	unit, err := s.Generate(GenerateInput{Identifier: "Loose", SVG: `<path d="M0 0"/>`, Options: reactOptions(t)})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !unit.Malformed {
		t.Error("expected input without an svg wrapper to be flagged")
	}
	if !strings.Contains(unit.Code, `<path d="M0 0"/>`) {
		t.Errorf("expected content to be emitted as-is, got:\n%s", unit.Code)
	}
}

func TestGenerateUnsupportedTarget(t *testing.T) {
	opts := reactOptions(t)
	opts.Target = "ember"
	s := NewGenerateService(GenerateConfig{}, discardLogger())

	_, err := s.Generate(GenerateInput{Identifier: "Home", SVG: testSVG, Options: opts})

	var unsupported *core.UnsupportedFrameworkError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFrameworkError, got %v", err)
	}
	if unsupported.Framework != "ember" {
		t.Errorf("expected framework ember, got %q", unsupported.Framework)
	}
}

func TestGenerateCachesUnits(t *testing.T) {
	s := NewGenerateService(GenerateConfig{CacheTTL: time.Minute}, discardLogger())
	input := GenerateInput{Identifier: "Home", SVG: testSVG, Options: reactOptions(t)}

	first, err := s.Generate(input)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	second, err := s.Generate(input)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if first != second {
		t.Error("expected cached unit to match the first render")
	}
	if s.units.Len() != 1 {
		t.Errorf("expected 1 cached unit, got %d", s.units.Len())
	}

	input.Options.TypeScript = false
	if _, err := s.Generate(input); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if s.units.Len() != 2 {
		t.Errorf("expected options to be part of the cache key, got %d entries", s.units.Len())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Framework = "Svelte"
	cfg.TypeScript = false
	cfg.Naming = "camel"
	cfg.DefaultFill = "red"

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("OptionsFromConfig() error: %v", err)
	}
	if opts.Target != core.TargetSvelte {
		t.Errorf("expected svelte, got %q", opts.Target)
	}
	if opts.Naming != core.ConventionCamel {
		t.Errorf("expected camel, got %q", opts.Naming)
	}
	if opts.TypeScript {
		t.Error("expected typescript off")
	}
	if opts.Defaults.Fill != "red" {
		t.Errorf("expected default fill red, got %q", opts.Defaults.Fill)
	}

	cfg.Framework = "ember"
	if _, err := OptionsFromConfig(cfg); err == nil {
		t.Error("expected error for unknown framework")
	}
}

func TestCacheTTL(t *testing.T) {
	cfg := config.Defaults()
	if got := CacheTTL(cfg); got != 300*time.Second {
		t.Errorf("expected 5m, got %v", got)
	}

	cfg.Performance.EnableCache = false
	if got := CacheTTL(cfg); got != 0 {
		t.Errorf("expected disabled cache, got %v", got)
	}
}
