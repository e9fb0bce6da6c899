package core

import "strings"

// Target names the UI framework a component is emitted for.
type Target string

const (
	TargetReact       Target = "react"
	TargetReactNative Target = "react-native"
	TargetVue         Target = "vue"
	TargetSvelte      Target = "svelte"
	TargetAngular     Target = "angular"
	TargetSolid       Target = "solid"
	TargetPreact      Target = "preact"
	TargetLit         Target = "lit"
	TargetVanilla     Target = "vanilla"
)

var Targets = []Target{
	TargetReact,
	TargetReactNative,
	TargetVue,
	TargetSvelte,
	TargetAngular,
	TargetSolid,
	TargetPreact,
	TargetLit,
	TargetVanilla,
}

func ParseTarget(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	if !t.Valid() {
		return "", &UnsupportedFrameworkError{Framework: name}
	}
	return t, nil
}

func (t Target) Valid() bool {
	for _, known := range Targets {
		if t == known {
			return true
		}
	}
	return false
}

// JSX reports whether the target's markup is parsed as JSX, where
// hyphenated SVG attributes must be written in camelCase.
func (t Target) JSX() bool {
	switch t {
	case TargetReact, TargetReactNative, TargetPreact, TargetSolid:
		return true
	}
	return false
}

// ExportName returns the binding a unit for this target exports under.
func (t Target) ExportName(identifier string) string {
	if t == TargetAngular {
		return identifier + "Component"
	}
	return identifier
}

// DefaultExport reports whether the target's units export their
// component as the module's default binding.
func (t Target) DefaultExport() bool {
	switch t {
	case TargetAngular, TargetLit, TargetVanilla:
		return false
	}
	return true
}

func FileExtension(t Target, typescript bool) (string, error) {
	switch t {
	case TargetVue:
		return "vue", nil
	case TargetSvelte:
		return "svelte", nil
	case TargetReact, TargetPreact, TargetSolid:
		if typescript {
			return "tsx", nil
		}
		return "jsx", nil
	case TargetAngular:
		if typescript {
			return "component.ts", nil
		}
		return "component.js", nil
	case TargetReactNative, TargetLit, TargetVanilla:
		if typescript {
			return "ts", nil
		}
		return "js", nil
	}
	return "", &UnsupportedFrameworkError{Framework: string(t)}
}
