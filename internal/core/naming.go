package core

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Convention controls how generated file names are cased.
type Convention string

const (
	ConventionPascal Convention = "pascal"
	ConventionCamel  Convention = "camel"
	ConventionKebab  Convention = "kebab"
)

// IdentifierPrefix is prepended when a derived name would not start
// with an uppercase ASCII letter.
const IdentifierPrefix = "Svg"

var (
	pascalIdentifier = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	kebabLowerUpper  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	kebabAcronym     = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
)

// reservedNames lists bindings each emitted unit imports or calls.
// A component sharing one of these names would shadow it.
var reservedNames = map[Target][]string{
	TargetReact:       {"React", "SVGProps"},
	TargetReactNative: append([]string{"React", "Svg", "SvgProps"}, nativePrimitiveNames()...),
	TargetPreact:      {"FunctionComponent", "JSX"},
	TargetSolid:       {"Component", "JSX"},
	TargetLit:         {"LitElement", "HTMLElementTagNameMap"},
	TargetVanilla:     {"String", "Object", "SVGSVGElement"},
}

func ParseConvention(name string) (Convention, error) {
	switch c := Convention(strings.ToLower(strings.TrimSpace(name))); c {
	case "":
		return ConventionPascal, nil
	case ConventionPascal, ConventionCamel, ConventionKebab:
		return c, nil
	}
	return "", &UnsupportedConventionError{Convention: name}
}

// DeriveIdentifier turns a file stem into a component name. Stems that
// are already PascalCase pass through untouched; everything else is
// split on non-alphanumeric runs and each word's first letter is
// uppercased. The camel convention lowercases the first letter.
func DeriveIdentifier(stem string, conv Convention) string {
	name := pascalCase(stem)
	if conv == ConventionCamel {
		return lowerFirst(name)
	}
	return name
}

// ComponentIdentifier derives the symbol used inside an emitted unit.
// It is always PascalCase and never collides with the target's imports.
func ComponentIdentifier(name string, target Target) string {
	id := pascalCase(name)
	for _, reserved := range reservedNames[target] {
		if id == reserved {
			return id + "Icon"
		}
	}
	return id
}

func pascalCase(stem string) string {
	if pascalIdentifier.MatchString(stem) {
		return stem
	}

	var b strings.Builder
	for _, word := range splitWords(stem) {
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}

	name := b.String()
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		name = IdentifierPrefix + name
	}
	return name
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
}

// KebabCase converts a PascalCase or camelCase identifier to
// lowercase words joined by hyphens. Acronym runs stay together:
// XMLHttpIcon becomes xml-http-icon.
func KebabCase(s string) string {
	s = kebabLowerUpper.ReplaceAllString(s, "${1}-${2}")
	s = kebabAcronym.ReplaceAllString(s, "${1}-${2}")
	return strings.ToLower(s)
}

// FileName returns the output file name for a component.
func FileName(identifier, ext string, conv Convention) string {
	base := identifier
	switch conv {
	case ConventionCamel:
		base = lowerFirst(identifier)
	case ConventionKebab:
		base = KebabCase(identifier)
	}
	return base + "." + ext
}

// StemFromPath returns the file name without directory or extension.
func StemFromPath(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func IsSVGFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".svg")
}
