package emit

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/3-lines-studio/svger/internal/core"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("emit").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// Unit is the source text of one generated component.
type Unit struct {
	Code      string
	Extension string
}

type templateData struct {
	Name        string
	Tag         string
	Markup      string
	ViewBox     string
	Attrs       core.Attributes
	TypeScript  bool
	ForwardRef  bool
	Memo        bool
	ScriptSetup bool
	Standalone  bool
	Signals     bool
	Primitives  []string
}

// branch adjusts template data for one target before rendering.
type branch func(*templateData)

var branches = map[core.Target]branch{
	core.TargetReact:       escapeMarkupBraces,
	core.TargetReactNative: prepareNative,
	core.TargetVue:         escapeMarkupBraces,
	core.TargetSvelte:      escapeMarkupBraces,
	core.TargetAngular:     prepareAngular,
	core.TargetSolid:       escapeMarkupBraces,
	core.TargetPreact:      escapeMarkupBraces,
	core.TargetLit:         prepareLit,
	core.TargetVanilla:     prepareVanilla,
}

// Emit renders spec as a component for its target. The only failure is
// an unknown target.
func Emit(spec core.ComponentSpec) (Unit, error) {
	prepare, ok := branches[spec.Target]
	if !ok {
		return Unit{}, &core.UnsupportedFrameworkError{Framework: string(spec.Target)}
	}

	ext, err := core.FileExtension(spec.Target, spec.TypeScript)
	if err != nil {
		return Unit{}, err
	}

	data := templateData{
		Name:        spec.Identifier,
		Markup:      spec.NormalizedMarkup,
		ViewBox:     attrValue(spec.Attrs.ViewBox),
		Attrs:       spec.Attrs,
		TypeScript:  spec.TypeScript,
		ForwardRef:  spec.Options.UseForwardRef(),
		Memo:        spec.Options.UseMemo(),
		ScriptSetup: spec.Options.UseScriptSetup(),
		Standalone:  spec.Options.UseStandalone(),
		Signals:     spec.Options.UseSignals(),
	}
	prepare(&data)

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(spec.Target)+".tmpl", data); err != nil {
		return Unit{}, fmt.Errorf("failed to render %s component %s: %w", spec.Target, spec.Identifier, err)
	}

	return Unit{Code: buf.String(), Extension: ext}, nil
}

func escapeMarkupBraces(d *templateData) {
	d.Markup = markupBraces.Replace(d.Markup)
	d.ViewBox = markupBraces.Replace(d.ViewBox)
}

func prepareAngular(d *templateData) {
	d.Tag = core.KebabCase(d.Name)
	escapeMarkupBraces(d)
	d.Markup = templateLiteral(d.Markup)
	d.ViewBox = templateLiteral(d.ViewBox)
}

func prepareLit(d *templateData) {
	d.Tag = CustomElementTag(d.Name)
	d.Markup = templateLiteral(d.Markup)
	d.ViewBox = templateLiteral(d.ViewBox)
}

func prepareVanilla(d *templateData) {
	d.Markup = templateLiteral(d.Markup)
}

// CustomElementTag returns the registered element name for a
// component. Custom element names must contain a hyphen.
func CustomElementTag(identifier string) string {
	tag := core.KebabCase(identifier)
	if !strings.Contains(tag, "-") {
		tag = "svg-" + tag
	}
	return tag
}
