package core

const (
	DefaultViewBox = "0 0 24 24"
	DefaultWidth   = "24"
	DefaultHeight  = "24"
	DefaultFill    = "currentColor"
)

// Attributes are the presentation attributes a component exposes as
// props. Empty fields mean "not present".
type Attributes struct {
	ViewBox string
	Width   string
	Height  string
	Fill    string
	Stroke  string
}

// Defaults are the configured fallbacks applied when the source
// document does not declare an attribute.
type Defaults struct {
	Width  string
	Height string
	Fill   string
}

// Resolve fills empty attributes. Values read from the document win
// over configured defaults, which win over the built-in constants.
// Stroke has no fallback and stays empty when undeclared.
func (a Attributes) Resolve(d Defaults) Attributes {
	a.ViewBox = firstNonEmpty(a.ViewBox, DefaultViewBox)
	a.Width = firstNonEmpty(a.Width, d.Width, DefaultWidth)
	a.Height = firstNonEmpty(a.Height, d.Height, DefaultHeight)
	a.Fill = firstNonEmpty(a.Fill, d.Fill, DefaultFill)
	return a
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// FrameworkOptions are per-target switches. Nil means "use the
// target's default".
type FrameworkOptions struct {
	ScriptSetup *bool `json:"scriptSetup,omitempty"`
	Standalone  *bool `json:"standalone,omitempty"`
	Signals     *bool `json:"signals,omitempty"`
	ForwardRef  *bool `json:"forwardRef,omitempty"`
	Memo        *bool `json:"memo,omitempty"`
}

func (o FrameworkOptions) UseScriptSetup() bool { return boolOr(o.ScriptSetup, true) }
func (o FrameworkOptions) UseStandalone() bool  { return boolOr(o.Standalone, true) }
func (o FrameworkOptions) UseSignals() bool     { return boolOr(o.Signals, false) }
func (o FrameworkOptions) UseForwardRef() bool  { return boolOr(o.ForwardRef, true) }
func (o FrameworkOptions) UseMemo() bool        { return boolOr(o.Memo, false) }

// Merge returns o with every option set in over replacing its own.
func (o FrameworkOptions) Merge(over FrameworkOptions) FrameworkOptions {
	if over.ScriptSetup != nil {
		o.ScriptSetup = over.ScriptSetup
	}
	if over.Standalone != nil {
		o.Standalone = over.Standalone
	}
	if over.Signals != nil {
		o.Signals = over.Signals
	}
	if over.ForwardRef != nil {
		o.ForwardRef = over.ForwardRef
	}
	if over.Memo != nil {
		o.Memo = over.Memo
	}
	return o
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ComponentSpec is everything an emitter needs to render one unit.
type ComponentSpec struct {
	Identifier       string
	RawMarkup        string
	NormalizedMarkup string
	Attrs            Attributes
	Target           Target
	TypeScript       bool
	Options          FrameworkOptions
}

// NewComponentSpec normalizes svgText for target and resolves its
// attributes against defaults.
func NewComponentSpec(identifier, svgText string, target Target, typescript bool, opts FrameworkOptions, defaults Defaults) (ComponentSpec, bool) {
	n := Normalize(svgText, NormalizeOptions{CamelCaseAttributes: target.JSX()})
	return ComponentSpec{
		Identifier:       ComponentIdentifier(identifier, target),
		RawMarkup:        svgText,
		NormalizedMarkup: n.Markup,
		Attrs:            n.Attrs.Resolve(defaults),
		Target:           target,
		TypeScript:       typescript,
		Options:          opts,
	}, n.Malformed
}
