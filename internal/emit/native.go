package emit

import (
	"regexp"
	"sort"
	"strings"

	"github.com/3-lines-studio/svger/internal/core"
)

var tagName = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9]*)`)

// prepareNative rewrites SVG element names to their react-native-svg
// components and records which ones the unit must import. Elements
// without a native counterpart are left as written.
func prepareNative(d *templateData) {
	used := map[string]bool{}

	markup := tagName.ReplaceAllStringFunc(d.Markup, func(m string) string {
		parts := tagName.FindStringSubmatch(m)
		primitive, ok := core.NativePrimitives[strings.ToLower(parts[2])]
		if !ok {
			return m
		}
		used[primitive] = true
		return "<" + parts[1] + primitive
	})

	d.Markup = markupBraces.Replace(markup)
	d.Primitives = make([]string, 0, len(used))
	for name := range used {
		d.Primitives = append(d.Primitives, name)
	}
	sort.Strings(d.Primitives)
}
