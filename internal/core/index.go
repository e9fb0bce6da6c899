package core

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

type IndexEntry struct {
	Identifier string
	FileName   string
}

const indexHeader = "// Generated by svger. Do not edit by hand.\n"

// RenderIndex renders a barrel module with one re-export per entry,
// ordered naturally by identifier.
func RenderIndex(entries []IndexEntry, target Target) string {
	sorted := make([]IndexEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return natural.Less(sorted[i].Identifier, sorted[j].Identifier)
	})

	var b strings.Builder
	b.WriteString(indexHeader)
	b.WriteString("\n")

	if len(sorted) == 0 {
		b.WriteString("export {};\n")
		return b.String()
	}

	for _, e := range sorted {
		module := ModuleSpecifier(e.FileName)
		if target.DefaultExport() {
			b.WriteString("export { default as " + e.Identifier + " } from '" + module + "';\n")
		} else {
			b.WriteString("export { " + target.ExportName(e.Identifier) + " } from '" + module + "';\n")
		}
	}

	if target.DefaultExport() {
		writeDefaultAggregate(&b, sorted)
	}

	return b.String()
}

// writeDefaultAggregate binds every component locally and exports them
// as one object, so `import Icons from './icons'` works alongside the
// named re-exports.
func writeDefaultAggregate(b *strings.Builder, entries []IndexEntry) {
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString("import " + e.Identifier + " from '" + ModuleSpecifier(e.FileName) + "';\n")
	}
	b.WriteString("\nexport default {\n")
	for _, e := range entries {
		b.WriteString("  " + e.Identifier + ",\n")
	}
	b.WriteString("};\n")
}
