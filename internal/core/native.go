package core

import "sort"

// NativePrimitives maps lowercased SVG element names to the component
// react-native-svg exports for them.
var NativePrimitives = map[string]string{
	"circle":         "Circle",
	"clippath":       "ClipPath",
	"defs":           "Defs",
	"ellipse":        "Ellipse",
	"foreignobject":  "ForeignObject",
	"g":              "G",
	"image":          "Image",
	"line":           "Line",
	"lineargradient": "LinearGradient",
	"marker":         "Marker",
	"mask":           "Mask",
	"path":           "Path",
	"pattern":        "Pattern",
	"polygon":        "Polygon",
	"polyline":       "Polyline",
	"radialgradient": "RadialGradient",
	"rect":           "Rect",
	"stop":           "Stop",
	"symbol":         "Symbol",
	"text":           "Text",
	"textpath":       "TextPath",
	"tspan":          "TSpan",
	"use":            "Use",
}

func nativePrimitiveNames() []string {
	names := make([]string, 0, len(NativePrimitives))
	for _, name := range NativePrimitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
