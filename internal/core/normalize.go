package core

import (
	"regexp"
	"strings"
)

type NormalizeOptions struct {
	// CamelCaseAttributes rewrites hyphenated presentation attributes
	// (stroke-width, fill-rule, ...) to their JSX spelling and drops
	// editor attributes such as inkscape:label whose namespace
	// declaration is gone.
	CamelCaseAttributes bool
}

// Normalized is the cleaned inner markup of an SVG document together
// with the presentation attributes read from its root element.
type Normalized struct {
	Markup string
	Attrs  Attributes
	// Malformed is set when no enclosing <svg>...</svg> wrapper was
	// found. Markup then holds the cleaned input unchanged in shape.
	Malformed bool
}

var (
	xmlDeclPattern   = regexp.MustCompile(`<\?xml.*?\?>`)
	doctypePattern   = regexp.MustCompile(`(?i)<!DOCTYPE.*?>`)
	commentPattern   = regexp.MustCompile(`(?s)<!--.*?-->`)
	lineBreakPattern = regexp.MustCompile(`\r?\n|\r`)
	whitespaceRun    = regexp.MustCompile(`\s{2,}`)
	stylePattern     = regexp.MustCompile(`\s+style=(?:"[^"]*"|'[^']*')`)
	xmlnsPattern     = regexp.MustCompile(`\s+xmlns(?::[A-Za-z][\w.-]*)?=(?:"[^"]*"|'[^']*')`)
	prefixedAttr     = regexp.MustCompile(`\s+[A-Za-z][\w.-]*:[A-Za-z][\w.-]*=(?:"[^"]*"|'[^']*')`)
	svgOpenTag       = regexp.MustCompile(`(?i)<svg\b[^>]*>`)
	svgWrapper       = regexp.MustCompile(`(?is)^<svg\b[^>]*>(.*)</svg>$`)
)

var camelAttributes = strings.NewReplacer(
	"fill-rule=", "fillRule=",
	"clip-rule=", "clipRule=",
	"stroke-width=", "strokeWidth=",
	"stroke-linecap=", "strokeLinecap=",
	"stroke-linejoin=", "strokeLinejoin=",
	"stroke-miterlimit=", "strokeMiterlimit=",
	"stroke-dasharray=", "strokeDasharray=",
	"stroke-dashoffset=", "strokeDashoffset=",
	"font-family=", "fontFamily=",
	"font-size=", "fontSize=",
	"font-weight=", "fontWeight=",
	"text-anchor=", "textAnchor=",
	"stroke-opacity=", "strokeOpacity=",
	"fill-opacity=", "fillOpacity=",
	"stop-color=", "stopColor=",
	"stop-opacity=", "stopOpacity=",
	"clip-path=", "clipPath=",
	"xlink:href=", "xlinkHref=",
	"xml:space=", "xmlSpace=",
)

// Normalize strips prolog noise, inline styles and namespace
// declarations from svgText and returns the content between the
// outermost <svg> tags. It never fails: input without a wrapper comes
// back cleaned and flagged Malformed.
func Normalize(svgText string, opts NormalizeOptions) Normalized {
	s := xmlDeclPattern.ReplaceAllString(svgText, "")
	s = doctypePattern.ReplaceAllString(s, "")
	s = commentPattern.ReplaceAllString(s, "")
	s = lineBreakPattern.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")

	attrs := extractAttributes(s)

	s = stylePattern.ReplaceAllString(s, "")
	s = xmlnsPattern.ReplaceAllString(s, "")
	if opts.CamelCaseAttributes {
		s = camelAttributes.Replace(s)
		s = prefixedAttr.ReplaceAllString(s, "")
	}
	s = strings.TrimSpace(s)

	m := svgWrapper.FindStringSubmatch(s)
	if m == nil {
		return Normalized{Markup: s, Attrs: attrs, Malformed: true}
	}

	return Normalized{Markup: strings.TrimSpace(m[1]), Attrs: attrs}
}

// CleanContent is Normalize with JSX attribute casing, returning only
// the markup.
func CleanContent(svgText string) string {
	return Normalize(svgText, NormalizeOptions{CamelCaseAttributes: true}).Markup
}

func extractAttributes(s string) Attributes {
	tag := svgOpenTag.FindString(s)
	if tag == "" {
		return Attributes{}
	}
	return Attributes{
		ViewBox: attributeValue(tag, "viewBox"),
		Width:   attributeValue(tag, "width"),
		Height:  attributeValue(tag, "height"),
		Fill:    attributeValue(tag, "fill"),
		Stroke:  attributeValue(tag, "stroke"),
	}
}

var attributePatterns = map[string]*regexp.Regexp{}

func init() {
	for _, name := range []string{"viewBox", "width", "height", "fill", "stroke"} {
		attributePatterns[name] = regexp.MustCompile(`\s` + name + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	}
}

func attributeValue(tag, name string) string {
	m := attributePatterns[name].FindStringSubmatch(tag)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}
