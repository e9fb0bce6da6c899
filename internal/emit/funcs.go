package emit

import (
	"regexp"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"js":   jsLiteral,
	"str":  jsString,
	"join": strings.Join,
}

var numericLiteral = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)$`)

// jsLiteral renders a default value as a number when it reads as one
// and as a quoted string otherwise.
func jsLiteral(v string) string {
	if numericLiteral.MatchString(v) {
		return v
	}
	return jsString(v)
}

var jsStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

func jsString(v string) string {
	return "'" + jsStringEscaper.Replace(v) + "'"
}

var attrEscaper = strings.NewReplacer(`"`, "&quot;")

func attrValue(v string) string {
	return attrEscaper.Replace(v)
}

var templateLiteralEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"${", `\${`,
)

// templateLiteral escapes markup for embedding in a backtick string.
func templateLiteral(markup string) string {
	return templateLiteralEscaper.Replace(markup)
}

// markupBraces keeps literal braces in markup from being read as
// expressions by JSX, Svelte, Vue and Angular templates.
var markupBraces = strings.NewReplacer("{", "&#123;", "}", "&#125;")
