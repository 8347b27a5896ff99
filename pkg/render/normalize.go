package render

import (
	"regexp"
	"strings"
)

// delimiterReplacer rewrites legacy angle-bracket-percent tags, including
// their HTML-entity-encoded forms, to mustache braces. The entity-encoded
// forms are listed first so they are consumed whole.
var delimiterReplacer = strings.NewReplacer(
	"&#x3C;%", "{{",
	"<%", "{{",
	"%&#x3E;", "}}",
	"%>", "}}",
)

// reverseDelimiterReplacer converts mustache braces back to the legacy
// delimiters used by the external users-permissions store on disk.
var reverseDelimiterReplacer = strings.NewReplacer(
	"{{", "<%",
	"}}", "%>",
)

// unescapedMarker matches the historical unescaped-output marker `{{= EXPR }}`.
var unescapedMarker = regexp.MustCompile(`\{\{=\s*(.*?)\s*\}\}`)

// NormalizeDelimiters rewrites `<%`/`%>` and their HTML-entity-encoded forms
// to `{{`/`}}`. It never fails and returns empty input unchanged.
func NormalizeDelimiters(s string) string {
	if s == "" {
		return ""
	}
	return delimiterReplacer.Replace(s)
}

// NormalizeUnescaped rewrites the unescaped-output marker `{{= EXPR }}` to the
// mustache raw-output form `{{{ EXPR }}}`. It is a distinct pass from
// NormalizeDelimiters and is applied only when compiling for a send, never
// when displaying raw template syntax.
func NormalizeUnescaped(s string) string {
	if s == "" {
		return ""
	}
	return unescapedMarker.ReplaceAllString(s, "{{{ $1 }}}")
}

// DenormalizeDelimiters converts mustache braces back to the legacy `<% %>`
// syntax. Used when writing core email overrides back to the external store,
// which keeps the legacy dialect on disk.
func DenormalizeDelimiters(s string) string {
	if s == "" {
		return ""
	}
	return reverseDelimiterReplacer.Replace(s)
}
