// Package render compiles stored email templates into final subject, HTML and
// plain-text bodies.
//
// Stored templates may still carry the legacy angle-bracket-percent delimiter
// syntax (`<% %>`, possibly HTML-entity-encoded) next to the native mustache
// syntax, and are persisted HTML-entity-encoded. The compile pipeline is:
//
//  1. Rewrite legacy delimiters to mustache braces (NormalizeDelimiters).
//  2. Rewrite the legacy unescaped-output marker `{{= X }}` to `{{{ X }}}`
//     (NormalizeUnescaped, send path only).
//  3. Derive the plain-text body from the HTML body when the text body is
//     empty. This runs on the template source, before placeholder
//     substitution, so placeholders survive into the derived text.
//  4. Decode HTML entities so entity sequences inside placeholder syntax do
//     not break mustache parsing.
//  5. Render subject, HTML and text against caller-supplied data with
//     mustache interpolation, dotted paths and sections.
//
// Both normalization passes are pure, total functions: they never fail and
// treat empty input as empty output. NormalizeDelimiters is idempotent on
// already-normalized text.
//
// Usage:
//
//	out, err := render.Compile(tpl.Subject, tpl.BodyHTML, tpl.BodyText, data)
//	if err != nil {
//	    return err
//	}
//	// out.Subject, out.HTML, out.Text are ready for the mail transport.
//
// RenderHeaders additionally renders placeholders inside transport header
// values, with a `urlEncode` section lambda that percent-encodes its rendered
// contents.
package render
