package render

import (
	"errors"
	"fmt"
	"html"

	"github.com/cbroglie/mustache"
	"github.com/jaytaylor/html2text"
	"github.com/mitchellh/go-wordwrap"
)

// textWrapColumns is the wrap width used when deriving a plain-text body from
// HTML, matching the historical behavior of stored templates.
const textWrapColumns = 130

// DefaultSubject is used when neither an override nor the stored template
// provides a non-empty subject.
const DefaultSubject = "No Subject"

// ErrRender indicates that mustache rendering of a template part failed.
var ErrRender = errors.New("failed to render template")

// Output holds the compiled subject, HTML and plain-text bodies.
type Output struct {
	Subject string
	HTML    string
	Text    string
}

// Compile runs the full normalize -> derive -> decode -> render pipeline
// against the caller-supplied data. An empty text body is derived from the
// HTML body before placeholder substitution; an empty subject falls back to
// DefaultSubject.
func Compile(subject, bodyHTML, bodyText string, data any) (Output, error) {
	subject = NormalizeUnescaped(NormalizeDelimiters(subject))
	bodyHTML = NormalizeUnescaped(NormalizeDelimiters(bodyHTML))
	bodyText = NormalizeUnescaped(NormalizeDelimiters(bodyText))

	if bodyText == "" && bodyHTML != "" {
		derived, err := PlainText(bodyHTML)
		if err != nil {
			return Output{}, fmt.Errorf("derive text body: %w", err)
		}
		bodyText = derived
	}

	// Templates are stored HTML-entity-encoded; decode before rendering so
	// entity sequences inside placeholder syntax do not break parsing.
	subject = html.UnescapeString(subject)
	bodyHTML = html.UnescapeString(bodyHTML)
	bodyText = html.UnescapeString(bodyText)

	if subject == "" {
		subject = DefaultSubject
	}

	var (
		out Output
		err error
	)
	if out.Subject, err = renderPart("subject", subject, data); err != nil {
		return Output{}, err
	}
	if out.HTML, err = renderPart("html", bodyHTML, data); err != nil {
		return Output{}, err
	}
	if out.Text, err = renderPart("text", bodyText, data); err != nil {
		return Output{}, err
	}
	return out, nil
}

// PlainText converts an HTML body to plain text, word-wrapped at the
// historical 130-column width.
func PlainText(htmlBody string) (string, error) {
	if htmlBody == "" {
		return "", nil
	}
	text, err := html2text.FromString(htmlBody)
	if err != nil {
		return "", err
	}
	return wordwrap.WrapString(text, textWrapColumns), nil
}

func renderPart(part, tmpl string, data any) (string, error) {
	if tmpl == "" {
		return "", nil
	}
	if data == nil {
		data = map[string]any{}
	}
	rendered, err := mustache.Render(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, part, err)
	}
	return rendered, nil
}
