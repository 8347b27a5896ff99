package render

import (
	"net/url"
	"strings"

	"github.com/cbroglie/mustache"
)

// headerHelpers is pushed onto the mustache context stack for header
// rendering. urlEncode is a section lambda that percent-encodes its rendered
// contents, so headers like list-unsubscribe URLs can embed template data
// safely.
var headerHelpers = map[string]any{
	"urlEncode": mustache.LambdaFunc(func(text string, render mustache.RenderFunc) (string, error) {
		rendered, err := render(text)
		if err != nil {
			return "", err
		}
		return url.QueryEscape(rendered), nil
	}),
}

// RenderHeaders renders template placeholders inside transport header values
// against data. String values containing placeholders are rendered
// individually, string slices are rendered per element, and any other value
// passes through unchanged.
func RenderHeaders(headers map[string]any, data any) (map[string]any, error) {
	if len(headers) == 0 {
		return headers, nil
	}
	if data == nil {
		data = map[string]any{}
	}

	rendered := make(map[string]any, len(headers))
	for name, value := range headers {
		switch v := value.(type) {
		case string:
			s, err := renderHeaderValue(v, data)
			if err != nil {
				return nil, err
			}
			rendered[name] = s
		case []string:
			out := make([]string, len(v))
			for i, el := range v {
				s, err := renderHeaderValue(el, data)
				if err != nil {
					return nil, err
				}
				out[i] = s
			}
			rendered[name] = out
		case []any:
			out := make([]any, len(v))
			for i, el := range v {
				if s, ok := el.(string); ok {
					r, err := renderHeaderValue(s, data)
					if err != nil {
						return nil, err
					}
					out[i] = r
					continue
				}
				out[i] = el
			}
			rendered[name] = out
		default:
			rendered[name] = value
		}
	}
	return rendered, nil
}

func renderHeaderValue(value string, data any) (string, error) {
	value = NormalizeUnescaped(NormalizeDelimiters(value))
	if !strings.Contains(value, "{{") {
		return value, nil
	}
	rendered, err := mustache.Render(value, data, headerHelpers)
	if err != nil {
		return "", err
	}
	return rendered, nil
}
