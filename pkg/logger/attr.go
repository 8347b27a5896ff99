package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TemplateID records the template identifier under the key "template_id".
func TemplateID(id string) slog.Attr {
	return slog.String("template_id", id)
}

// VersionID records the version identifier under the key "version_id".
func VersionID(id string) slog.Attr {
	return slog.String("version_id", id)
}

// Component records a component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
