package designer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// editorConfig is the static configuration served to the visual editor. The
// merge tags mirror the sample data shapes used for previews and test sends.
var editorConfig = map[string]any{
	"editor": map[string]any{
		"tools": map[string]any{
			"heading": map[string]any{"properties": map[string]any{"text": map[string]any{"value": "Heading"}}},
		},
		"options": map[string]any{
			"locale": "en",
		},
	},
	"mergeTags": []map[string]any{
		{
			"name": "User",
			"mergeTags": []map[string]any{
				{"name": "Username", "value": "{{USER.username}}", "sample": "john_doe"},
				{"name": "Email", "value": "{{USER.email}}", "sample": "johndoe@example.com"},
			},
		},
		{
			"name": "Links",
			"mergeTags": []map[string]any{
				{"name": "Action URL", "value": "{{URL}}", "sample": "https://example.com/action"},
				{"name": "Server URL", "value": "{{SERVER_URL}}", "sample": "https://example.com"},
			},
		},
	},
}

func (h *handler) getEditorConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, editorConfig)
}

func (h *handler) getEditorConfigKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "configKey")
	section, ok := editorConfig[key]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "unknown config key"},
		})
		return
	}
	writeJSON(w, http.StatusOK, section)
}
