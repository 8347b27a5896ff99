package designer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mailforge/designer/pkg/coreemail"
	"github.com/mailforge/designer/pkg/dispatch"
)

func (h *handler) emailStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"configured": h.dispatcher.IsProviderConfigured(),
	})
}

func (h *handler) sampleData(w http.ResponseWriter, r *http.Request) {
	kind, err := coreemail.ParseKind(chi.URLParam(r, "coreEmailType"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data, err := dispatch.SampleData(kind, h.serverURL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

type testEmailRequest struct {
	To      string         `json:"to"`
	Subject string         `json:"subject"`
	HTML    string         `json:"html"`
	Text    string         `json:"text"`
	Data    map[string]any `json:"data"`
}

// sendTestEmail compiles ad-hoc content against the provided data and sends
// it to a single recipient through the configured provider.
func (h *handler) sendTestEmail(w http.ResponseWriter, r *http.Request) {
	var in testEmailRequest
	if err := decodeBody(r, &in); err != nil {
		h.writeBadBody(w)
		return
	}

	err := h.dispatcher.SendTest(r.Context(), in.To, dispatch.TestContent{
		Subject: in.Subject,
		HTML:    in.HTML,
		Text:    in.Text,
	}, in.Data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}
