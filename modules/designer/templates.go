package designer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	templates "github.com/mailforge/designer/pkg/designer"
)

func (h *handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := h.templates.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.templates.Get(r.Context(), chi.URLParam(r, "templateId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// saveTemplate creates or updates a template. The path id "new" requests
// creation; any other id updates an existing record.
func (h *handler) saveTemplate(w http.ResponseWriter, r *http.Request) {
	var in templates.SaveTemplateInput
	if err := decodeBody(r, &in); err != nil {
		h.writeBadBody(w)
		return
	}

	tpl, err := h.templates.Save(r.Context(), chi.URLParam(r, "templateId"), in, r.Header.Get(actorHeader))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (h *handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.Context(), chi.URLParam(r, "templateId")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (h *handler) duplicateTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.templates.Duplicate(r.Context(), chi.URLParam(r, "sourceId"), r.Header.Get(actorHeader))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// downloadTemplate serves a template as a file attachment, either the full
// design as JSON or the compiled HTML body, selected by the type query param.
func (h *handler) downloadTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateId")
	tpl, err := h.templates.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	switch r.URL.Query().Get("type") {
	case "json", "":
		body, err := json.MarshalIndent(tpl, "", "  ")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=template-%s.json", id))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=template-%s.html", id))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(tpl.BodyHTML))
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: errorDetail{Code: "bad_request", Message: "type must be json or html"},
		})
	}
}
