package designer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	templates "github.com/mailforge/designer/pkg/designer"
)

func (h *handler) listVersions(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")
	if _, err := h.templates.Get(r.Context(), templateID); err != nil {
		h.writeError(w, r, err)
		return
	}

	history, err := h.templates.Versioning().History(r.Context(), templateID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *handler) getVersion(w http.ResponseWriter, r *http.Request) {
	ver, err := h.templates.Versioning().Version(r.Context(), chi.URLParam(r, "versionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if ver.TemplateID != chi.URLParam(r, "templateId") {
		h.writeError(w, r, templates.ErrVersionMismatch)
		return
	}
	writeJSON(w, http.StatusOK, ver)
}

type restoreRequest struct {
	Reason string `json:"reason"`
}

func (h *handler) restoreVersion(w http.ResponseWriter, r *http.Request) {
	var in restoreRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &in); err != nil {
			h.writeBadBody(w)
			return
		}
	}

	tpl, err := h.templates.Versioning().Restore(r.Context(),
		chi.URLParam(r, "templateId"),
		chi.URLParam(r, "versionId"),
		r.Header.Get(actorHeader),
		in.Reason,
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (h *handler) deleteVersion(w http.ResponseWriter, r *http.Request) {
	ver, err := h.templates.Versioning().Version(r.Context(), chi.URLParam(r, "versionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if ver.TemplateID != chi.URLParam(r, "templateId") {
		h.writeError(w, r, templates.ErrVersionMismatch)
		return
	}

	if err := h.templates.Versioning().DeleteVersion(r.Context(), ver.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
