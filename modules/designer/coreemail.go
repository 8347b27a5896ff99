package designer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mailforge/designer/pkg/coreemail"
)

func (h *handler) getCoreEmail(w http.ResponseWriter, r *http.Request) {
	kind, err := coreemail.ParseKind(chi.URLParam(r, "coreEmailType"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.core.Get(r.Context(), kind)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) saveCoreEmail(w http.ResponseWriter, r *http.Request) {
	kind, err := coreemail.ParseKind(chi.URLParam(r, "coreEmailType"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in coreemail.SaveInput
	if err := decodeBody(r, &in); err != nil {
		h.writeBadBody(w)
		return
	}

	if err := h.core.Save(r.Context(), kind, in); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}
