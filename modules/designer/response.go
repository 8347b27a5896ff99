package designer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mailforge/designer/pkg/coreemail"
	templates "github.com/mailforge/designer/pkg/designer"
	"github.com/mailforge/designer/pkg/dispatch"
	"github.com/mailforge/designer/pkg/email"
)

// errorDetail is the error payload of a failed request.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain sentinels onto HTTP statuses and stable error codes.
// Anything unmapped is a 500 with the detail kept out of the response body.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	message := "internal server error"

	switch {
	case errors.Is(err, templates.ErrTemplateNotFound),
		errors.Is(err, templates.ErrVersionNotFound):
		status = http.StatusNotFound
		code = "not_found"
		message = err.Error()
	case errors.Is(err, templates.ErrReferenceIDTaken):
		status = http.StatusConflict
		code = "reference_id_taken"
		message = err.Error()
	case errors.Is(err, templates.ErrInvalidReferenceID),
		errors.Is(err, templates.ErrVersionMismatch),
		errors.Is(err, coreemail.ErrUnknownKind),
		errors.Is(err, dispatch.ErrInvalidAddress),
		errors.Is(err, email.ErrInvalidMessage):
		status = http.StatusBadRequest
		code = "bad_request"
		message = err.Error()
	case errors.Is(err, dispatch.ErrProviderNotConfigured):
		status = http.StatusBadRequest
		code = "provider_not_configured"
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *handler) writeBadBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "bad_request", Message: "malformed request body"},
	})
}
