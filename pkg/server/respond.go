package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/utils/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// handleError maps internal errors to caller-visible outcomes. Callers
// only ever see "not found" or a generic failure; detail stays in the
// log.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrNoteNotFound),
		errors.Is(err, model.ErrEntryNotFound):
		respondError(w, http.StatusNotFound, "not found")

	case errors.Is(err, model.ErrInvalidPermission):
		respondError(w, http.StatusBadRequest, "invalid request")

	default:
		logging.From(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
