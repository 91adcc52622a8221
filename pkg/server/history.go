package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/spoor/pkg/model"
)

type historyResponse struct {
	History []*model.HistoryEntry `json:"history"`
}

type replaceHistoryRequest struct {
	History []*model.HistoryEntry `json:"history"`
}

type updateHistoryRequest struct {
	Pinned *bool `json:"pinned"`
}

// getHistory handles GET /api/v1/history
func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	history, err := s.history.Get(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, historyResponse{History: history.Entries()})
}

// replaceHistory handles POST /api/v1/history. The whole history is
// rebuilt from the payload; an empty array clears it. Malformed bodies
// are rejected before any storage access.
func (s *Server) replaceHistory(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req replaceHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid history payload")
		return
	}

	if err := s.history.Replace(r.Context(), user.ID, req.History); err != nil {
		s.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateHistory handles POST /api/v1/history/{noteID}: set the pin flag
// of one entry.
func (s *Server) updateHistory(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	noteID := model.NoteID(chi.URLParam(r, "noteID"))

	var req updateHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pinned == nil {
		respondError(w, http.StatusBadRequest, "pinned flag required")
		return
	}

	if err := s.history.SetPinned(r.Context(), user.ID, noteID, *req.Pinned); err != nil {
		s.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteHistory handles DELETE /api/v1/history/{noteID}. Deleting an
// absent entry succeeds.
func (s *Server) deleteHistory(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	noteID := model.NoteID(chi.URLParam(r, "noteID"))

	if err := s.history.Remove(r.Context(), user.ID, noteID); err != nil {
		s.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clearHistory handles DELETE /api/v1/history
func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	if err := s.history.Clear(r.Context(), user.ID); err != nil {
		s.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
