package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/noteid"
	noteuc "github.com/m-mizutani/spoor/pkg/usecase/note"
)

type noteSummary struct {
	ID        model.NoteID `json:"id"`
	Title     string       `json:"title"`
	Tags      []string     `json:"tags"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type noteResponse struct {
	ID         model.NoteID         `json:"id"`
	Title      string               `json:"title"`
	Tags       []string             `json:"tags"`
	Content    string               `json:"content"`
	Permission model.NotePermission `json:"permission"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

type createNoteRequest struct {
	Content    string               `json:"content"`
	Permission model.NotePermission `json:"permission"`
}

// listNotes handles GET /api/v1/notes: the caller's own notes plus
// public ones.
func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	notes, err := s.notes.List(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	summaries := make([]noteSummary, 0, len(notes))
	for _, note := range notes {
		meta := noteuc.Derive(note.Content)
		summaries = append(summaries, noteSummary{
			ID:        note.ID,
			Title:     meta.Title,
			Tags:      meta.Tags,
			UpdatedAt: note.UpdatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string][]noteSummary{"notes": summaries})
}

// getNote handles GET /api/v1/notes/{noteID}. Retrieving a note records
// a visit in the caller's history.
func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	noteID := model.NoteID(chi.URLParam(r, "noteID"))

	note, err := s.notes.Get(r.Context(), user.ID, noteID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	meta := noteuc.Derive(note.Content)
	respondJSON(w, http.StatusOK, noteResponse{
		ID:         note.ID,
		Title:      meta.Title,
		Tags:       meta.Tags,
		Content:    note.Content,
		Permission: note.Permission,
		UpdatedAt:  note.UpdatedAt,
	})
}

// createNote handles POST /api/v1/notes
func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid note payload")
		return
	}

	note, err := s.notes.Create(r.Context(), user.ID, noteid.New(), req.Content, req.Permission)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	meta := noteuc.Derive(note.Content)
	respondJSON(w, http.StatusCreated, noteResponse{
		ID:         note.ID,
		Title:      meta.Title,
		Tags:       meta.Tags,
		Content:    note.Content,
		Permission: note.Permission,
		UpdatedAt:  note.UpdatedAt,
	})
}
