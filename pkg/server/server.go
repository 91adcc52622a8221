// Package server exposes the history and note APIs over HTTP. Handlers
// stay thin: translate the request, call a usecase, map the outcome.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/spoor/pkg/repository"
	historyuc "github.com/m-mizutani/spoor/pkg/usecase/history"
	noteuc "github.com/m-mizutani/spoor/pkg/usecase/note"
)

type Server struct {
	repo    repository.Repository
	history *historyuc.UseCase
	notes   *noteuc.UseCase
	router  *chi.Mux
}

func New(repo repository.Repository) *Server {
	history := historyuc.New(repo)

	s := &Server{
		repo:    repo,
		history: history,
		notes:   noteuc.New(repo, history),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/history", s.getHistory)
		r.Post("/history", s.replaceHistory)
		r.Delete("/history", s.clearHistory)
		r.Post("/history/{noteID}", s.updateHistory)
		r.Delete("/history/{noteID}", s.deleteHistory)

		r.Get("/notes", s.listNotes)
		r.Post("/notes", s.createNote)
		r.Get("/notes/{noteID}", s.getNote)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
