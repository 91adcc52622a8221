package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/spoor/pkg/model"
)

// Memory implements Repository in process memory. Used by tests and
// local runs without a Firestore project.
type Memory struct {
	mu    sync.RWMutex
	users map[model.UserID]*model.User
	notes map[model.NoteID]*model.Note
}

func NewMemory() *Memory {
	return &Memory{
		users: map[model.UserID]*model.User{},
		notes: map[model.NoteID]*model.Note{},
	}
}

func (r *Memory) PutUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *Memory) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrUserNotFound, "no such user", goerr.Value("userID", id))
	}
	copied := *user
	return &copied, nil
}

func (r *Memory) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, goerr.Wrap(model.ErrUserNotFound, "empty token")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.APIToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, goerr.Wrap(model.ErrUserNotFound, "no user for token")
}

func (r *Memory) UpdateUserHistory(ctx context.Context, id model.UserID, blob string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return goerr.Wrap(model.ErrUserNotFound, "no such user", goerr.Value("userID", id))
	}
	user.History = blob
	return nil
}

func (r *Memory) PutNote(ctx context.Context, note *model.Note) error {
	if note.ID == "" {
		return goerr.New("note ID is empty")
	}
	if err := note.Permission.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *note
	r.notes[note.ID] = &copied
	return nil
}

func (r *Memory) GetNote(ctx context.Context, id model.NoteID) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNoteNotFound, "no such note", goerr.Value("noteID", id))
	}
	copied := *note
	return &copied, nil
}

func (r *Memory) ListNotes(ctx context.Context, viewer model.UserID) ([]*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var notes []*model.Note
	for _, note := range r.notes {
		if !note.VisibleTo(viewer) {
			continue
		}
		copied := *note
		notes = append(notes, &copied)
	}
	return notes, nil
}
