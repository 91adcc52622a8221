// Package note serves note listing and retrieval, and derives the
// display metadata that feeds history entries.
package note

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/repository"
	historyuc "github.com/m-mizutani/spoor/pkg/usecase/history"
	"github.com/m-mizutani/spoor/pkg/utils/logging"
)

type UseCase struct {
	repo    repository.Repository
	history *historyuc.UseCase
}

func New(repo repository.Repository, history *historyuc.UseCase) *UseCase {
	return &UseCase{
		repo:    repo,
		history: history,
	}
}

// List returns the notes visible to the viewer.
func (u *UseCase) List(ctx context.Context, viewer model.UserID) ([]*model.Note, error) {
	return u.repo.ListNotes(ctx, viewer)
}

// Get returns a note and records the visit in the viewer's history.
// Invisible notes are indistinguishable from absent ones. The history
// write is best effort: a failure is logged and the note is still
// returned.
func (u *UseCase) Get(ctx context.Context, viewer model.UserID, id model.NoteID) (*model.Note, error) {
	note, err := u.repo.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	if !note.VisibleTo(viewer) {
		return nil, goerr.Wrap(model.ErrNoteNotFound, "note is not visible to viewer",
			goerr.Value("noteID", id),
			goerr.Value("viewer", viewer),
		)
	}

	meta := Derive(note.Content)
	if _, err := u.history.Touch(ctx, viewer, note.ID, meta.Title, meta.Tags, time.Time{}); err != nil {
		logging.From(ctx).Error("failed to record note visit",
			"noteID", id,
			"viewer", viewer,
			"error", err,
		)
	}

	return note, nil
}

// Create stores a new note owned by the caller.
func (u *UseCase) Create(ctx context.Context, owner model.UserID, id model.NoteID, content string, permission model.NotePermission) (*model.Note, error) {
	if permission == "" {
		permission = model.PermissionPrivate
	}
	if err := permission.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	note := &model.Note{
		ID:         id,
		OwnerID:    owner,
		Content:    content,
		Permission: permission,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := u.repo.PutNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
