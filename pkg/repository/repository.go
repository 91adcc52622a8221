package repository

import (
	"context"

	"github.com/m-mizutani/spoor/pkg/model"
)

// Repository defines the interface for account and note persistence
type Repository interface {
	// PutUser saves an account record
	PutUser(ctx context.Context, user *model.User) error

	// GetUser retrieves an account record by ID
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// GetUserByToken retrieves the account record holding the API token
	GetUserByToken(ctx context.Context, token string) (*model.User, error)

	// UpdateUserHistory overwrites the stored history blob of a user.
	// The blob is always written whole; there is no delta path.
	UpdateUserHistory(ctx context.Context, id model.UserID, blob string) error

	// PutNote saves a note
	PutNote(ctx context.Context, note *model.Note) error

	// GetNote retrieves a note by ID
	GetNote(ctx context.Context, id model.NoteID) (*model.Note, error)

	// ListNotes retrieves the notes visible to the viewer: their own
	// plus public ones
	ListNotes(ctx context.Context, viewer model.UserID) ([]*model.Note, error)
}
