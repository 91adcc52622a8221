// Package history drives the fetch, decode, mutate, encode, persist
// cycle for one user's visit history. Each call performs at most one
// engine mutation and one full-blob write; concurrent calls for the
// same user are last write wins at the store.
package history

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/spoor/pkg/codec"
	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/noteid"
	"github.com/m-mizutani/spoor/pkg/repository"
)

type UseCase struct {
	repo  repository.Repository
	codec *codec.Codec
}

func New(repo repository.Repository) *UseCase {
	return &UseCase{
		repo:  repo,
		codec: codec.New(noteid.NewMigrator()),
	}
}

func (u *UseCase) fetch(ctx context.Context, userID model.UserID) (model.History, error) {
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := u.codec.Decode(ctx, user.History)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode stored history", goerr.Value("userID", userID))
	}
	return history, nil
}

func (u *UseCase) persist(ctx context.Context, userID model.UserID, history model.History) error {
	blob, err := u.codec.Encode(history)
	if err != nil {
		return err
	}

	if err := u.repo.UpdateUserHistory(ctx, userID, blob); err != nil {
		return goerr.Wrap(err, "failed to persist history", goerr.Value("userID", userID))
	}
	return nil
}

// Get returns the user's decoded history. Legacy note IDs are already
// migrated when this returns.
func (u *UseCase) Get(ctx context.Context, userID model.UserID) (model.History, error) {
	return u.fetch(ctx, userID)
}

// Touch records a visit to a note, preserving an existing pin. A zero
// ts means the current time.
func (u *UseCase) Touch(ctx context.Context, userID model.UserID, id model.NoteID, text string, tags []string, ts time.Time) (*model.HistoryEntry, error) {
	history, err := u.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := history.Touch(id, text, tags, ts)

	if err := u.persist(ctx, userID, history); err != nil {
		return nil, err
	}
	return entry, nil
}

// SetPinned flips the pin flag of an existing entry. Nothing is written
// when the entry does not exist.
func (u *UseCase) SetPinned(ctx context.Context, userID model.UserID, id model.NoteID, pinned bool) error {
	history, err := u.fetch(ctx, userID)
	if err != nil {
		return err
	}

	if err := history.SetPinned(id, pinned); err != nil {
		return err
	}

	return u.persist(ctx, userID, history)
}

// Remove deletes the entry for a note. Removing an absent entry still
// succeeds and rewrites the blob.
func (u *UseCase) Remove(ctx context.Context, userID model.UserID, id model.NoteID) error {
	history, err := u.fetch(ctx, userID)
	if err != nil {
		return err
	}

	history.Remove(id)

	return u.persist(ctx, userID, history)
}

// Replace rebuilds the whole history from the given entries. An empty
// sequence clears it.
func (u *UseCase) Replace(ctx context.Context, userID model.UserID, entries []*model.HistoryEntry) error {
	history, err := u.fetch(ctx, userID)
	if err != nil {
		return err
	}

	history.ReplaceAll(entries)

	return u.persist(ctx, userID, history)
}

// Clear removes every entry of the user's history.
func (u *UseCase) Clear(ctx context.Context, userID model.UserID) error {
	return u.Replace(ctx, userID, nil)
}
