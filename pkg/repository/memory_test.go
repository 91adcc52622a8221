package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/repository"
)

func TestMemoryUserLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.PutUser(ctx, &model.User{
		ID:       "u1",
		Name:     "Alice",
		APIToken: "token-1",
	}))

	user, err := repo.GetUser(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, user.Name, "Alice")
	gt.Equal(t, user.History, "")

	byToken, err := repo.GetUserByToken(ctx, "token-1")
	gt.NoError(t, err)
	gt.Equal(t, byToken.ID, model.UserID("u1"))
}

func TestMemoryGetUserNotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	_, err := repo.GetUser(ctx, "nobody")
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrUserNotFound), true)

	_, err = repo.GetUserByToken(ctx, "no-token")
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrUserNotFound), true)

	_, err = repo.GetUserByToken(ctx, "")
	gt.Error(t, err)
}

func TestMemoryUpdateUserHistory(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.PutUser(ctx, &model.User{ID: "u1"}))

	gt.NoError(t, repo.UpdateUserHistory(ctx, "u1", `[{"id":"x"}]`))

	user, err := repo.GetUser(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, user.History, `[{"id":"x"}]`)

	err = repo.UpdateUserHistory(ctx, "nobody", "[]")
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrUserNotFound), true)
}

func TestMemoryGetUserReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.PutUser(ctx, &model.User{ID: "u1", Name: "Alice"}))

	user, err := repo.GetUser(ctx, "u1")
	gt.NoError(t, err)
	user.Name = "Mallory"

	again, err := repo.GetUser(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, again.Name, "Alice")
}

func TestMemoryNotes(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.PutNote(ctx, &model.Note{
		ID:         "n1",
		OwnerID:    "u1",
		Content:    "# Mine",
		Permission: model.PermissionPrivate,
	}))
	gt.NoError(t, repo.PutNote(ctx, &model.Note{
		ID:         "n2",
		OwnerID:    "u2",
		Content:    "# Theirs",
		Permission: model.PermissionPrivate,
	}))
	gt.NoError(t, repo.PutNote(ctx, &model.Note{
		ID:         "n3",
		OwnerID:    "u2",
		Content:    "# Shared",
		Permission: model.PermissionPublic,
	}))

	note, err := repo.GetNote(ctx, "n1")
	gt.NoError(t, err)
	gt.Equal(t, note.Content, "# Mine")

	_, err = repo.GetNote(ctx, "missing")
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrNoteNotFound), true)

	notes, err := repo.ListNotes(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, len(notes), 2)
}

func TestMemoryPutNoteValidatesPermission(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	err := repo.PutNote(ctx, &model.Note{ID: "n1", OwnerID: "u1", Permission: "wide-open"})
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrInvalidPermission), true)
}
