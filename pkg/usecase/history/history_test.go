package history_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/noteid"
	"github.com/m-mizutani/spoor/pkg/repository"
	"github.com/m-mizutani/spoor/pkg/usecase/history"
)

func setupRepo(t *testing.T, blob string) *repository.Memory {
	t.Helper()
	repo := repository.NewMemory()
	gt.NoError(t, repo.PutUser(context.Background(), &model.User{
		ID:      "u1",
		Name:    "Test User",
		History: blob,
	}))
	return repo
}

func storedBlob(t *testing.T, repo *repository.Memory, userID model.UserID) string {
	t.Helper()
	user, err := repo.GetUser(context.Background(), userID)
	gt.NoError(t, err)
	return user.History
}

func TestGetDecodesStoredBlob(t *testing.T) {
	ctx := context.Background()
	id := noteid.New()
	repo := setupRepo(t, fmt.Sprintf(`[{"id":%q,"text":"Stored","time":100,"tags":["x"]}]`, id))

	h, err := history.New(repo).Get(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, len(h), 1)
	gt.Equal(t, h[id].Text, "Stored")
}

func TestGetUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t, "")

	_, err := history.New(repo).Get(ctx, "nobody")
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrUserNotFound), true)
}

func TestGetMalformedStoredBlob(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t, "broken{")

	_, err := history.New(repo).Get(ctx, "u1")
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrMalformedHistory), true)
}

func TestTouchPersistsFullBlob(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t, "")
	uc := history.New(repo)

	id := noteid.New()
	entry, err := uc.Touch(ctx, "u1", id, "Visited", []string{"tag"}, time.UnixMilli(500))
	gt.NoError(t, err)
	gt.Equal(t, entry.Time, int64(500))

	var stored []*model.HistoryEntry
	gt.NoError(t, json.Unmarshal([]byte(storedBlob(t, repo, "u1")), &stored))
	gt.Equal(t, len(stored), 1)
	gt.Equal(t, stored[0].ID, id)
	gt.Equal(t, stored[0].Text, "Visited")
	gt.Equal(t, stored[0].Tags, []string{"tag"})
}

func TestTouchPreservesPinAcrossPersist(t *testing.T) {
	ctx := context.Background()
	id := noteid.New()
	repo := setupRepo(t, fmt.Sprintf(`[{"id":%q,"text":"Old","time":100,"tags":[],"pinned":true}]`, id))
	uc := history.New(repo)

	_, err := uc.Touch(ctx, "u1", id, "New", []string{}, time.UnixMilli(200))
	gt.NoError(t, err)

	h, err := uc.Get(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, h[id].Pinned, true)
	gt.Equal(t, h[id].Text, "New")
	gt.Equal(t, h[id].Time, int64(200))
}

func TestSetPinnedUnknownEntryWritesNothing(t *testing.T) {
	ctx := context.Background()
	blob := fmt.Sprintf(`[{"id":%q,"text":"Note","time":100,"tags":[]}]`, noteid.New())
	repo := setupRepo(t, blob)
	uc := history.New(repo)

	err := uc.SetPinned(ctx, "u1", noteid.New(), true)
	gt.Error(t, err)
	gt.Equal(t, errors.Is(err, model.ErrEntryNotFound), true)

	// The stored blob is untouched on failure.
	gt.Equal(t, storedBlob(t, repo, "u1"), blob)
}

func TestSetPinnedPersists(t *testing.T) {
	ctx := context.Background()
	id := noteid.New()
	repo := setupRepo(t, fmt.Sprintf(`[{"id":%q,"text":"Note","time":100,"tags":[]}]`, id))
	uc := history.New(repo)

	gt.NoError(t, uc.SetPinned(ctx, "u1", id, true))

	h, err := uc.Get(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, h[id].Pinned, true)
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	id := noteid.New()
	repo := setupRepo(t, fmt.Sprintf(`[{"id":%q,"text":"Note","time":100,"tags":[]}]`, id))
	uc := history.New(repo)

	gt.NoError(t, uc.Remove(ctx, "u1", id))
	gt.NoError(t, uc.Remove(ctx, "u1", id))

	gt.Equal(t, storedBlob(t, repo, "u1"), "[]")
}

func TestClearPersistsEmptyArray(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t, fmt.Sprintf(`[{"id":%q,"text":"Note","time":100,"tags":[]}]`, noteid.New()))
	uc := history.New(repo)

	gt.NoError(t, uc.Clear(ctx, "u1"))
	gt.Equal(t, storedBlob(t, repo, "u1"), "[]")
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t, "")
	uc := history.New(repo)

	a, b := noteid.New(), noteid.New()
	gt.NoError(t, uc.Replace(ctx, "u1", []*model.HistoryEntry{
		{ID: a, Text: "A", Time: 1, Tags: []string{}},
		{ID: b, Text: "B", Time: 2, Tags: []string{}},
	}))

	h, err := uc.Get(ctx, "u1")
	gt.NoError(t, err)
	gt.Equal(t, len(h), 2)
	gt.Equal(t, h[a].Text, "A")
	gt.Equal(t, h[b].Text, "B")
}
