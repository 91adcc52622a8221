package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/spoor/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	userCollection = "users"
	noteCollection = "notes"
)

// Firestore implements Repository using Firestore
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.Value("projectID", projectID),
			goerr.Value("databaseID", databaseID),
		)
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) PutUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	if _, err := r.client.Collection(userCollection).Doc(string(user.ID)).Set(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.Value("userID", user.ID))
	}
	return nil
}

func (r *Firestore) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	snap, err := r.client.Collection(userCollection).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrUserNotFound, "no such user", goerr.Value("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.Value("userID", id))
	}

	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.Value("userID", id))
	}
	user.ID = id

	return &user, nil
}

func (r *Firestore) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, goerr.Wrap(model.ErrUserNotFound, "empty token")
	}

	iter := r.client.Collection(userCollection).
		Where("APIToken", "==", token).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(model.ErrUserNotFound, "no user for token")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by token")
	}

	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user")
	}
	user.ID = model.UserID(snap.Ref.ID)

	return &user, nil
}

func (r *Firestore) UpdateUserHistory(ctx context.Context, id model.UserID, blob string) error {
	_, err := r.client.Collection(userCollection).Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "History", Value: blob},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrUserNotFound, "no such user", goerr.Value("userID", id))
		}
		return goerr.Wrap(err, "failed to update user history", goerr.Value("userID", id))
	}
	return nil
}

func (r *Firestore) PutNote(ctx context.Context, note *model.Note) error {
	if note.ID == "" {
		return goerr.New("note ID is empty")
	}
	if err := note.Permission.Validate(); err != nil {
		return err
	}

	if _, err := r.client.Collection(noteCollection).Doc(string(note.ID)).Set(ctx, note); err != nil {
		return goerr.Wrap(err, "failed to put note", goerr.Value("noteID", note.ID))
	}
	return nil
}

func (r *Firestore) GetNote(ctx context.Context, id model.NoteID) (*model.Note, error) {
	snap, err := r.client.Collection(noteCollection).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNoteNotFound, "no such note", goerr.Value("noteID", id))
		}
		return nil, goerr.Wrap(err, "failed to get note", goerr.Value("noteID", id))
	}

	var note model.Note
	if err := snap.DataTo(&note); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal note", goerr.Value("noteID", id))
	}
	note.ID = id

	return &note, nil
}

func (r *Firestore) ListNotes(ctx context.Context, viewer model.UserID) ([]*model.Note, error) {
	var notes []*model.Note
	seen := map[model.NoteID]bool{}

	queries := []firestore.Query{
		r.client.Collection(noteCollection).Where("OwnerID", "==", string(viewer)),
		r.client.Collection(noteCollection).Where("Permission", "==", string(model.PermissionPublic)),
	}

	for _, q := range queries {
		iter := q.Documents(ctx)
		for {
			snap, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to list notes", goerr.Value("viewer", viewer))
			}

			id := model.NoteID(snap.Ref.ID)
			if seen[id] {
				continue
			}
			seen[id] = true

			var note model.Note
			if err := snap.DataTo(&note); err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to unmarshal note", goerr.Value("noteID", id))
			}
			note.ID = id
			notes = append(notes, &note)
		}
		iter.Stop()
	}

	return notes, nil
}
