package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrNoteNotFound      = goerr.New("note not found")
	ErrInvalidPermission = goerr.New("invalid note permission")
)

// NoteID is a document identifier in the canonical encoding: 22
// characters of unpadded base64url over the underlying UUID bytes.
// See pkg/noteid for encoding and legacy migration.
type NoteID string

type NotePermission string

const (
	PermissionPrivate NotePermission = "private"
	PermissionPublic  NotePermission = "public"
)

// Validate checks if the permission is valid
func (p NotePermission) Validate() error {
	switch p {
	case PermissionPrivate, PermissionPublic:
		return nil
	default:
		return goerr.Wrap(ErrInvalidPermission, "unknown permission", goerr.Value("permission", p))
	}
}

type Note struct {
	ID         NoteID `firestore:"-"`
	OwnerID    UserID
	Content    string
	Permission NotePermission

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisibleTo reports whether viewer may read the note.
func (n *Note) VisibleTo(viewer UserID) bool {
	return n.Permission == PermissionPublic || n.OwnerID == viewer
}
