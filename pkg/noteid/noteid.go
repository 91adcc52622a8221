// Package noteid implements the canonical note identifier encoding and
// the migration of identifiers written under the retired legacy
// encoding.
//
// The underlying identifier is a UUID. The canonical form is the
// unpadded base64url encoding of its 16 raw bytes, always 22
// characters. The legacy form was the LZString base64 compression of
// the UUID's 36 character string; it is no longer produced but still
// occurs in stored history blobs.
package noteid

import (
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/spoor/pkg/model"
)

// New generates a fresh note ID in the canonical encoding.
func New() model.NoteID {
	return Encode(uuid.New())
}

// Encode converts a UUID to its canonical 22 character form.
func Encode(u uuid.UUID) model.NoteID {
	return model.NoteID(base64.RawURLEncoding.EncodeToString(u[:]))
}

// Decode parses a canonical note ID back into its UUID.
func Decode(id model.NoteID) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(string(id))
	if err != nil {
		return uuid.Nil, goerr.Wrap(err, "not a canonical note id", goerr.Value("noteID", id))
	}

	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, goerr.Wrap(err, "not a canonical note id", goerr.Value("noteID", id))
	}

	return u, nil
}

// IsValid reports whether id is a well formed canonical note ID.
func IsValid(id model.NoteID) bool {
	_, err := Decode(id)
	return err == nil
}
