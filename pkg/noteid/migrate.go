package noteid

import (
	"context"

	lzstring "github.com/daku10/go-lz-string"
	"github.com/google/uuid"
	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/utils/logging"
)

// DefaultMinLegacyLength is the shortest form the legacy compressor
// produces for a 36 character UUID string: the base64 expansion of the
// compressed stream, minus one character of slack for the final block.
// Anything shorter was never legacy encoded. The cutoff is a fast-path
// heuristic, not a correctness guarantee: an ID at or above it that
// fails to decode simply passes through unchanged.
const DefaultMinLegacyLength = 36*4/3 - 1

// Migrator upgrades note IDs from the legacy encoding to the canonical
// one. Pure in-memory computation, no I/O.
type Migrator struct {
	minLegacyLength int
}

type Option func(*Migrator)

// WithMinLegacyLength overrides the length cutoff below which IDs skip
// the legacy decode attempt.
func WithMinLegacyLength(n int) Option {
	return func(m *Migrator) {
		m.minLegacyLength = n
	}
}

func NewMigrator(opts ...Option) *Migrator {
	m := &Migrator{
		minLegacyLength: DefaultMinLegacyLength,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Migrate returns the canonical equivalent of a legacy encoded note ID,
// or the ID unchanged when it is not legacy encoded. Migrate never
// fails: every decode problem resolves to the original ID, so an entry
// that cannot be migrated now is retried on the next read. Running it
// on an already canonical ID is a no-op.
func (m *Migrator) Migrate(ctx context.Context, id model.NoteID) model.NoteID {
	if len(id) < m.minLegacyLength {
		return id
	}

	decoded, err := lzstring.DecompressFromBase64(string(id))
	if err != nil {
		// The decompressor rejects most IDs that merely exceed the
		// length cutoff without ever having been legacy encoded.
		logging.From(ctx).Info("ignoring legacy note id decode failure",
			"noteID", id,
			"error", err,
		)
		return id
	}

	if decoded == "" {
		// An empty payload out of a successful decompression points at
		// corrupted stored data rather than a non-legacy ID.
		logging.From(ctx).Error("legacy note id decoded to empty payload", "noteID", id)
		return id
	}

	u, err := uuid.Parse(decoded)
	if err != nil {
		logging.From(ctx).Debug("long note id is not legacy encoded", "noteID", id)
		return id
	}

	return Encode(u)
}
