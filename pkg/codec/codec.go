// Package codec converts between the stored history blob (a JSON array
// of entry records) and the keyed in-memory collection.
package codec

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/noteid"
)

type Codec struct {
	migrator *noteid.Migrator
}

// New creates a codec. A nil migrator gets the default one.
func New(migrator *noteid.Migrator) *Codec {
	if migrator == nil {
		migrator = noteid.NewMigrator()
	}
	return &Codec{migrator: migrator}
}

// Decode parses a stored blob into a history collection. An empty blob
// means no prior history, not an error. Every entry ID runs through the
// legacy migrator before insertion, so no decoded entry carries a
// legacy ID that the migrator could convert; when migration makes two
// IDs collide, the later entry in the sequence wins.
func (c *Codec) Decode(ctx context.Context, blob string) (model.History, error) {
	history := model.NewHistory()
	if blob == "" {
		return history, nil
	}

	var entries []*model.HistoryEntry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil, goerr.Wrap(model.ErrMalformedHistory, "failed to parse history blob",
			goerr.Value("error", err.Error()),
		)
	}

	for _, entry := range entries {
		if entry == nil || entry.ID == "" {
			// An entry without an ID cannot be keyed.
			continue
		}
		entry.ID = c.migrator.Migrate(ctx, entry.ID)
		history.Put(entry)
	}

	return history, nil
}

// Encode serializes the collection for storage. An empty history
// encodes to []. Decode(Encode(h)) preserves every key and field for
// histories holding only canonical IDs.
func (c *Codec) Encode(history model.History) (string, error) {
	raw, err := json.Marshal(history.Entries())
	if err != nil {
		return "", goerr.Wrap(err, "failed to serialize history")
	}
	return string(raw), nil
}
