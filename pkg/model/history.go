package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEntryNotFound    = goerr.New("history entry not found")
	ErrMalformedHistory = goerr.New("malformed history data")
)

// HistoryEntry is one visited note in a user's history. The JSON field
// names are the stored wire format and must stay as they are: existing
// blobs were written with exactly this shape.
type HistoryEntry struct {
	ID     NoteID   `json:"id"`
	Text   string   `json:"text"`
	Time   int64    `json:"time"` // milliseconds since epoch
	Tags   []string `json:"tags"`
	Pinned bool     `json:"pinned,omitempty"`
}

// History is a user's visit history keyed by note ID. Every entry's ID
// field equals its key; Put enforces this. A History is built fresh per
// request and never shared across requests.
type History map[NoteID]*HistoryEntry

func NewHistory() History {
	return History{}
}

// Put inserts the entry under its own ID, replacing any existing entry
// for that note.
func (h History) Put(entry *HistoryEntry) {
	h[entry.ID] = entry
}

// Touch inserts or refreshes the entry for a note. Label, tags and
// timestamp are overwritten; an existing pin survives. A zero ts means
// the current time.
func (h History) Touch(id NoteID, text string, tags []string, ts time.Time) *HistoryEntry {
	if ts.IsZero() {
		ts = time.Now()
	}
	if tags == nil {
		tags = []string{}
	}

	entry := &HistoryEntry{
		ID:   id,
		Text: text,
		Time: ts.UnixMilli(),
		Tags: tags,
	}
	if prev, ok := h[id]; ok {
		entry.Pinned = prev.Pinned
	}
	h.Put(entry)

	return entry
}

// SetPinned sets the pin flag of an existing entry. The collection is
// left untouched when the note has no entry.
func (h History) SetPinned(id NoteID, pinned bool) error {
	entry, ok := h[id]
	if !ok {
		return goerr.Wrap(ErrEntryNotFound, "cannot pin unknown note", goerr.Value("noteID", id))
	}
	entry.Pinned = pinned
	return nil
}

// Remove deletes the entry for a note. Removing an absent entry is a
// no-op.
func (h History) Remove(id NoteID) {
	delete(h, id)
}

// ReplaceAll rebuilds the history from the given sequence, discarding
// everything it held before. Later entries win on duplicate IDs. An
// empty or nil sequence clears the history.
func (h History) ReplaceAll(entries []*HistoryEntry) {
	clear(h)
	for _, entry := range entries {
		if entry == nil || entry.ID == "" {
			continue
		}
		h.Put(entry)
	}
}

// Entries returns the entries in the map's natural iteration order.
// The slice is never nil so an empty history serializes as [].
func (h History) Entries() []*HistoryEntry {
	entries := make([]*HistoryEntry, 0, len(h))
	for _, entry := range h {
		entries = append(entries, entry)
	}
	return entries
}
