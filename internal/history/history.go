// Package history persists the identifier->timestamp record of already
// published articles used to keep the pipeline from reposting.
package history

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"
)

// History maps an article identifier (its canonical URL) to the time the
// article was published. At most one entry exists per identifier.
type History map[string]time.Time

// Store reads and writes the history document as a whole. The file holds a
// JSON object of identifier -> RFC 3339 timestamp. Single-process usage only;
// there is no locking because at most one run executes at a time.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore binds the store to a file path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load returns the persisted history. A missing file yields an empty history;
// an unreadable or corrupt file is logged and also yields an empty history,
// so a run can always proceed (at the risk of a duplicate post).
func (s *Store) Load() History {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("read history file, starting empty", "path", s.path, "error", err)
		}
		return History{}
	}

	var doc map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Error("parse history file, starting empty", "path", s.path, "error", err)
		return History{}
	}

	h := make(History, len(doc))
	for id, stamp := range doc {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			s.logger.Warn("drop history entry with bad timestamp", "id", id, "value", stamp)
			continue
		}
		h[id] = ts
	}
	return h
}

// Save overwrites the persisted document with the given history. Callers
// treat a failure as non-fatal.
func (s *Store) Save(h History) error {
	doc := make(map[string]string, len(h))
	for id, ts := range h {
		doc[id] = ts.Format(time.RFC3339)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// Prune returns a new history containing only entries newer than the
// retention cutoff. Entries exactly at the cutoff are dropped.
func Prune(h History, retentionDays int, now time.Time) History {
	cutoff := now.AddDate(0, 0, -retentionDays)
	kept := make(History, len(h))
	for id, ts := range h {
		if ts.After(cutoff) {
			kept[id] = ts
		}
	}
	return kept
}

// Contains reports whether the identifier was already posted.
func Contains(h History, id string) bool {
	_, ok := h[id]
	return ok
}

// Mark records the identifier as posted at the given time, overwriting any
// previous timestamp for it.
func Mark(h History, id string, now time.Time) History {
	if h == nil {
		h = History{}
	}
	h[id] = now
	return h
}
