// Package favorites keeps the ordered set of favorited verses and persists
// it through a storage.KV after every change.
//
// Persistence is best effort. Read failures fall back to an empty set and
// write failures are logged; neither is reported to the caller.
package favorites

import (
	"encoding/json"
	"fmt"
	"slices"

	"genesis-tui/internal/bible"
	"genesis-tui/internal/storage"

	"go.uber.org/zap"
)

// Key is the storage key holding the JSON array of "chapter:verse" strings.
const Key = "favorites"

// VerseNotFoundText replaces the text of a favorite that no longer resolves.
const VerseNotFoundText = "Verse not found."

// PersistenceError describes a failed read or write of the stored set.
type PersistenceError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("favorites %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the in-memory favorites set. Insertion order is the order in
// which verses were favorited.
type Store struct {
	kv     storage.KV
	logger *zap.Logger
	refs   []bible.VerseRef
}

// Open builds a Store from whatever kv currently holds. A read error is
// logged and the store starts empty.
func Open(kv storage.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{kv: kv, logger: logger}
	refs, err := s.Load()
	if err != nil {
		logger.Warn("Discarding stored favorites", zap.Error(err))
		refs = nil
	}
	s.refs = refs

	logger.Debug("Favorites loaded", zap.Int("count", len(s.refs)))
	return s
}

// Load reads the persisted set without touching the store's state. A
// missing key yields an empty set and a nil error.
func (s *Store) Load() ([]bible.VerseRef, error) {
	if s.kv == nil {
		return nil, nil
	}

	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Err: err}
	}
	if !ok {
		return nil, nil
	}

	refs, err := Decode(raw)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Err: err}
	}
	return refs, nil
}

// Save writes the current set. Failures are logged and swallowed.
func (s *Store) Save() {
	if err := s.save(); err != nil {
		s.logger.Warn("Failed to persist favorites", zap.Error(err), zap.Int("count", len(s.refs)))
	}
}

func (s *Store) save() error {
	if s.kv == nil {
		return nil
	}
	raw, err := Encode(s.refs)
	if err != nil {
		return &PersistenceError{Op: "write", Err: err}
	}
	if err := s.kv.Set(Key, raw); err != nil {
		return &PersistenceError{Op: "write", Err: err}
	}
	return nil
}

// Toggle removes the verse if it is a favorite and appends it otherwise,
// then persists. It returns the new membership. Re-adding a verse places it
// at the end, not at its former position.
func (s *Store) Toggle(chapter, verse int) bool {
	ref := bible.VerseRef{Chapter: chapter, Verse: verse}

	favorite := true
	if i := s.indexOf(ref); i >= 0 {
		s.refs = slices.Delete(s.refs, i, i+1)
		favorite = false
	} else {
		s.refs = append(s.refs, ref)
	}

	s.logger.Debug("Favorite toggled", zap.Stringer("ref", ref), zap.Bool("favorite", favorite))
	s.Save()
	return favorite
}

func (s *Store) IsFavorite(chapter, verse int) bool {
	return s.indexOf(bible.VerseRef{Chapter: chapter, Verse: verse}) >= 0
}

func (s *Store) indexOf(ref bible.VerseRef) int {
	return slices.Index(s.refs, ref)
}

// Refs returns a copy of the set in insertion order.
func (s *Store) Refs() []bible.VerseRef {
	return slices.Clone(s.refs)
}

func (s *Store) Len() int {
	return len(s.refs)
}

// Entry is a favorite resolved against a dataset.
type Entry struct {
	Ref   bible.VerseRef
	Text  string
	Found bool
}

// Entries resolves every favorite in order. Favorites missing from ds carry
// VerseNotFoundText.
func (s *Store) Entries(ds *bible.Dataset) []Entry {
	entries := make([]Entry, 0, len(s.refs))
	for _, ref := range s.refs {
		text, ok := ds.Verse(ref)
		if !ok {
			text = VerseNotFoundText
		}
		entries = append(entries, Entry{Ref: ref, Text: text, Found: ok})
	}
	return entries
}

// Encode serializes refs as a JSON array of "chapter:verse" strings.
func Encode(refs []bible.VerseRef) (string, error) {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.String()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses the stored form. Duplicates are dropped, keeping the first
// occurrence.
func Decode(raw string) ([]bible.VerseRef, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	refs := make([]bible.VerseRef, 0, len(items))
	for _, item := range items {
		ref, err := bible.ParseVerseRef(item)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(refs, ref) {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}
