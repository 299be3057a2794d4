package favorites

import (
	"errors"
	"testing"

	"genesis-tui/internal/bible"
	"genesis-tui/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingKV struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingKV) Get(string) (string, bool, error) { return "", false, f.getErr }
func (f *failingKV) Set(string, string) error         { f.sets++; return f.setErr }
func (f *failingKV) Close() error                     { return nil }

func refs(pairs ...[2]int) []bible.VerseRef {
	out := make([]bible.VerseRef, len(pairs))
	for i, p := range pairs {
		out[i] = bible.VerseRef{Chapter: p[0], Verse: p[1]}
	}
	return out
}

func TestToggle_Involution(t *testing.T) {
	s := Open(storage.NewMemoryKV(), zap.NewNop())
	s.Toggle(1, 1)

	for _, ref := range refs([2]int{1, 1}, [2]int{2, 5}, [2]int{50, 26}) {
		before := s.IsFavorite(ref.Chapter, ref.Verse)
		s.Toggle(ref.Chapter, ref.Verse)
		assert.NotEqual(t, before, s.IsFavorite(ref.Chapter, ref.Verse))
		s.Toggle(ref.Chapter, ref.Verse)
		assert.Equal(t, before, s.IsFavorite(ref.Chapter, ref.Verse), "ref %s", ref)
	}
}

func TestToggle_ReAddAppends(t *testing.T) {
	s := Open(storage.NewMemoryKV(), zap.NewNop())
	s.Toggle(1, 1)
	s.Toggle(1, 2)
	s.Toggle(1, 3)

	assert.False(t, s.Toggle(1, 1))
	assert.Equal(t, refs([2]int{1, 2}, [2]int{1, 3}), s.Refs(), "removal keeps remaining order")

	assert.True(t, s.Toggle(1, 1))
	assert.Equal(t, refs([2]int{1, 2}, [2]int{1, 3}, [2]int{1, 1}), s.Refs())
}

func TestToggle_PersistsEveryChange(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := Open(kv, zap.NewNop())

	s.Toggle(3, 4)
	raw, ok, err := kv.Get(Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["3:4"]`, raw)

	s.Toggle(3, 4)
	raw, _, _ = kv.Get(Key)
	assert.JSONEq(t, `[]`, raw)
}

func TestRoundTrip_FreshSession(t *testing.T) {
	kv := storage.NewMemoryKV()
	first := Open(kv, zap.NewNop())
	first.Toggle(12, 3)
	first.Toggle(1, 1)
	first.Toggle(1, 10)

	second := Open(kv, zap.NewNop())
	assert.Equal(t, first.Refs(), second.Refs())
}

func TestOpen_MissingKey(t *testing.T) {
	s := Open(storage.NewMemoryKV(), zap.NewNop())
	assert.Zero(t, s.Len())
}

func TestOpen_MalformedFailsSoft(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":    "{{{",
		"wrong type":  `{"1:1": true}`,
		"bad element": `["1:1", "genesis"]`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			require.NoError(t, kv.Set(Key, raw))

			core, logs := observer.New(zapcore.WarnLevel)
			var s *Store
			assert.NotPanics(t, func() { s = Open(kv, zap.New(core)) })

			assert.Zero(t, s.Len())
			assert.Equal(t, 1, logs.FilterMessage("Discarding stored favorites").Len())

			_, err := s.Load()
			var perr *PersistenceError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "read", perr.Op)
		})
	}
}

func TestOpen_ReadErrorFailsSoft(t *testing.T) {
	kv := &failingKV{getErr: errors.New("disk on fire")}
	s := Open(kv, zap.NewNop())
	assert.Zero(t, s.Len())
}

func TestSave_WriteErrorSwallowed(t *testing.T) {
	kv := &failingKV{setErr: errors.New("read-only filesystem")}
	core, logs := observer.New(zapcore.WarnLevel)
	s := Open(kv, zap.New(core))

	assert.True(t, s.Toggle(1, 1))
	assert.True(t, s.IsFavorite(1, 1), "in-memory state survives a failed write")
	assert.Equal(t, 1, kv.sets)
	assert.Equal(t, 1, logs.FilterMessage("Failed to persist favorites").Len())
}

func TestDecode_DropsDuplicates(t *testing.T) {
	got, err := Decode(`["2:1","1:1","2:1"]`)
	require.NoError(t, err)
	assert.Equal(t, refs([2]int{2, 1}, [2]int{1, 1}), got)
}

func TestEntries_MissingVerse(t *testing.T) {
	ds := bible.NewDataset(map[int]map[int]string{1: {1: "In the beginning"}})
	s := Open(storage.NewMemoryKV(), zap.NewNop())
	s.Toggle(1, 1)
	s.Toggle(9, 9)

	entries := s.Entries(ds)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Ref: bible.VerseRef{Chapter: 1, Verse: 1}, Text: "In the beginning", Found: true}, entries[0])
	assert.Equal(t, Entry{Ref: bible.VerseRef{Chapter: 9, Verse: 9}, Text: VerseNotFoundText}, entries[1])
}
