package session

import (
	"context"
	"errors"
	"testing"

	"genesis-tui/internal/bible"
	"genesis-tui/internal/favorites"
	"genesis-tui/internal/render"
	"genesis-tui/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLoader struct {
	ds    *bible.Dataset
	err   error
	calls int
}

func (l *stubLoader) Load(context.Context, string) (*bible.Dataset, error) {
	l.calls++
	return l.ds, l.err
}

func genesis() *bible.Dataset {
	chapters := map[int]map[int]string{}
	for c := 1; c <= 50; c++ {
		chapters[c] = map[int]string{1: "first", 2: "second"}
	}
	return bible.NewDataset(chapters)
}

func newReady(t *testing.T, kv storage.KV) *Session {
	t.Helper()
	s := New(Options{Loader: &stubLoader{ds: genesis()}, Store: kv, Logger: zap.NewNop()})
	require.NoError(t, s.LoadDataset(context.Background()))
	return s
}

func TestLoadDataset_Failure(t *testing.T) {
	loader := &stubLoader{err: errors.New("connection refused")}
	kv := storage.NewMemoryKV()
	s := New(Options{Loader: loader, Store: kv, Logger: zap.NewNop()})

	var err error
	assert.NotPanics(t, func() { err = s.LoadDataset(context.Background()) })
	require.Error(t, err)
	assert.ErrorIs(t, err, bible.ErrDataUnavailable)
	assert.ErrorIs(t, s.Err(), bible.ErrDataUnavailable)

	assert.False(t, s.Ready())
	assert.Nil(t, s.favorites)
	assert.Nil(t, s.nav)

	_, err = s.ToggleFavorite(1, 1)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, s.GoTo(2), ErrNotReady)
	assert.False(t, s.Next())
	assert.False(t, s.Prev())
	assert.Zero(t, s.Current())
	assert.True(t, s.RenderChapter(1).Empty)

	_, ok, _ := kv.Get(favorites.Key)
	assert.False(t, ok, "favorites store never touched")
}

func TestLoadDataset_EmptyDataset(t *testing.T) {
	s := New(Options{Loader: &stubLoader{ds: bible.NewDataset(nil)}})
	err := s.LoadDataset(context.Background())
	assert.ErrorIs(t, err, bible.ErrDataUnavailable)
	assert.False(t, s.Ready())
}

func TestLoadDataset_Once(t *testing.T) {
	loader := &stubLoader{ds: genesis()}
	s := New(Options{Loader: loader})
	require.NoError(t, s.LoadDataset(context.Background()))
	require.NoError(t, s.LoadDataset(context.Background()))
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, 1, s.Current())
	assert.Equal(t, 50, s.TotalChapters())
}

func TestNavigation_RendersOnChange(t *testing.T) {
	s := newReady(t, storage.NewMemoryKV())

	var rendered []render.DisplayModel
	s.OnChapterChange(func(dm render.DisplayModel) { rendered = append(rendered, dm) })

	assert.False(t, s.Prev())
	assert.True(t, s.Next())
	require.NoError(t, s.GoTo(50))
	assert.False(t, s.Next())
	assert.Error(t, s.GoTo(51))

	require.Len(t, rendered, 2)
	assert.Equal(t, 2, rendered[0].Chapter)
	assert.Equal(t, 50, rendered[1].Chapter)
	assert.Equal(t, 50, s.Current())
}

func TestToggleFavorite_ReflectedInRender(t *testing.T) {
	s := newReady(t, storage.NewMemoryKV())

	on, err := s.ToggleFavorite(1, 2)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, s.RenderCurrent().Verses[1].Favorite)

	on, err = s.ToggleFavorite(1, 2)
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, s.RenderCurrent().Verses[1].Favorite)
}

func TestToggleFavorite_UnknownVerse(t *testing.T) {
	s := newReady(t, storage.NewMemoryKV())
	_, err := s.ToggleFavorite(1, 99)
	assert.ErrorIs(t, err, bible.ErrVerseNotFound)
	assert.False(t, s.IsFavorite(1, 99))
}

func TestFavorites_StaleEntry(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(favorites.Key, `["3:1","70:1"]`))
	s := newReady(t, kv)

	entries := s.Favorites()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Found)
	assert.Equal(t, favorites.VerseNotFoundText, entries[1].Text)
	assert.Equal(t, favorites.VerseNotFoundText, s.Verse(bible.VerseRef{Chapter: 70, Verse: 1}))

	// A stale favorite can still be removed.
	on, err := s.ToggleFavorite(70, 1)
	require.NoError(t, err)
	assert.False(t, on)
}

func TestFavorites_PersistAcrossSessions(t *testing.T) {
	kv := storage.NewMemoryKV()
	first := newReady(t, kv)
	_, _ = first.ToggleFavorite(4, 1)
	_, _ = first.ToggleFavorite(2, 2)

	second := newReady(t, kv)
	assert.Equal(t, first.Favorites(), second.Favorites())
}
