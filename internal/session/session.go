// Package session owns the state of one reading session: the dataset, the
// favorites store and the navigation controller. The presentation layer
// talks only to a Session.
package session

import (
	"context"
	"errors"
	"fmt"

	"genesis-tui/internal/bible"
	"genesis-tui/internal/favorites"
	"genesis-tui/internal/nav"
	"genesis-tui/internal/render"
	"genesis-tui/internal/storage"

	"go.uber.org/zap"
)

// ErrNotReady is returned by operations invoked before a successful
// LoadDataset.
var ErrNotReady = errors.New("session: dataset not loaded")

// DatasetLoader fetches the dataset. *bible.Loader implements it.
type DatasetLoader interface {
	Load(ctx context.Context, location string) (*bible.Dataset, error)
}

type Options struct {
	Loader   DatasetLoader
	Location string
	Store    storage.KV
	Logger   *zap.Logger
}

type Session struct {
	loader   DatasetLoader
	location string
	kv       storage.KV
	logger   *zap.Logger

	dataset   *bible.Dataset
	favorites *favorites.Store
	nav       *nav.Controller
	loadErr   error

	listeners []func(render.DisplayModel)
}

func New(opts Options) *Session {
	if opts.Loader == nil {
		opts.Loader = bible.NewLoader()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Session{
		loader:   opts.Loader,
		location: opts.Location,
		kv:       opts.Store,
		logger:   opts.Logger,
	}
}

// LoadDataset performs the one fetch of the session. On failure the error
// wraps bible.ErrDataUnavailable and favorites and navigation stay
// uninitialised. Calling it again after success is a no-op.
func (s *Session) LoadDataset(ctx context.Context) error {
	if s.Ready() {
		return nil
	}

	s.logger.Info("Loading dataset", zap.String("location", s.location))
	ds, err := s.loader.Load(ctx, s.location)
	if err == nil && ds.TotalChapters() < 1 {
		err = fmt.Errorf("%w: dataset has no chapters", bible.ErrDataUnavailable)
	}
	if err != nil {
		if !errors.Is(err, bible.ErrDataUnavailable) {
			err = fmt.Errorf("%w: %v", bible.ErrDataUnavailable, err)
		}
		s.loadErr = err
		s.logger.Error("Dataset unavailable", zap.Error(err))
		return err
	}

	controller, err := nav.New(ds.TotalChapters())
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %v", bible.ErrDataUnavailable, err)
		return s.loadErr
	}

	s.dataset = ds
	s.loadErr = nil
	s.favorites = favorites.Open(s.kv, s.logger)
	s.nav = controller
	s.nav.Subscribe(s.notify)

	s.logger.Info("Dataset loaded",
		zap.Int("chapters", ds.TotalChapters()),
		zap.Int("favorites", s.favorites.Len()))
	return nil
}

// Ready reports whether the dataset has been loaded.
func (s *Session) Ready() bool {
	return s.dataset != nil
}

// Err returns the DataUnavailable error of the last failed load.
func (s *Session) Err() error {
	return s.loadErr
}

func (s *Session) Dataset() *bible.Dataset {
	return s.dataset
}

// OnChapterChange registers fn to receive the rendered chapter after every
// navigation transition.
func (s *Session) OnChapterChange(fn func(render.DisplayModel)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) notify(chapter int) {
	dm := s.RenderChapter(chapter)
	for _, fn := range s.listeners {
		fn(dm)
	}
}

// RenderChapter renders chapter with the current favorites.
func (s *Session) RenderChapter(chapter int) render.DisplayModel {
	if !s.Ready() {
		return render.Render(chapter, nil, nil)
	}
	return render.Render(chapter, s.dataset, s.favorites)
}

// RenderCurrent renders the current chapter.
func (s *Session) RenderCurrent() render.DisplayModel {
	return s.RenderChapter(s.Current())
}

// ToggleFavorite flips the favorite state of a verse and returns the new
// state. A verse that does not exist in the dataset cannot be added, but a
// stale favorite can still be removed.
func (s *Session) ToggleFavorite(chapter, verse int) (bool, error) {
	if !s.Ready() {
		return false, ErrNotReady
	}

	ref := bible.VerseRef{Chapter: chapter, Verse: verse}
	if !s.favorites.IsFavorite(chapter, verse) && !s.dataset.Has(ref) {
		return false, fmt.Errorf("%w: %s", bible.ErrVerseNotFound, ref)
	}
	return s.favorites.Toggle(chapter, verse), nil
}

func (s *Session) IsFavorite(chapter, verse int) bool {
	if !s.Ready() {
		return false
	}
	return s.favorites.IsFavorite(chapter, verse)
}

// Favorites returns every favorite resolved against the dataset, in the
// order they were added.
func (s *Session) Favorites() []favorites.Entry {
	if !s.Ready() {
		return nil
	}
	return s.favorites.Entries(s.dataset)
}

// Verse returns the text of ref, or favorites.VerseNotFoundText.
func (s *Session) Verse(ref bible.VerseRef) string {
	if text, ok := s.dataset.Verse(ref); ok {
		return text
	}
	return favorites.VerseNotFoundText
}

func (s *Session) GoTo(n int) error {
	if !s.Ready() {
		return ErrNotReady
	}
	return s.nav.GoTo(n)
}

func (s *Session) Next() bool {
	return s.Ready() && s.nav.Next()
}

func (s *Session) Prev() bool {
	return s.Ready() && s.nav.Prev()
}

// Current returns the current chapter, or 0 before the dataset is loaded.
func (s *Session) Current() int {
	if !s.Ready() {
		return 0
	}
	return s.nav.Current()
}

func (s *Session) TotalChapters() int {
	return s.dataset.TotalChapters()
}

// Close releases the persistence backend.
func (s *Session) Close() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Close()
}
