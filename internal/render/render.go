// Package render turns a chapter of the dataset into the display model
// consumed by the presentation layer.
package render

import (
	"fmt"

	"genesis-tui/internal/bible"
)

// Membership answers whether a verse is a favorite.
type Membership interface {
	IsFavorite(chapter, verse int) bool
}

// Line is one verse of a rendered chapter.
type Line struct {
	Number   int
	Text     string
	Favorite bool
}

// DisplayModel is the output of Render. When Empty is set, Verses is nil
// and Message explains why.
type DisplayModel struct {
	Chapter int
	Empty   bool
	Message string
	Verses  []Line
}

// NotFoundMessage is the empty-state text for a chapter with no entries.
func NotFoundMessage(chapter int) string {
	return fmt.Sprintf("Chapter %d not found.", chapter)
}

// Render builds the display model for chapter. Verses are ordered by
// ascending verse number. It has no side effects.
func Render(chapter int, ds *bible.Dataset, favs Membership) DisplayModel {
	nums := ds.VerseNumbers(chapter)
	if len(nums) == 0 {
		return DisplayModel{
			Chapter: chapter,
			Empty:   true,
			Message: NotFoundMessage(chapter),
		}
	}

	verses, _ := ds.Chapter(chapter)
	lines := make([]Line, 0, len(nums))
	for _, n := range nums {
		lines = append(lines, Line{
			Number:   n,
			Text:     verses[n],
			Favorite: favs != nil && favs.IsFavorite(chapter, n),
		})
	}

	return DisplayModel{Chapter: chapter, Verses: lines}
}
