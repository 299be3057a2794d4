// Package bible holds the verse dataset for a single book and the loader
// that fetches it.
package bible

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrDataUnavailable wraps every failure to fetch or decode the dataset.
	ErrDataUnavailable = errors.New("verse data unavailable")
	// ErrChapterNotFound reports a chapter with no entries in the dataset.
	ErrChapterNotFound = errors.New("chapter not found")
	// ErrVerseNotFound reports a reference that no longer resolves to text.
	ErrVerseNotFound = errors.New("verse not found")
)

// VerseRef identifies a single verse.
type VerseRef struct {
	Chapter int
	Verse   int
}

// String formats the reference as "chapter:verse", the form used in storage.
func (r VerseRef) String() string {
	return fmt.Sprintf("%d:%d", r.Chapter, r.Verse)
}

// ParseVerseRef parses a "chapter:verse" string.
func ParseVerseRef(s string) (VerseRef, error) {
	chapter, verse, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return VerseRef{}, fmt.Errorf("invalid verse reference %q", s)
	}

	c, err := strconv.Atoi(chapter)
	if err != nil || c < 1 {
		return VerseRef{}, fmt.Errorf("invalid chapter in %q", s)
	}
	v, err := strconv.Atoi(verse)
	if err != nil || v < 1 {
		return VerseRef{}, fmt.Errorf("invalid verse in %q", s)
	}

	return VerseRef{Chapter: c, Verse: v}, nil
}

// Dataset maps chapter number to verse number to verse text. It is never
// mutated after Decode returns it.
type Dataset struct {
	chapters map[int]map[int]string
	total    int
}

// NewDataset copies chapters into a Dataset.
func NewDataset(chapters map[int]map[int]string) *Dataset {
	ds := &Dataset{chapters: make(map[int]map[int]string, len(chapters))}
	for c, verses := range chapters {
		cp := make(map[int]string, len(verses))
		for v, text := range verses {
			cp[v] = text
		}
		ds.chapters[c] = cp
		if c > ds.total {
			ds.total = c
		}
	}
	return ds
}

// TotalChapters returns the highest chapter number in the dataset.
func (d *Dataset) TotalChapters() int {
	if d == nil {
		return 0
	}
	return d.total
}

// Chapter returns the verses of chapter n. The returned map must not be
// modified.
func (d *Dataset) Chapter(n int) (map[int]string, bool) {
	if d == nil {
		return nil, false
	}
	verses, ok := d.chapters[n]
	if !ok || len(verses) == 0 {
		return nil, false
	}
	return verses, true
}

// VerseNumbers returns the verse numbers of chapter n in ascending order.
func (d *Dataset) VerseNumbers(n int) []int {
	verses, ok := d.Chapter(n)
	if !ok {
		return nil
	}

	nums := make([]int, 0, len(verses))
	for v := range verses {
		nums = append(nums, v)
	}
	sort.Ints(nums)
	return nums
}

// Verse looks up the text for ref.
func (d *Dataset) Verse(ref VerseRef) (string, bool) {
	verses, ok := d.Chapter(ref.Chapter)
	if !ok {
		return "", false
	}
	text, ok := verses[ref.Verse]
	return text, ok
}

// Has reports whether ref resolves to text.
func (d *Dataset) Has(ref VerseRef) bool {
	_, ok := d.Verse(ref)
	return ok
}
