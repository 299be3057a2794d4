package render

import (
	"strconv"
	"testing"

	"genesis-tui/internal/bible"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type favSet map[bible.VerseRef]bool

func (f favSet) IsFavorite(chapter, verse int) bool {
	return f[bible.VerseRef{Chapter: chapter, Verse: verse}]
}

func elevenVerses() *bible.Dataset {
	verses := map[int]string{}
	for i := 1; i <= 11; i++ {
		verses[i] = "verse " + strconv.Itoa(i)
	}
	return bible.NewDataset(map[int]map[int]string{1: verses, 50: {1: "last"}})
}

func TestRender_NumericOrder(t *testing.T) {
	dm := Render(1, elevenVerses(), nil)

	var got []int
	for _, l := range dm.Verses {
		got = append(got, l.Number)
	}
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("verse order mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_FavoriteFlags(t *testing.T) {
	ds := bible.NewDataset(map[int]map[int]string{2: {1: "a", 2: "b", 3: "c"}})
	favs := favSet{{Chapter: 2, Verse: 2}: true, {Chapter: 1, Verse: 1}: true}

	want := DisplayModel{
		Chapter: 2,
		Verses: []Line{
			{Number: 1, Text: "a"},
			{Number: 2, Text: "b", Favorite: true},
			{Number: 3, Text: "c"},
		},
	}
	if diff := cmp.Diff(want, Render(2, ds, favs)); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_EmptyChapter(t *testing.T) {
	ds := elevenVerses()

	for _, chapter := range []int{51, 0, -3, 25} {
		var dm DisplayModel
		assert.NotPanics(t, func() { dm = Render(chapter, ds, favSet{}) })
		assert.True(t, dm.Empty)
		assert.Nil(t, dm.Verses)
		assert.Equal(t, NotFoundMessage(chapter), dm.Message)
		assert.Contains(t, dm.Message, strconv.Itoa(chapter))
	}
}

func TestRender_NilDataset(t *testing.T) {
	dm := Render(1, nil, nil)
	assert.True(t, dm.Empty)
}

func TestRender_Deterministic(t *testing.T) {
	ds := elevenVerses()
	favs := favSet{{Chapter: 1, Verse: 10}: true}
	assert.Equal(t, Render(1, ds, favs), Render(1, ds, favs))
}
