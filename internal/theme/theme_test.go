package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_Default(t *testing.T) {
	assert.Equal(t, DefaultSlug, Get("no-such-theme").Slug)
	assert.Equal(t, "Dracula", Get("dracula").Name)
}

func TestNext_CyclesThroughAll(t *testing.T) {
	all := All()
	slug := DefaultSlug
	seen := map[string]bool{}
	for range all {
		seen[slug] = true
		slug = Next(slug).Slug
	}
	assert.Equal(t, DefaultSlug, slug, "wraps back to the start")
	assert.Len(t, seen, len(all))
}
