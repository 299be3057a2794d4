package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Invalid(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	c, err := New(50)
	require.NoError(t, err)

	assert.False(t, c.Prev(), "prev at chapter 1")
	assert.Equal(t, 1, c.Current())

	require.NoError(t, c.GoTo(50))
	assert.False(t, c.Next(), "next at chapter 50")
	assert.Equal(t, 50, c.Current())

	assert.True(t, c.Prev())
	assert.Equal(t, 49, c.Current())
	assert.True(t, c.Next())
	assert.Equal(t, 50, c.Current())
}

func TestGoTo_OutOfRange(t *testing.T) {
	c, _ := New(50)
	require.NoError(t, c.GoTo(7))

	for _, n := range []int{0, -1, 51} {
		err := c.GoTo(n)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Equal(t, 7, c.Current())
	}
}

func TestSubscribe(t *testing.T) {
	c, _ := New(3)

	var seen []int
	var order []string
	c.Subscribe(func(ch int) { seen = append(seen, ch); order = append(order, "a") })
	c.Subscribe(func(int) { order = append(order, "b") })

	c.Next()
	c.Next()
	c.Next() // no-op at the end, no notification
	_ = c.GoTo(9)
	c.Prev()

	assert.Equal(t, []int{2, 3, 2}, seen)
	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, order)
}

func TestSingleChapter(t *testing.T) {
	c, _ := New(1)
	assert.False(t, c.Next())
	assert.False(t, c.Prev())
	assert.Equal(t, 1, c.Current())
}
