// Package nav tracks the current chapter within [1, total].
package nav

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by GoTo for a chapter outside [1, total].
var ErrOutOfRange = errors.New("chapter out of range")

// Listener is called after every successful chapter change.
type Listener func(chapter int)

// Controller is not safe for concurrent use; it is driven from a single
// event loop.
type Controller struct {
	current   int
	total     int
	listeners []Listener
}

// New starts at chapter 1. total must be at least 1.
func New(total int) (*Controller, error) {
	if total < 1 {
		return nil, fmt.Errorf("nav: total chapters must be positive, got %d", total)
	}
	return &Controller{current: 1, total: total}, nil
}

// Subscribe registers l. Listeners run in registration order.
func (c *Controller) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Controller) Current() int { return c.current }
func (c *Controller) Total() int   { return c.total }

// GoTo moves to chapter n and notifies listeners. Out-of-range values leave
// the state unchanged.
func (c *Controller) GoTo(n int) error {
	if n < 1 || n > c.total {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, n, c.total)
	}
	c.current = n
	for _, l := range c.listeners {
		l(n)
	}
	return nil
}

// Next advances one chapter. At the last chapter it does nothing and
// returns false.
func (c *Controller) Next() bool {
	if c.current >= c.total {
		return false
	}
	return c.GoTo(c.current+1) == nil
}

// Prev goes back one chapter. At chapter 1 it does nothing and returns
// false.
func (c *Controller) Prev() bool {
	if c.current <= 1 {
		return false
	}
	return c.GoTo(c.current-1) == nil
}
