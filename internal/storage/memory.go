package storage

import "errors"

// ErrClosed is returned by a MemoryKV after Close.
var ErrClosed = errors.New("store closed")

// MemoryKV keeps values for the life of the process.
type MemoryKV struct {
	values map[string]string
	closed bool
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Close() error {
	m.closed = true
	return nil
}
