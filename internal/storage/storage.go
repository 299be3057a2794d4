// Package storage provides the local key/value persistence used for
// favorites. Values are opaque strings; callers own their encoding.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// KV is a synchronous key/value store with a single writer.
type KV interface {
	// Get returns ok=false with a nil error when key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Kind names a KV implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Open returns the KV of the given kind. An empty path selects the default
// location for that kind under the user config directory.
func Open(kind Kind, path string) (KV, error) {
	switch kind {
	case KindMemory:
		return NewMemoryKV(), nil
	case KindFile, "":
		if path == "" {
			p, err := DefaultPath("favorites.json")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFileKV(path), nil
	case KindSQLite:
		if path == "" {
			p, err := DefaultPath("favorites.db")
			if err != nil {
				return nil, err
			}
			path = p
		}
		kv, err := OpenSQLiteKV(path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// DefaultPath returns name inside the application's config directory,
// creating the directory if needed.
func DefaultPath(name string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "genesis-tui")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}
