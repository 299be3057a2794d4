// Package settings persists user preferences as JSON in the user config
// directory.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"genesis-tui/internal/bible"
	"genesis-tui/internal/storage"
	"genesis-tui/internal/theme"
)

type Settings struct {
	DataLocation string       `json:"data_location"`
	Store        storage.Kind `json:"store"`
	StorePath    string       `json:"store_path,omitempty"`
	Theme        string       `json:"theme"` // theme slug
	LogFile      string       `json:"log_file,omitempty"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		DataLocation: bible.DefaultLocation,
		Store:        storage.KindFile,
		Theme:        theme.DefaultSlug,
	}
}

// Path returns the config file location.
func Path() (string, error) {
	return storage.DefaultPath("config.json")
}

func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Defaults(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads path over the defaults. A missing file is not an error.
func LoadFrom(path string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		// No config = just return defaults, no error
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Defaults(), err
	}

	if s.DataLocation == "" {
		s.DataLocation = bible.DefaultLocation
	}
	if s.Store == "" {
		s.Store = storage.KindFile
	}
	if s.Theme == "" {
		s.Theme = theme.DefaultSlug
	}
	return s, nil
}

func Save(s Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

func SaveTo(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
