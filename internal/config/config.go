// Package config persists corpus-level settings.
//
// Settings are loaded once and threaded explicitly into every engine
// call as plain values. Nothing in the engine reads process-wide state,
// so every component stays a pure function of its inputs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile is the settings filename inside the specs/ directory.
const ConfigFile = ".leanspec.json"

// Settings holds corpus-level configuration.
type Settings struct {
	// SequenceDigits is the zero-padding width for sequence numbers in
	// full conflict reports ("005" at width 3).
	SequenceDigits int `json:"sequence_digits"`
	// AutoCheck runs a quiet sequence conflict check before every
	// mutation (link/unlink) when true.
	AutoCheck bool `json:"auto_check"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{SequenceDigits: 3, AutoCheck: true}
}

// Store is the persistence interface for settings.
type Store interface {
	Load(projectRoot string) (Settings, error)
	Save(projectRoot string, s Settings) error
}

// FileStore implements Store as a JSON file under specs/.
type FileStore struct{}

// NewFileStore creates a filesystem-backed settings store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Path returns the absolute path to the settings file.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, "specs", ConfigFile)
}

// Load reads settings, falling back to defaults when the file is absent.
// Fields missing from an existing file keep their default values.
func (fs *FileStore) Load(projectRoot string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(Path(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}
	if s.SequenceDigits <= 0 {
		s.SequenceDigits = Default().SequenceDigits
	}
	return s, nil
}

// Save writes settings, creating the specs/ directory if needed.
func (fs *FileStore) Save(projectRoot string, s Settings) error {
	path := Path(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating specs directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
