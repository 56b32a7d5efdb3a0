// Package session keeps the signed in user on disk and tells interested
// parts of the program when it changes.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AuthKey is the store key holding the {token, user} record.
const AuthKey = "auth"

// FilePath returns PORTFOLIO_SESSION_FILE when set, otherwise
// $XDG_CONFIG_HOME/portfolio/storage.json (~/.config when unset).
func FilePath() string {
	if path := os.Getenv("PORTFOLIO_SESSION_FILE"); path != "" {
		return path
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "portfolio-storage.json")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "portfolio", "storage.json")
}

// Store is a small JSON key/value file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns every entry. A missing file is an empty store.
func (s *Store) Load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file %s: %w", s.path, err)
	}

	entries := map[string]json.RawMessage{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", s.path, err)
	}
	return entries, nil
}

// Get decodes key into v and reports whether it was present.
func (s *Store) Get(key string, v any) (bool, error) {
	entries, err := s.Load()
	if err != nil {
		return false, err
	}
	raw, ok := entries[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("parsing %q in %s: %w", key, s.path, err)
	}
	return true, nil
}

func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %q: %w", key, err)
	}
	entries, err := s.Load()
	if err != nil {
		return err
	}
	entries[key] = raw
	return s.save(entries)
}

func (s *Store) Delete(key string) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.save(entries)
}

// save replaces the file atomically: readers never see a partial write.
func (s *Store) save(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing session file %s: %w", s.path, err)
	}
	return nil
}
