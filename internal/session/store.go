// Package session persists the signed-in user between runs.
//
// The store holds a single JSON record at <dir>/<app>_user.json. It is
// written on every user change, read once at startup and removed on logout.
package session

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/modplan/internal/io"
	"github.com/handiism/modplan/internal/model"
)

// Store reads and writes the current-user record.
type Store struct {
	path string
}

// NewStore returns a store for app under dir.
func NewStore(dir, app string) *Store {
	app = strings.TrimSpace(app)
	if app == "" {
		app = "modplan"
	}
	return &Store{path: filepath.Join(dir, app+"_user.json")}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored user.
func (s *Store) Save(u model.User) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	if err := ioutils.WriteFileAtomic(s.path, data, 0600); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Load returns the stored user. ok is false when nothing is stored.
// A corrupt record is reported as an error.
func (s *Store) Load() (u model.User, ok bool, err error) {
	data, ok, err := ioutils.ReadFileIfExists(s.path)
	if err != nil {
		return model.User{}, false, fmt.Errorf("session: load: %w", err)
	}
	if !ok {
		return model.User{}, false, nil
	}
	if err := json.Unmarshal(data, &u); err != nil {
		return model.User{}, false, fmt.Errorf("session: decode %s: %w", s.path, err)
	}
	return u, true, nil
}

// Clear removes the stored user.
func (s *Store) Clear() error {
	if err := ioutils.RemoveIfExists(s.path); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
