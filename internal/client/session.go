package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
)

const sessionFileName = "session.json"

// Session is the signed-in identity. Every read and submit takes it
// explicitly.
type Session struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type SessionStore interface {
	// Returns ErrAuthRequired when nobody is signed in
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// HomeDir returns MOODTRACK_HOME if set, otherwise ~/.moodtrack.
func HomeDir() (string, error) {
	if dir := os.Getenv("MOODTRACK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".moodtrack"), nil
}

type FileSessionStore struct {
	path string
}

func NewFileSessionStore(dir string) *FileSessionStore {
	return &FileSessionStore{path: filepath.Join(dir, sessionFileName)}
}

func (store *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errorvalues.ErrAuthRequired
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", store.path, err)
	}
	var s Session
	if err := sonic.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt session in %s: %w", store.path, err)
	}
	if s.Token == "" || s.UserID == uuid.Nil {
		return nil, errorvalues.ErrAuthRequired
	}
	return &s, nil
}

// Save writes the session atomically, readable by the owner only.
func (store *FileSessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}
	tmpPath := store.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing session temp file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming session temp file: %w", err)
	}
	return nil
}

func (store *FileSessionStore) Clear() error {
	err := os.Remove(store.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
