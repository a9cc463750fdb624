package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/proofmine/proofmine-console/pkg/fs"
	"github.com/proofmine/proofmine-console/pkg/logging"
)

// ErrNoSession means no wallet session is persisted
var ErrNoSession = errors.New("no wallet session")

// Store persists the wallet session to a single file, owner-readable only
type Store struct {
	fs     fs.FileSystemAPI
	path   string
	logger logging.Logger
}

// NewStore creates a session store at the given path
func NewStore(filesystem fs.FileSystemAPI, path string, logger logging.Logger) (*Store, error) {
	if filesystem == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	if path == "" {
		return nil, fmt.Errorf("session path cannot be empty")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &Store{fs: filesystem, path: path, logger: logger}, nil
}

// Load reads the persisted session. ErrNoSession means none exists; a
// corrupt file is reported as its own error so the caller may discard it.
func (s *Store) Load() (*Session, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("session file is corrupt: %w", err)
	}
	return &session, nil
}

// Save persists the session, creating the data directory if needed
func (s *Store) Save(session *Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := s.fs.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.logger.Debugf("Session for %s saved to %s", session.WalletAddress, s.path)
	return nil
}

// Clear deletes the persisted session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
