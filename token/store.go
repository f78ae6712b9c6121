// Package token persists the What-to-Watch authentication token.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultKey is the well-known key the token is stored under
const DefaultKey = "wtw-token"

// Store persists a single token
type Store interface {
	// Save persists token, overwriting any prior value
	Save(token string) error
	// Drop removes the stored token
	Drop() error
	// Read returns the stored token or "" when none is stored
	Read() string
}

// FileStore keeps the token in a JSON document on disk
type FileStore struct {
	fs     afero.Fs
	path   string
	key    string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(fs afero.Fs, path, key string, logger zerolog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("token file path is required")
	}
	if key == "" {
		key = DefaultKey
	}

	return &FileStore{
		fs:     fs,
		path:   path,
		key:    key,
		logger: logger,
	}, nil
}

// Save persists token, overwriting any prior value
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[s.key] = token

	return s.write(entries)
}

// Drop removes the stored token. The file itself is removed once empty.
func (s *FileStore) Drop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[s.key]; !ok {
		return nil
	}
	delete(entries, s.key)

	if len(entries) == 0 {
		if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove token file: %w", err)
		}
		return nil
	}
	return s.write(entries)
}

// Read returns the stored token or "" when none is stored
func (s *FileStore) Read() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to read token file")
		return ""
	}
	return entries[s.key]
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	entries := make(map[string]string)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) write(entries map[string]string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode token file: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// MemoryStore keeps the token in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Drop() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Read() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
