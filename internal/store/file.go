package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
)

// FileStore keeps each key in its own JSON file under a data
// directory. Writes go through a temp file plus rename so a crash
// never leaves a half-written collection behind.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %v", apperrors.ErrStorage, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: reading %s: %v", apperrors.ErrStorage, key, err)
	}
	if err := unmarshalEnvelope(raw, key, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Put(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := marshalEnvelope(value)
	if err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", apperrors.ErrStorage, key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("%w: committing %s: %v", apperrors.ErrStorage, key, err)
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: deleting %s: %v", apperrors.ErrStorage, key, err)
	}
	return nil
}
