package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore stores each key as its own file inside a directory
type FileStore struct {
	dir    string
	closed bool
}

// NewFileStore creates the directory if needed and returns a store rooted there
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string) (string, bool, error) {
	if s.closed {
		return "", false, ErrClosed
	}
	if !validKey.MatchString(key) {
		return "", false, fmt.Errorf("invalid key %q", key)
	}

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes through a temp file renamed over the target; readers never see
// a partial value
func (s *FileStore) Set(key, value string) error {
	if s.closed {
		return ErrClosed
	}
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (s *FileStore) Close() error {
	s.closed = true
	return nil
}
