// Package kv provides the key-value string stores the board persists into.
package kv

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a store that has been closed
var ErrClosed = errors.New("kv store closed")

// Store is a key-value string store, in the shape of a browser's local storage.
// A missing key is reported as ok == false with a nil error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open opens the named backend rooted at dataDir
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(dataDir)
	case BackendSQLite:
		return NewSQLiteStore(SQLitePath(dataDir))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
