package persist

import "errors"

// DefaultKey is the entry the task list is stored under.
const DefaultKey = "todos"

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the byte key-value store the adapter writes through.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(key string, value []byte) error
	// Close releases the backend.
	Close() error
}
