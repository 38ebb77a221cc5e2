package storage

import "errors"

// ErrNotFound is returned by Get when no record is stored under the key.
var ErrNotFound = errors.New("record not found")

// Provider is the persistence adapter: a key-value store of named JSON blobs.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Remove deletes the record; removing a missing key is not an error.
	Remove(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
