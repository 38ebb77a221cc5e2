package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/quitnow/internal/constants"
)

// Entry names a secret stored under the quitnow service
type Entry string

const (
	// ConnectionEntry holds the remote storage connection string
	ConnectionEntry Entry = constants.DefaultKeyringUser
	// RedisPasswordEntry holds the password for the Redis backend
	RedisPasswordEntry Entry = "redis-password"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnsupportedConnection is returned for connection strings no remote backend accepts
	ErrUnsupportedConnection = errors.New("connection string must start with postgres://, postgresql://, redis:// or rediss://")
)

// Get reads a secret. Returns ErrNotFound if nothing is stored.
func Get(entry Entry) (string, error) {
	value, err := keyring.Get(constants.AppName, string(entry))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores a secret, replacing any previous value.
func Set(entry Entry, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", entry)
	}
	if err := keyring.Set(constants.AppName, string(entry), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", entry, err)
	}
	return nil
}

// Delete removes a secret. Returns ErrNotFound if nothing was stored.
func Delete(entry Entry) error {
	if err := keyring.Delete(constants.AppName, string(entry)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", entry, err)
	}
	return nil
}

// IsRemoteConnection reports whether connStr selects a network backend
func IsRemoteConnection(connStr string) bool {
	for _, prefix := range []string{"postgres://", "postgresql://", "redis://", "rediss://"} {
		if strings.HasPrefix(connStr, prefix) {
			return true
		}
	}
	return false
}

// GetConnectionString retrieves the storage connection string from the OS keyring.
func GetConnectionString() (string, error) {
	return Get(ConnectionEntry)
}

// SetConnectionString stores a postgres or redis connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if !IsRemoteConnection(connStr) {
		return ErrUnsupportedConnection
	}
	return Set(ConnectionEntry, connStr)
}

// DeleteConnectionString removes the stored connection string.
func DeleteConnectionString() error {
	return Delete(ConnectionEntry)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
