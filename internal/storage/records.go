package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/quitnow/internal/errors"
)

// GetJSON decodes the record stored under key into v.
// It returns ErrNotFound for a missing key and an error wrapping
// apperrors.ErrCorruptRecord when the payload does not decode.
func GetJSON(p Provider, key string, v any) error {
	data, err := p.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.Corrupt(key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(p Provider, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := p.Set(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// IsAbsent reports whether err means the record should be treated as missing:
// either it was never stored or it is unreadable.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrCorruptRecord)
}

// CopyAll copies every record from src to dst and returns how many were copied.
func CopyAll(src, dst Provider) (int, error) {
	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source records: %w", err)
	}
	for i, key := range keys {
		data, err := src.Get(key)
		if err != nil {
			return i, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := dst.Set(key, data); err != nil {
			return i, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}
