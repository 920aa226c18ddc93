// Package kvstore provides the string key/value storage that session state is persisted in.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

var ErrClosed = errors.New("kvstore: closed")

// Store is a flat string key/value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// LoadJSON decodes the value stored under key into out.
// It reports false when the key is absent or the stored value cannot be decoded;
// a corrupt value is logged and treated as absent so callers start empty.
func LoadJSON(s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("load %q: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("[kvstore] key=%s corrupt value discarded: %v", key, err)
		return false, nil
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.Set(key, string(b)); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
