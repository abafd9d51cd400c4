package storage

import "errors"

// ErrNotFound is returned by Get when the key has no stored value
var ErrNotFound = errors.New("key not found")

// Provider is the key-value persistence collaborator. Values are JSON
// documents stored as strings; the store never interprets them.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	// SetMany writes all entries atomically: either every key is updated or none is.
	SetMany(entries map[string]string) error
	// RemoveMany deletes all keys atomically. Missing keys are ignored.
	RemoveMany(keys []string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
