package storage

import (
	"errors"

	"github.com/julianstephens/lernplan/internal/migration"
)

var (
	// ErrNotFound is returned by Get when the key has no value
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a provider is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'lernplan init' first")
)

// Provider is a durable string key/value store scoped to one learner
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	Get(key string) (string, error)
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by providers whose schema is managed by migrations
type Versioned interface {
	SchemaStatus() (migration.Status, error)
}
