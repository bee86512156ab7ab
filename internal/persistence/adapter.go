// Package persistence stores the progress document and the display
// preference in a storage.Provider.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/curriculum"
	"github.com/julianstephens/lernplan/internal/logger"
	"github.com/julianstephens/lernplan/internal/models"
	"github.com/julianstephens/lernplan/internal/progress"
	"github.com/julianstephens/lernplan/internal/storage"
)

var (
	// ErrNoDocument is returned by Decode when nothing has been saved yet
	ErrNoDocument = errors.New("no saved progress")
	// ErrCorruptDocument wraps a parse failure of the saved progress
	ErrCorruptDocument = errors.New("saved progress is corrupt")
)

// Adapter reads and writes learner state. Reads never fail: anything that
// cannot be decoded is replaced by the default curriculum.
type Adapter struct {
	store storage.Provider

	// OnWriteError, if set, is called after a failed write.
	OnWriteError func(key string, err error)
}

func New(store storage.Provider) *Adapter {
	return &Adapter{store: store}
}

// Store returns the provider the adapter writes to
func (a *Adapter) Store() storage.Provider {
	return a.store
}

// Decode reads the saved document and recomputes derived fields.
func (a *Adapter) Decode() (models.ProgressDocument, error) {
	raw, err := a.store.Get(constants.KeyProgressDocument)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ProgressDocument{}, ErrNoDocument
		}
		return models.ProgressDocument{}, fmt.Errorf("failed to read progress: %w", err)
	}

	var doc models.ProgressDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return models.ProgressDocument{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.Weeks == nil {
		return models.ProgressDocument{}, fmt.Errorf("%w: missing weeks", ErrCorruptDocument)
	}
	return progress.Normalize(doc), nil
}

// Load returns the saved document, or the default curriculum when there is
// none or it cannot be read.
func (a *Adapter) Load() models.ProgressDocument {
	doc, err := a.Decode()
	switch {
	case err == nil:
		return doc
	case errors.Is(err, ErrNoDocument):
		logger.Debug("No saved progress, using defaults")
	default:
		logger.Warn("Failed to load saved progress, using defaults", "error", err)
	}
	return curriculum.Default()
}

// Save overwrites the saved document. Failures are logged and reported to
// OnWriteError, never returned. A nil week list is written as [] so the
// document decodes again.
func (a *Adapter) Save(doc models.ProgressDocument) {
	if doc.Weeks == nil {
		doc.Weeks = []models.Week{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		a.writeFailed(constants.KeyProgressDocument, fmt.Errorf("failed to encode progress: %w", err))
		return
	}
	if err := a.store.Set(constants.KeyProgressDocument, string(data)); err != nil {
		a.writeFailed(constants.KeyProgressDocument, err)
	}
}

// Clear removes the saved document.
func (a *Adapter) Clear() error {
	if err := a.store.Delete(constants.KeyProgressDocument); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

// DarkMode reports the saved display preference. Missing or unparsable
// values mean light mode.
func (a *Adapter) DarkMode() bool {
	raw, err := a.store.Get(constants.KeyDarkMode)
	if err != nil {
		return false
	}
	on, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Debug("Ignoring unparsable dark mode value", "value", raw)
		return false
	}
	return on
}

func (a *Adapter) SetDarkMode(on bool) {
	if err := a.store.Set(constants.KeyDarkMode, strconv.FormatBool(on)); err != nil {
		a.writeFailed(constants.KeyDarkMode, err)
	}
}

func (a *Adapter) writeFailed(key string, err error) {
	logger.Warn("Failed to save", "key", key, "error", err)
	if a.OnWriteError != nil {
		a.OnWriteError(key, err)
	}
}
