package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

type fileContents struct {
	Version int               `json:"version"`
	Items   map[string]string `json:"items"`
}

// JSONStore keeps all items in a single JSON file
type JSONStore struct {
	path  string
	store *fileContents
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Re-running init keeps an existing file
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.store = &fileContents{
		Version: 1,
		Items:   make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileContents{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Items == nil {
		s.store.Items = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a uniquely named temp file and renames it over the store so a
// failed write never truncates existing data
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tempPath := fmt.Sprintf("%s.%s.tmp", s.path, uuid.New().String())
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, error) {
	if s.store == nil {
		return "", ErrNotLoaded
	}
	value, ok := s.store.Items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Items[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Items[key]; !ok {
		return nil
	}
	delete(s.store.Items, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.store.Items))
	for k := range s.store.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
