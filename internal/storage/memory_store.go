package storage

import "sort"

// MemoryStore keeps items in a map. It never touches disk.
type MemoryStore struct {
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	s.items = make(map[string]string)
	return nil
}

func (s *MemoryStore) Load() error {
	if s.items == nil {
		s.items = make(map[string]string)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) Get(key string) (string, error) {
	if s.items == nil {
		return "", ErrNotLoaded
	}
	value, ok := s.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	if s.items == nil {
		return ErrNotLoaded
	}
	s.items[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	if s.items == nil {
		return ErrNotLoaded
	}
	delete(s.items, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	if s.items == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}
