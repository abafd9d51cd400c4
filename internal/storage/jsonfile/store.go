// Package jsonfile stores every key in a single JSON document on disk,
// for setups that want a hand-editable data file instead of a database.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/habitcards/internal/storage"
)

type document struct {
	Version int               `json:"version"`
	Data    map[string]string `json:"data"`
}

type Store struct {
	mu   sync.Mutex
	path string
	doc  *document
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.doc = &document{Version: 1, Data: make(map[string]string)}
	return s.save(s.doc)
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != nil {
		return nil
	}
	return s.load()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitcards init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]string)
	}
	s.doc = doc
	return nil
}

// save writes to a temp file and renames it so a crash never leaves half a document
func (s *Store) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string { return s.path }

func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.doc.Data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

func (s *Store) Remove(key string) error {
	return s.RemoveMany([]string{key})
}

func (s *Store) SetMany(entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	return s.mutate(func(data map[string]string) {
		for k, v := range entries {
			data[k] = v
		}
	})
}

func (s *Store) RemoveMany(keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.mutate(func(data map[string]string) {
		for _, k := range keys {
			delete(data, k)
		}
	})
}

// mutate applies fn to a copy and only swaps it in once the file is written
func (s *Store) mutate(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &document{Version: s.doc.Version, Data: make(map[string]string, len(s.doc.Data))}
	for k, v := range s.doc.Data {
		next.Data[k] = v
	}
	fn(next.Data)

	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.doc.Data))
	for k := range s.doc.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
