// Package kvstore provides the prefix-keyed key-value store backing the
// booking data. Records are serialized as JSON, held in memory and mirrored
// to a snapshot file so a profile survives restarts.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"

	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
)

// ErrKeyNotFound is returned when the requested key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Store is a JSON-over-file key-value store. The application itself is
// single-user, but the HTTP binding may overlap requests, so access is
// serialized with a mutex.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache
	path  string
}

// New creates a store persisted at path. An empty path keeps the store
// purely in memory (used by tests).
func New(path string) (*Store, error) {
	s := &Store{
		cache: cache.New(cache.NoExpiration, 0),
		path:  path,
	}
	if path != "" {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
	}
	return s, nil
}

// Put serializes value and stores it under key, replacing any previous value.
func (s *Store) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(key, data, cache.NoExpiration)
	return s.snapshot()
}

// Get decodes the value stored under key into dest. It returns
// ErrKeyNotFound for a missing key and an explicit decode error for a
// malformed stored value.
func (s *Store) Get(key string, dest interface{}) error {
	s.mu.Lock()
	raw, ok := s.cache.Get(key)
	s.mu.Unlock()

	if !ok {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal(raw.([]byte), dest); err != nil {
		return apperrors.Decode(key, err)
	}
	return nil
}

// Delete removes the value stored under key, if any.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(key)
	return s.snapshot()
}

// Keys returns all keys with the given prefix, sorted.
func (s *Store) Keys(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// HasPrefix reports whether at least one key with the given prefix exists.
func (s *Store) HasPrefix(prefix string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// putRaw stores an already-serialized value. Exposed for tests that need to
// seed malformed records.
func (s *Store) putRaw(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(key, data, cache.NoExpiration)
	return s.snapshot()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	for key, raw := range records {
		s.cache.Set(key, []byte(raw), cache.NoExpiration)
	}
	return nil
}

// snapshot writes the full store to disk via a temp file rename, so a crash
// mid-write never leaves a truncated snapshot. Callers must hold s.mu.
func (s *Store) snapshot() error {
	if s.path == "" {
		return nil
	}

	records := make(map[string]json.RawMessage, s.cache.ItemCount())
	for key, item := range s.cache.Items() {
		records[key] = json.RawMessage(item.Object.([]byte))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return os.Rename(tmp, s.path)
}
