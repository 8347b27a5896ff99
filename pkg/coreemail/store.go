package coreemail

import (
	"context"
	"maps"
	"sync"
)

// Options is the legacy-delimited payload of one override as kept on disk:
// Message is the HTML body and Object the subject, both in `<% %>` syntax.
type Options struct {
	From          any    `json:"from,omitempty"`
	Message       string `json:"message"`
	Object        string `json:"object"`
	ResponseEmail string `json:"response_email,omitempty"`
}

// Settings is one override slot: send options plus the visual editor design.
type Settings struct {
	Options Options        `json:"options"`
	Design  map[string]any `json:"design,omitempty"`
}

// SettingsStore is the external key-value store holding the core email
// overrides. Get returns an empty map when the key holds nothing yet.
type SettingsStore interface {
	Get(ctx context.Context, key string) (map[string]Settings, error)
	Set(ctx context.Context, key string, value map[string]Settings) error
}

// MemorySettingsStore is an in-memory SettingsStore for development and
// testing.
type MemorySettingsStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]Settings
}

// NewMemorySettingsStore creates an empty in-memory settings store.
func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{slots: make(map[string]map[string]Settings)}
}

func (s *MemorySettingsStore) Get(ctx context.Context, key string) (map[string]Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[key]
	if !ok {
		return map[string]Settings{}, nil
	}
	return maps.Clone(slot), nil
}

func (s *MemorySettingsStore) Set(ctx context.Context, key string, value map[string]Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = maps.Clone(value)
	return nil
}
