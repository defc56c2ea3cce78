// Package store is the local durable cache: a synchronous mirror of the
// four bridge collections in a diskv key-value store. Each collection is
// rewritten in full on every mutation; reads default to empty collections
// when a key is missing or unparseable, so a damaged cache never blocks
// startup.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"bridgecal/internal/types"
)

// Keys for the four persisted collections.
const (
	KeyEvents     = "events"
	KeyHighlights = "highlights"
	KeyFeelings   = "feelings"
	KeyNames      = "names"
)

// Store persists the bridge collections under a base directory.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates the base directory if needed and returns a Store over it.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, fmt.Errorf("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return nil },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the cache directory.
func (s *Store) BasePath() string { return s.basePath }

// LoadEvents reads the cached events, defaulting to an empty slice.
func (s *Store) LoadEvents() []types.CalendarEvent {
	var events []types.CalendarEvent
	if !s.read(KeyEvents, &events) || events == nil {
		return []types.CalendarEvent{}
	}
	return events
}

// LoadHighlights reads the cached highlights mapping, defaulting to empty.
func (s *Store) LoadHighlights() map[string]types.DailyHighlight {
	var highlights map[string]types.DailyHighlight
	if !s.read(KeyHighlights, &highlights) || highlights == nil {
		return map[string]types.DailyHighlight{}
	}
	return highlights
}

// LoadFeelings reads the cached feelings, defaulting to an empty slice.
func (s *Store) LoadFeelings() []types.DailyFeeling {
	var feelings []types.DailyFeeling
	if !s.read(KeyFeelings, &feelings) || feelings == nil {
		return []types.DailyFeeling{}
	}
	return feelings
}

// LoadNames reads the cached display names, defaulting to role labels.
func (s *Store) LoadNames() types.Names {
	names := types.Names{}
	if !s.read(KeyNames, &names) || names.IsZero() {
		return types.DefaultNames()
	}
	return names
}

// SaveAll rewrites all four collections. The cache is treated as
// infallible by callers; the returned error is diagnostic only.
func (s *Store) SaveAll(events []types.CalendarEvent, highlights map[string]types.DailyHighlight, feelings []types.DailyFeeling, names types.Names) error {
	if err := s.write(KeyEvents, events); err != nil {
		return err
	}
	if err := s.write(KeyHighlights, highlights); err != nil {
		return err
	}
	if err := s.write(KeyFeelings, feelings); err != nil {
		return err
	}
	return s.write(KeyNames, names)
}

// read unmarshals a key into out, reporting whether a usable value was
// found. Parse failures are swallowed: the caller's default stands.
func (s *Store) read(key string, out any) bool {
	data, err := s.d.Read(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
		return false
	}
	return true
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}
