// Package state holds the four bridge collections in memory and applies
// the merge policy that reconciles them with remote snapshots. Every
// mutation is mirrored synchronously to the durable cache before the
// change hook (the sync engine's push trigger) fires.
package state

import (
	"fmt"
	"os"
	"sync"

	"bridgecal/internal/schedule"
	"bridgecal/internal/store"
	"bridgecal/internal/types"
)

// ChangeHook runs after a local mutation has been persisted. The sync
// engine registers its push here; pull merges deliberately do not fire it.
type ChangeHook func()

// Bridge is the in-memory state shared by the UI, CLI, and sync engine.
type Bridge struct {
	mu         sync.RWMutex
	events     []types.CalendarEvent
	highlights map[string]types.DailyHighlight
	feelings   []types.DailyFeeling
	names      types.Names

	store    *store.Store // nil in pure in-memory tests
	onChange ChangeHook
}

// New loads a Bridge from the durable cache. A nil store yields an empty
// in-memory bridge.
func New(st *store.Store) *Bridge {
	b := &Bridge{
		events:     []types.CalendarEvent{},
		highlights: map[string]types.DailyHighlight{},
		feelings:   []types.DailyFeeling{},
		names:      types.DefaultNames(),
		store:      st,
	}
	if st != nil {
		b.events = st.LoadEvents()
		b.highlights = st.LoadHighlights()
		b.feelings = st.LoadFeelings()
		b.names = st.LoadNames()
	}
	return b
}

// Reload re-reads every collection from the cache, replacing in-memory
// state. Safe at any time: mutations persist before returning, so the
// cache is never behind memory. Used when another process (a sync daemon)
// writes the cache underneath a running UI. Does not fire the change hook.
func (b *Bridge) Reload() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reloadLocked()
}

func (b *Bridge) reloadLocked() {
	if b.store == nil {
		return
	}
	b.events = b.store.LoadEvents()
	b.highlights = b.store.LoadHighlights()
	b.feelings = b.store.LoadFeelings()
	b.names = b.store.LoadNames()
}

// OnChange registers the hook fired after every local mutation.
func (b *Bridge) OnChange(fn ChangeHook) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// AddEvent appends a new event and persists.
func (b *Bridge) AddEvent(e types.CalendarEvent) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.persistLocked()
	hook := b.onChange
	b.mu.Unlock()
	fire(hook)
}

// DeleteEvent removes the event with the given id. Unknown ids are a
// no-op and do not fire the change hook.
func (b *Bridge) DeleteEvent(id string) {
	b.mu.Lock()
	before := len(b.events)
	b.events = schedule.DeleteEvent(b.events, id)
	changed := len(b.events) != before
	if changed {
		b.persistLocked()
	}
	hook := b.onChange
	b.mu.Unlock()
	if changed {
		fire(hook)
	}
}

// AddFeeling appends a feeling and persists. Feelings are append-only.
func (b *Bridge) AddFeeling(f types.DailyFeeling) {
	b.mu.Lock()
	b.feelings = append(b.feelings, f)
	b.persistLocked()
	hook := b.onChange
	b.mu.Unlock()
	fire(hook)
}

// SetHighlight upserts the single highlight for its dateKey, replacing any
// previous entry wholesale.
func (b *Bridge) SetHighlight(h types.DailyHighlight) {
	b.mu.Lock()
	b.highlights[h.DateKey] = h
	b.persistLocked()
	hook := b.onChange
	b.mu.Unlock()
	fire(hook)
}

// SetNames replaces both display labels.
func (b *Bridge) SetNames(n types.Names) {
	b.mu.Lock()
	b.names = n
	b.persistLocked()
	hook := b.onChange
	b.mu.Unlock()
	fire(hook)
}

// Events returns a copy of the event collection in insertion order.
func (b *Bridge) Events() []types.CalendarEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]types.CalendarEvent, len(b.events))
	copy(out, b.events)
	return out
}

// EventsFor returns a copy of one owner's events in insertion order.
func (b *Bridge) EventsFor(owner types.Owner) []types.CalendarEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]types.CalendarEvent, 0, len(b.events))
	for _, e := range b.events {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out
}

// Highlight returns the highlight for a dateKey, if set.
func (b *Bridge) Highlight(dateKey string) (types.DailyHighlight, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h, ok := b.highlights[dateKey]
	return h, ok
}

// FeelingsFor returns the feelings attached to a dateKey in append order,
// optionally filtered by owner ("" keeps both sides).
func (b *Bridge) FeelingsFor(dateKey string, owner types.Owner) []types.DailyFeeling {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]types.DailyFeeling, 0, len(b.feelings))
	for _, f := range b.feelings {
		if f.DateKey != dateKey {
			continue
		}
		if owner != "" && f.Owner != owner {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Names returns the current display labels.
func (b *Bridge) Names() types.Names {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.names
}

// Snapshot copies the full state into a replication envelope. LastUpdated
// is left zero; the sync engine stamps it at push time.
func (b *Bridge) Snapshot() types.SharedData {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data := types.SharedData{
		Events:     make([]types.CalendarEvent, len(b.events)),
		Highlights: make(map[string]types.DailyHighlight, len(b.highlights)),
		Feelings:   make([]types.DailyFeeling, len(b.feelings)),
		Names:      b.names,
	}
	copy(data.Events, b.events)
	copy(data.Feelings, b.feelings)
	for k, v := range b.highlights {
		data.Highlights[k] = v
	}
	return data
}

// MergeResult reports what a pull merge added locally.
type MergeResult struct {
	NewEvents   []types.CalendarEvent
	NewFeelings []types.DailyFeeling
}

// Merge folds a remote envelope into local state:
//
//   - events and feelings merge by union-by-id: remote records with unseen
//     ids are appended; ids present on both sides keep the local record and
//     the remote content is discarded silently. Nothing is ever removed.
//   - highlights merge by shallow overwrite: every remote dateKey entry
//     replaces the local one (remote wins, asymmetric with the array
//     policy; preserved behavior, see DESIGN.md).
//   - names are replaced wholesale when the remote carries any.
//
// Merge is idempotent and, on disjoint id sets, commutative. It persists
// but does not fire the change hook.
//
// The cache is re-read first: another process (a CLI mutation beside a
// running daemon) may have written it since this bridge loaded, and
// persisting a merge over stale collections would erase those writes.
// Mutations persist before returning, so the re-read never discards
// anything held only in memory.
func (b *Bridge) Merge(remote types.SharedData) MergeResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reloadLocked()

	result := MergeResult{}

	seen := make(map[string]struct{}, len(b.events))
	for _, e := range b.events {
		seen[e.ID] = struct{}{}
	}
	for _, e := range remote.Events {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		b.events = append(b.events, e)
		result.NewEvents = append(result.NewEvents, e)
	}

	seenFeelings := make(map[string]struct{}, len(b.feelings))
	for _, f := range b.feelings {
		seenFeelings[f.ID] = struct{}{}
	}
	for _, f := range remote.Feelings {
		if _, ok := seenFeelings[f.ID]; ok {
			continue
		}
		seenFeelings[f.ID] = struct{}{}
		b.feelings = append(b.feelings, f)
		result.NewFeelings = append(result.NewFeelings, f)
	}

	for key, h := range remote.Highlights {
		b.highlights[key] = h
	}

	if !remote.Names.IsZero() {
		b.names = remote.Names
	}

	b.persistLocked()
	return result
}

func (b *Bridge) persistLocked() {
	if b.store == nil {
		return
	}
	if err := b.store.SaveAll(b.events, b.highlights, b.feelings, b.names); err != nil {
		fmt.Fprintf(os.Stderr, "state: persist: %v\n", err)
	}
}

func fire(hook ChangeHook) {
	if hook != nil {
		hook()
	}
}
