// Package cache provides TTL memoization for expensive upstream fetches.
//
// Values are opaque byte slices (callers marshal their own types) so the same
// Store interface works for the in-memory store and the Redis-backed store
// used when several instances share one upstream quota. Expiry is lazy; there
// is no background sweep and no eviction, which is acceptable because the key
// space is bounded by the small set of team-ID combinations seen in practice.
package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store memoizes values for a fixed TTL chosen at construction.
type Store interface {
	// Get returns the value stored under key if it is still fresh.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key, overwriting any prior entry.
	Set(ctx context.Context, key string, value []byte)
	// Clear removes all entries unconditionally.
	Clear(ctx context.Context)
}

// Key derives a deterministic cache key from a set of identifiers. The ids are
// deduplicated and sorted first, so logically-equivalent requests hit the same
// entry regardless of argument order.
func Key(ids []string) string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)
	return strings.Join(unique, ",")
}

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// Memory is a mutex-guarded in-process Store.
type Memory struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]memoryEntry

	now func() time.Time
}

// NewMemory creates an in-memory store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the stored value if present and younger than the TTL.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(entry.storedAt) >= m.ttl {
		delete(m.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key with the current timestamp.
func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{value: value, storedAt: m.now()}
}

// Clear removes every entry.
func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)
}
