package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey_OrderIndependent(t *testing.T) {
	a := Key([]string{"57", "64"})
	b := Key([]string{"64", "57"})
	if a != b {
		t.Errorf("Expected identical keys for reordered ids, got %q and %q", a, b)
	}
	if a != "57,64" {
		t.Errorf("Expected key \"57,64\", got %q", a)
	}
}

func TestKey_DeduplicatesIDs(t *testing.T) {
	if got := Key([]string{"64", "57", "64", "57"}); got != "57,64" {
		t.Errorf("Expected deduplicated key \"57,64\", got %q", got)
	}
}

func TestKey_EmptyInput(t *testing.T) {
	if got := Key(nil); got != "" {
		t.Errorf("Expected empty key for no ids, got %q", got)
	}
}

func TestMemory_GetReturnsFreshValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5 * time.Minute)

	m.Set(ctx, "57,64", []byte(`{"ok":true}`))

	value, ok := m.Get(ctx, "57,64")
	if !ok {
		t.Fatal("Expected cache hit for fresh entry")
	}
	if string(value) != `{"ok":true}` {
		t.Errorf("Expected stored value, got %q", value)
	}
}

func TestMemory_MissForUnknownKey(t *testing.T) {
	m := NewMemory(5 * time.Minute)
	if _, ok := m.Get(context.Background(), "nope"); ok {
		t.Error("Expected miss for unknown key")
	}
}

func TestMemory_EntryExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemory(2 * time.Minute)
	m.now = func() time.Time { return now }

	m.Set(ctx, "k", []byte("v"))

	// Just inside the TTL.
	now = now.Add(2*time.Minute - time.Millisecond)
	if _, ok := m.Get(ctx, "k"); !ok {
		t.Error("Expected hit just inside TTL")
	}

	// At the TTL boundary the entry is logically absent.
	now = now.Add(time.Millisecond)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("Expected miss once entry age reached TTL")
	}
}

func TestMemory_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	m.Set(ctx, "k", []byte("old"))
	m.Set(ctx, "k", []byte("new"))

	value, ok := m.Get(ctx, "k")
	if !ok || string(value) != "new" {
		t.Errorf("Expected overwritten value \"new\", got %q (hit=%v)", value, ok)
	}
}

func TestMemory_ClearRemovesEverything(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	m.Set(ctx, "a", []byte("1"))
	m.Set(ctx, "b", []byte("2"))
	m.Clear(ctx)

	if _, ok := m.Get(ctx, "a"); ok {
		t.Error("Expected miss for key a after Clear")
	}
	if _, ok := m.Get(ctx, "b"); ok {
		t.Error("Expected miss for key b after Clear")
	}
}
