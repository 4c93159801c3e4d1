package cache

import (
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	store.Set("k", "v", time.Minute)
	if got, ok := store.Get("k"); !ok || got != "v" {
		t.Fatalf("expected v, got %q ok=%v", got, ok)
	}

	store.Delete("k")
	if _, ok := store.Get("k"); ok {
		t.Fatal("deleted key must be absent")
	}
}

func TestMemoryStore_ExpiredKeyNotServed(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	store.Set("k", "v", -time.Second)
	if _, ok := store.Get("k"); ok {
		t.Fatal("expired key must not be served")
	}
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	store.Close()
	store.Close()

	// A closed store still serves reads and writes.
	store.Set("k", "v", time.Minute)
	if got, ok := store.Get("k"); !ok || got != "v" {
		t.Fatalf("expected v after close, got %q ok=%v", got, ok)
	}
}
