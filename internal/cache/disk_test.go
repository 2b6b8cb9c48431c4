package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := Key("https://example.com/page")
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(key)
	if !found {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Errorf("got %q, want payload", got)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := Key("https://example.com/expiring")
	if err := c.Set(key, []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := c.Get(key); found {
		t.Error("expired entry must not be returned")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Hour, dir, time.Hour)

	key := Key("https://example.com/promote")
	// Write only to the disk layer.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set(key, []byte("cold"), 0); err != nil {
		t.Fatalf("disk Set failed: %v", err)
	}

	got, found := layered.Get(key)
	if !found || !bytes.Equal(got, []byte("cold")) {
		t.Fatalf("layered Get = (%q, %v), want disk value", got, found)
	}

	// Second read should hit memory even if the disk entry disappears.
	if err := disk.Delete(key); err != nil {
		t.Fatalf("disk Delete failed: %v", err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("expected promoted memory hit after disk delete")
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("https://example.com")
	b := Key("https://example.com")
	if a != b {
		t.Error("same URL must produce the same key")
	}
	if a == Key("https://example.org") {
		t.Error("different URLs must produce different keys")
	}
}
