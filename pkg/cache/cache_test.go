package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "frame:abc", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "frame:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(data) != "payload" {
		t.Errorf("Get = %q, %v", data, ok)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("hit on absent key")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expired entry returned")
	}
}

func TestFileCacheBinaryPayload(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	// Frame bytes are arbitrary binary, including NULs and newlines.
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, '\n', 0xff, 0x00}
	if err := c.Set(ctx, "frame:bin", payload, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "frame:bin")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || !bytes.Equal(data, payload) {
		t.Errorf("Get = %v, %v, want exact payload back", data, ok)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Truncate the entry below the expiry header.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("k"), []byte{1, 2}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("corrupt entry should be a miss, got ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(fc.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("deleted entry returned")
	}
	// Deleting again is not an error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestKeyerStability(t *testing.T) {
	k := NewDefaultKeyer()
	opts := FrameKeyOpts{Theme: "midnight", Width: 800, Height: 600, Zoom: 1.5, Format: "png"}

	a := k.FrameKey("hash1", opts)
	b := k.FrameKey("hash1", opts)
	if a != b {
		t.Errorf("same inputs gave different keys: %s vs %s", a, b)
	}

	opts.Zoom = 2.0
	if k.FrameKey("hash1", opts) == a {
		t.Error("zoom change did not change the key")
	}
	if k.FrameKey("hash2", FrameKeyOpts{Theme: "midnight", Width: 800, Height: 600, Zoom: 1.5, Format: "png"}) == a {
		t.Error("graph change did not change the key")
	}
	if k.GraphKey("hash1") == a {
		t.Error("graph and frame keys collide")
	}
}

func TestScopedKeyerPrefixes(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "session:42:")

	got := scoped.GraphKey("abc")
	want := "session:42:" + inner.GraphKey("abc")
	if got != want {
		t.Errorf("GraphKey = %s, want %s", got, want)
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "p:")
	if fallback.GraphKey("abc") != "p:"+inner.GraphKey("abc") {
		t.Error("nil inner not defaulted")
	}
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("err = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryableDetection(t *testing.T) {
	base := errors.New("boom")
	if IsRetryable(base) {
		t.Error("plain error reported retryable")
	}
	if !IsRetryable(Retryable(base)) {
		t.Error("wrapped error not reported retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
}
