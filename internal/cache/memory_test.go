package cache

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_SetGet_NoTTL(t *testing.T) {
	c := NewMemoryCache[int]()
	c.Set("a", 1, 0)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit with value 1, got ok=%v v=%v", ok, v)
	}
	if c.Len() != 1 {
		t.Fatalf("expected Len=1, got %d", c.Len())
	}
}

func TestMemoryCache_TTL_Expiry(t *testing.T) {
	c := NewMemoryCache[string]()

	// Freeze time via now indirection
	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	c.Set("k", "v", time.Second)
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected hit before expiry")
	}

	base = base.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
	c.PurgeExpired()
	if c.Len() != 0 {
		t.Fatalf("expected Len=0 after purge, got %d", c.Len())
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache[int]()
	c.Set("1", 10, 0)
	c.Set("2", 20, 0)
	c.Delete("1")
	if _, ok := c.Get("1"); ok {
		t.Fatalf("expected key 1 to be deleted")
	}
	if c.Len() != 1 {
		t.Fatalf("expected Len=1, got %d", c.Len())
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		key := string(rune('a' + i%26))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < 100; r++ {
				c.Set(key, r, 0)
				_, _ = c.Get(key)
			}
		}()
	}
	wg.Wait()
	if c.Len() != 26 {
		t.Fatalf("expected 26 keys, got %d", c.Len())
	}
}

func TestMemoryCache_JanitorStops(t *testing.T) {
	c := NewMemoryCache[int]()
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		c.Janitor(time.Millisecond, stop)
		close(done)
	}()
	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("janitor did not stop")
	}
}
