// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUCache_BasicOperations(t *testing.T) {
	c := NewLRUCache[[]int](3, time.Minute)

	c.Add("a", []int{1})
	c.Add("b", []int{2, 3})

	got, found := c.Get("b")
	if !found {
		t.Fatal("expected to find key 'b'")
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Get(b) = %v, want [2 3]", got)
	}
	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	c := NewLRUCache[int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// 'a' becomes most recently used, so 'b' is evicted next.
	c.Get("a")
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("expected %q to be present", key)
		}
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Add("a", 1)
	c.Add("a", 2)

	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRUCache_TTLExpiration(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("a", 1)
	if _, found := c.Get("a"); !found {
		t.Fatal("expected to find 'a' before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, found := c.Get("a"); found {
		t.Error("expected 'a' to expire")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after lazy expiry, want 0", c.Len())
	}
}

func TestLRUCache_CleanupExpired(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("old1", 1)
	c.Add("old2", 2)
	now = now.Add(90 * time.Second)
	c.Add("fresh", 3)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if _, found := c.Get("fresh"); !found {
		t.Error("expected 'fresh' to survive cleanup")
	}
}

func TestLRUCache_Clear(t *testing.T) {
	c := NewLRUCache[string](5, time.Minute)
	c.Add("a", "x")
	c.Add("b", "y")

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Add("c", "z")
	if _, found := c.Get("c"); !found {
		t.Error("cache unusable after Clear")
	}
}

func TestLRUCache_Stats(t *testing.T) {
	c := NewLRUCache[int](5, time.Minute)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("Stats() = %+v, want hits=2 misses=1 size=1", stats)
	}
	if got, want := stats.HitRate(), 2.0/3.0; got != want {
		t.Errorf("HitRate() = %v, want %v", got, want)
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("HitRate() of empty stats should be 0")
	}
}

func TestLRUCache_Defaults(t *testing.T) {
	c := NewLRUCache[int](0, 0)
	if c.capacity != 10000 {
		t.Errorf("capacity = %d, want 10000", c.capacity)
	}
	if c.ttl != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", c.ttl)
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := NewLRUCache[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("%d-%d", g, i%50)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity 100", c.Len())
	}
}
