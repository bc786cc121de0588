package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](10)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Capacity() != 10 {
		t.Errorf("Capacity() = %d, want 10", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestNewNegativeCapacity(t *testing.T) {
	c := New[string, int](-3)
	if c.Capacity() != 0 {
		t.Errorf("Capacity() = %d, want 0 (unlimited)", c.Capacity())
	}
	for i := 0; i < 1000; i++ {
		c.Set(strconv.Itoa(i), i)
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
}

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Set("circle 5", 21)
	v, ok := c.Get("circle 5")
	if !ok || v != 21 {
		t.Errorf("Get = (%d, %v), want (21, true)", v, ok)
	}

	c.Set("circle 5", 22)
	v, ok = c.Get("circle 5")
	if !ok || v != 22 {
		t.Errorf("Get after update = (%d, %v), want (22, true)", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key still present")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("unrelated key removed")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](10)
	for i := 0; i < 5; i++ {
		c.Set(strconv.Itoa(i), i)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Set("x", 1)
	if v, ok := c.Get("x"); !ok || v != 1 {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheEviction(t *testing.T) {
	c := New[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so that "b" becomes the least recently used entry.
	c.Get("a")
	c.Set("d", 4)

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry b should be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %s should be kept", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string, int](4)

	if s := c.Stats(); s.HitRate != 0 {
		t.Errorf("HitRate before lookups = %v, want 0", s.HitRate)
	}

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 3 || s.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 3/1", s.Hits, s.Misses)
	}
	if s.HitRate != 0.75 {
		t.Errorf("HitRate = %v, want 0.75", s.HitRate)
	}
	if s.Len != 1 || s.Capacity != 4 {
		t.Errorf("Len/Capacity = %d/%d, want 1/4", s.Len, s.Capacity)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](64)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				k := (g*1000 + i) % 128
				if v, ok := c.Get(k); ok && v != k*2 {
					t.Errorf("Get(%d) = %d, want %d", k, v, k*2)
				}
				c.Set(k, k*2)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds capacity 64", c.Len())
	}
}

func TestLRUListOrder(t *testing.T) {
	var l lruList[string, int]
	a := l.PushFront("a", 1)
	l.PushFront("b", 2)
	l.PushFront("c", 3)

	l.MoveToFront(a)

	want := []string{"b", "c", "a"}
	for _, k := range want {
		node := l.RemoveOldest()
		if node == nil || node.key != k {
			t.Fatalf("RemoveOldest = %v, want %s", node, k)
		}
	}
	if l.RemoveOldest() != nil || l.Len() != 0 {
		t.Error("list should be empty")
	}
}
