// Package cache provides the bounded LRU cache used to keep parsed patterns.
//
// # Cache[K, V]
//
// A thread-safe cache with a strict capacity. When a Set would exceed the
// capacity, the least recently used entries are evicted. A capacity of 0
// means unlimited.
//
//	c := cache.New[string, pattern.Pattern](256)
//	c.Set("circle 10", p)
//	p, ok := c.Get("circle 10")
//
// Hits, misses and evictions are counted and reported by Stats.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex). Get and Set are separate critical sections: a
// value may be computed between a missed Get and the following Set without
// holding the lock, so computations may themselves use the cache.
package cache
