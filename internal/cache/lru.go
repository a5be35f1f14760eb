package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/voxgo/resource"
)

// LRU is a size-bounded least-recently-used map.
//
// A single entry larger than the capacity is still admitted; it becomes the
// first eviction candidate on the next Add. Likewise, when the resource
// controller refuses an entry and nothing is left to evict, the entry is
// admitted over the budget and charged with ForceAcquireMemory, so the
// controller's MemoryUsage still counts it. With one controller shared by n
// caches, usage can exceed the limit by up to n such entries.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[K]*list.Element
	evictList *list.List
	rc        *resource.Controller
	onEvict   func(key K, value V)

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key      K
	value    V
	size     int64
	reserved bool // size is held in rc's limit, not forced
}

// NewLRU creates a cache bounded to capacity bytes. capacity <= 0 means
// unbounded. rc and onEvict may be nil.
func NewLRU[K comparable, V any](capacity int64, rc *resource.Controller, onEvict func(key K, value V)) *LRU[K, V] {
	return &LRU[K, V]{
		capacity:  capacity,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
		rc:        rc,
		onEvict:   onEvict,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Contains reports whether key is cached without touching recency or stats.
func (c *LRU[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Add inserts or replaces key as the most recently used entry and evicts
// older entries until the cache fits its capacity and the resource
// controller admits the new entry.
func (c *LRU[K, V]) Add(key K, value V, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		// Replace without eviction callback.
		c.removeElement(el)
	}

	if c.capacity > 0 {
		for c.size+size > c.capacity && c.evictList.Len() > 0 {
			c.evictElement(c.evictList.Back())
		}
	}

	reserved := c.rc.TryAcquireMemory(size)
	for !reserved && c.evictList.Len() > 0 {
		c.evictElement(c.evictList.Back())
		reserved = c.rc.TryAcquireMemory(size)
	}
	if !reserved {
		c.rc.ForceAcquireMemory(size)
	}

	el := c.evictList.PushFront(&entry[K, V]{key: key, value: value, size: size, reserved: reserved})
	c.items[key] = el
	c.size += size
}

// Remove deletes key without calling the eviction callback.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := c.removeElement(el)
		return ent.value, true
	}
	var zero V
	return zero, false
}

// EvictOldest pushes the least recently used entry through the eviction
// callback. It returns false when the cache is empty.
func (c *LRU[K, V]) EvictOldest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el := c.evictList.Back()
	if el == nil {
		return false
	}
	c.evictElement(el)
	return true
}

// Drain removes every entry, oldest first, and returns them without calling
// the eviction callback.
func (c *LRU[K, V]) Drain() (keys []K, values []V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.evictList.Back(); el != nil; el = c.evictList.Back() {
		ent := c.removeElement(el)
		keys = append(keys, ent.key)
		values = append(values, ent.value)
	}
	return keys, values
}

// Keys returns the cached keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for el := c.evictList.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[K, V]).key)
	}
	return keys
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Size returns the current size of the cache in bytes.
func (c *LRU[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns hit and miss counts of Get.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *LRU[K, V]) evictElement(el *list.Element) {
	ent := c.removeElement(el)
	if c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}

func (c *LRU[K, V]) removeElement(el *list.Element) *entry[K, V] {
	c.evictList.Remove(el)
	ent := el.Value.(*entry[K, V])
	delete(c.items, ent.key)
	c.size -= ent.size
	if ent.reserved {
		c.rc.ReleaseMemory(ent.size)
	} else {
		c.rc.ReleaseForcedMemory(ent.size)
	}
	return ent
}
