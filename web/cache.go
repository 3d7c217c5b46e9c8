package web

import (
	"math"
	"sync"
)

// lruTileListCache is a simple LRU (least recently used) cache for tile lists of already answered queries. It has an
// internal locking mechanism and can be used in concurrent goroutines. The recency of entries is measured by a counter
// increased on every access.
type lruTileListCache struct {
	tileLists       map[string][]int // Normalized query to tile ids
	lastAccessTimes map[string]int64 // Normalized query to access counter value of last access
	accessCounter   int64
	mutex           *sync.Mutex
	maxSize         int // Maximum number of entries this cache should hold
}

func newLruTileListCache(maxSize int) *lruTileListCache {
	return &lruTileListCache{
		tileLists:       map[string][]int{},
		lastAccessTimes: map[string]int64{},
		mutex:           &sync.Mutex{},
		maxSize:         maxSize,
	}
}

// get returns the cached tile list and true, or nil and false when the query is not cached.
func (c *lruTileListCache) get(key string) ([]int, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	tileIds, ok := c.tileLists[key]
	if ok {
		c.accessCounter++
		c.lastAccessTimes[key] = c.accessCounter
	}
	return tileIds, ok
}

// put adds or replaces the tile list of the query. If the cache is full, the entry that hasn't been used longest will
// be evicted.
func (c *lruTileListCache) put(key string, tileIds []int) {
	if c.maxSize <= 0 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.tileLists[key]; !ok && len(c.tileLists) >= c.maxSize {
		longestUnusedKey := c.getMinEntry()
		delete(c.tileLists, longestUnusedKey)
		delete(c.lastAccessTimes, longestUnusedKey)
	}

	c.accessCounter++
	c.lastAccessTimes[key] = c.accessCounter
	c.tileLists[key] = tileIds
}

func (c *lruTileListCache) size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.tileLists)
}

// getMinEntry returns the entry that hasn't been used longest. This function does NOT use locking and is meant for
// internal use only!
func (c *lruTileListCache) getMinEntry() string {
	minTimestamp := int64(math.MaxInt64)
	minKey := ""

	for key, timestamp := range c.lastAccessTimes {
		if timestamp < minTimestamp {
			minTimestamp = timestamp
			minKey = key
		}
	}

	return minKey
}
