package resolver

import (
	"sync"
	"time"
)

type entry struct {
	expire  int64
	match   Match
	matched bool
}

type cache struct {
	dur   time.Duration
	max   int
	store map[string]entry
	stop  chan bool

	mux sync.RWMutex
}

// newCache creates a cache holding at most max entries
func newCache(expire, cleanInterval time.Duration, max int) *cache {
	c := &cache{
		dur:   expire,
		max:   max,
		store: make(map[string]entry),
		stop:  make(chan bool),
	}

	// run cleaner
	go c.cleaner(cleanInterval)

	return c
}

// Cache stores the parse result for given path. Nothing is stored once the
// cache is full.
func (c *cache) Cache(path string, m Match, matched bool) {
	c.mux.Lock()
	if _, found := c.store[path]; found || len(c.store) < c.max {
		c.store[path] = entry{time.Now().Add(c.dur).UnixNano(), m, matched}
	}
	c.mux.Unlock()
}

// Get returns the parse result for given path, if cached and not expired
func (c *cache) Get(path string) (m Match, matched, found bool) {
	c.mux.RLock()
	i, found := c.store[path]
	c.mux.RUnlock()
	if !found {
		return
	}
	if i.expire > 0 && time.Now().UnixNano() > i.expire {
		return Match{}, false, false
	}
	return i.match, i.matched, true
}

// Size returns the number of elements in the cache
func (c *cache) Size() int {
	c.mux.RLock()
	n := len(c.store)
	c.mux.RUnlock()
	return n
}

// Close stops the cleaner
func (c *cache) Close() { close(c.stop) }

// prune removes all expired items
func (c *cache) prune() {
	c.mux.Lock()
	now := time.Now().UnixNano()
	for k, v := range c.store {
		if v.expire > 0 && now > v.expire {
			delete(c.store, k)
		}
	}
	c.mux.Unlock()
}

// cleaner runs at provided intervals to prune the store of expired items
func (c *cache) cleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for {
		select {
		case <-ticker.C:
			c.prune()
		case <-c.stop:
			ticker.Stop()
			return
		}
	}
}
