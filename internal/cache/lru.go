// internal/cache/lru.go
//
// True Relief Physio – parsed-template cache.
//
// Context
//   The view engine parses a template set per component page ("pages/home",
//   "booking/book", ...) and keeps the result here so repeat renders skip
//   disk and parse work.  The whole site has a few dozen entries at most, so
//   a small bounded LRU over container/list is plenty; eviction only matters
//   if the capacity is configured absurdly low.
//
//------------------------------------------------------------------------------

package cache

import "container/list"

// LRU is a least-recently-used cache.  Keys must be comparable; values can
// be any.  Callers synchronize access (the view engine holds its own lock
// around Get/Add).
type LRU struct {
	cap  int
	ll   *list.List
	dict map[any]*list.Element
}

type pair struct {
	key any
	val any
}

// New returns an LRU with the given capacity.  Panics on capacity < 1.
func New(capacity int) *LRU {
	if capacity < 1 {
		panic("cache: capacity must be at least 1")
	}
	return &LRU{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[any]*list.Element, capacity),
	}
}

// Get retrieves a value and marks it most recently used.
func (c *LRU) Get(key any) (val any, ok bool) {
	if ele, hit := c.dict[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pair).val, true
	}
	return nil, false
}

// Add inserts or updates a value, evicting the oldest entry when the cache
// is full.
func (c *LRU) Add(key, val any) {
	if ele, hit := c.dict[key]; hit {
		ele.Value = pair{key, val}
		c.ll.MoveToFront(ele)
		return
	}
	ele := c.ll.PushFront(pair{key, val})
	c.dict[key] = ele
	if c.ll.Len() > c.cap {
		last := c.ll.Back()
		c.ll.Remove(last)
		delete(c.dict, last.Value.(pair).key)
	}
}

// Len reports the current entry count.
func (c *LRU) Len() int { return c.ll.Len() }
