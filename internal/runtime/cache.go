package runtime

import (
	"sync"

	"github.com/kolkov/blex/internal/regex"
)

// Cache provides thread-safe prefilter caching with FIFO eviction, keyed by
// the rendered pattern of the regex. Lock-free reads via sync.Map.
type Cache struct {
	cache   sync.Map   // map[string]*Prefilter
	orderMu sync.Mutex // Protects order slice for eviction
	order   []string   // FIFO order for eviction
	size    int
	maxSize int
	config  Config
}

// NewCache creates a cache holding at most maxSize prefilters built with
// config.
func NewCache(maxSize int, config Config) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		config:  config,
	}
}

// Get returns the prefilter for r, building and caching it if needed.
// Lock-free on cache hit.
func (c *Cache) Get(r regex.Regex) *Prefilter {
	key := regex.Pattern(r)
	if p, ok := c.cache.Load(key); ok {
		metricCacheLookups.WithLabelValues("hit").Inc()
		return p.(*Prefilter)
	}
	metricCacheLookups.WithLabelValues("miss").Inc()

	p := New(r, c.config)

	// Another goroutine might have stored it already
	if existing, loaded := c.cache.LoadOrStore(key, p); loaded {
		return existing.(*Prefilter)
	}

	c.orderMu.Lock()
	c.order = append(c.order, key)
	c.size++
	for c.size > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.cache.Delete(oldest)
		c.size--
	}
	c.orderMu.Unlock()

	return p
}

// Len returns the number of cached prefilters.
func (c *Cache) Len() int {
	c.orderMu.Lock()
	n := c.size
	c.orderMu.Unlock()
	return n
}

