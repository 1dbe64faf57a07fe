package store

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/shared"
)

// Cache is the write-through cache between the UI and durable storage.
//
// The in-memory map is authoritative for the session: Set updates it
// unconditionally before consulting the gate, so the UI reflects every write
// immediately even when persistence is refused. The mutex guards the map and
// every read-modify-write sequence; the original design relied on a
// single-threaded event loop, this one does not.
type Cache struct {
	mu      sync.Mutex
	mem     map[string]json.RawMessage
	adapter Adapter
	gate    *Gate
	logger  *log.Logger
	retry   *RetryQueue
}

// CacheOpts contains configuration options for creating a Cache.
type CacheOpts struct {
	Adapter Adapter
	Gate    *Gate
	Logger  *log.Logger
	Retry   *RetryQueue // optional; nil keeps writes fire-and-forget
}

// NewCache creates a Cache with the provided adapter and gate.
func NewCache(opts CacheOpts) *Cache {
	if opts.Adapter == nil {
		opts.Adapter = NewMemoryAdapter()
	}
	if opts.Gate == nil {
		opts.Gate = NewGate(nil, false)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Cache{
		mem:     make(map[string]json.RawMessage),
		adapter: opts.Adapter,
		gate:    opts.Gate,
		logger:  opts.Logger,
		retry:   opts.Retry,
	}
}

// Get returns the value stored under key, or def when nothing usable exists.
//
// A cached value wins unconditionally regardless of tier, which is what lets
// anonymous sessions see their own edits. On a cache miss the durable adapter
// is consulted only when the gate permits; malformed persisted data is
// treated as absent with no repair write-back.
func (c *Cache) Get(key string, def json.RawMessage) json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.getLocked(key, def)
}

// Set stores value under key: cache first, unconditionally, then durable
// storage when the gate permits. The order is load-bearing.
func (c *Cache) Set(key string, value json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(key, value)
}

// Update is the read-modify-write composition of Get and Set under one lock.
// merge receives the current value (or def on first touch) and returns the
// replacement; a nil return leaves the entry untouched, in memory and on disk.
func (c *Cache) Update(key string, def json.RawMessage, merge func(json.RawMessage) json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := merge(c.getLocked(key, def))
	if next == nil {
		return
	}

	c.setLocked(key, next)
}

func (c *Cache) getLocked(key string, def json.RawMessage) json.RawMessage {
	if value, ok := c.mem[key]; ok {
		return value
	}

	if !c.gate.Permits() {
		return def
	}

	value, ok, err := c.adapter.Read(key)
	if err != nil {
		c.logger.Warn("durable read failed, serving default", "key", key, "err", err)
		return def
	}
	if !ok {
		return def
	}
	if !json.Valid(value) {
		// Unreadable history is never fatal; the next legitimate write replaces it.
		c.logger.Warn("malformed persisted record, serving default", "key", key)
		return def
	}

	c.mem[key] = value
	return value
}

func (c *Cache) setLocked(key string, value json.RawMessage) {
	c.mem[key] = value

	if !c.gate.Permits() {
		return
	}

	if err := c.adapter.Write(key, value); err != nil {
		c.logger.Warn("durable write failed, keeping value in memory", "key", key, "err", err)
		if c.retry != nil {
			c.retry.Enqueue(key, value)
		}
	}
}
