package collections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/desertthunder/tripkit/internal/store"
)

// Record constrains a collection's element type to pointer-receiver
// implementations of [models.Item].
type Record[T any] interface {
	*T
	models.Item
}

// Hook observes an item lifecycle event. Hooks run synchronously with the
// triggering mutation; a caller that creates an item and then immediately
// inspects dependent state must observe the hook's effects.
type Hook func(itemID string, domain models.Domain)

// Collection manages the named item list for one content domain.
type Collection[T any, P Record[T]] struct {
	domain models.Domain
	cache  *store.Cache
	logger *log.Logger

	now   func() time.Time
	newID func() string

	onCreate Hook
	onDelete Hook
}

// New creates a Collection for the given domain over the shared cache.
func New[T any, P Record[T]](domain models.Domain, cache *store.Cache, logger *log.Logger) *Collection[T, P] {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Collection[T, P]{
		domain: domain,
		cache:  cache,
		logger: logger.With("domain", domain),
		now:    time.Now,
		newID:  shared.GenerateID,
	}
}

// Domain returns the content domain this collection owns.
func (c *Collection[T, P]) Domain() models.Domain { return c.domain }

// OnCreate registers the hook fired after each successful create.
func (c *Collection[T, P]) OnCreate(h Hook) { c.onCreate = h }

// OnDelete registers the hook fired after each successful delete.
func (c *Collection[T, P]) OnDelete(h Hook) { c.onDelete = h }

var emptyWrapper = json.RawMessage(`{"items":[]}`)

// wrapper is the persisted shape of a domain item list. The object wrapper
// (rather than a bare array) leaves room for schema evolution.
type wrapper[T any] struct {
	Items []T `json:"items"`
}

// List returns every item in the collection, or an empty slice.
func (c *Collection[T, P]) List() []T {
	return c.decode(c.cache.Get(c.domain.StorageKey(), emptyWrapper))
}

// FindByID returns the item with the given id, reporting whether it exists.
// Resolution failure is "unbound", never an error.
func (c *Collection[T, P]) FindByID(id string) (T, bool) {
	for _, item := range c.List() {
		if P(&item).ItemID() == id {
			return item, true
		}
	}

	var zero T
	return zero, false
}

// Create stamps identity and timestamps onto item, validates it, and appends
// it to the list. The creation hook fires before Create returns.
func (c *Collection[T, P]) Create(item T) (T, error) {
	p := P(&item)
	if p.ItemID() == "" {
		p.Stamp(c.newID(), c.now())
	}

	if err := p.Validate(); err != nil {
		var zero T
		return zero, fmt.Errorf("validation failed: %w", err)
	}

	c.mutate(func(items []T) ([]T, bool) {
		return append(items, item), true
	})

	c.logger.Debug("created item", "id", p.ItemID())
	if c.onCreate != nil {
		c.onCreate(p.ItemID(), c.domain)
	}

	return item, nil
}

// Update applies mutate to the item with the given id and stamps UpdatedAt.
// A missing id is a silent no-op: deletion races are expected and tolerated.
func (c *Collection[T, P]) Update(id string, mutate func(P)) {
	c.mutate(func(items []T) ([]T, bool) {
		for i := range items {
			p := P(&items[i])
			if p.ItemID() != id {
				continue
			}

			mutate(p)
			p.Touch(c.now())
			return items, true
		}
		return items, false
	})
}

// Delete removes the item with the given id, firing the deletion hook so
// widget references to it can be reconciled. Unknown ids are a no-op.
func (c *Collection[T, P]) Delete(id string) {
	removed := false
	c.mutate(func(items []T) ([]T, bool) {
		kept := items[:0]
		for _, item := range items {
			if P(&item).ItemID() == id {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		return kept, removed
	})

	if removed {
		c.logger.Debug("deleted item", "id", id)
		if c.onDelete != nil {
			c.onDelete(id, c.domain)
		}
	}
}

// mutate runs apply against the decoded list under the cache's lock. When
// apply reports no change, the stored value is left untouched.
func (c *Collection[T, P]) mutate(apply func([]T) ([]T, bool)) {
	c.cache.Update(c.domain.StorageKey(), emptyWrapper, func(raw json.RawMessage) json.RawMessage {
		next, changed := apply(c.decode(raw))
		if !changed {
			return nil
		}

		out, err := json.Marshal(wrapper[T]{Items: next})
		if err != nil {
			c.logger.Error("failed to encode item list, dropping mutation", "err", err)
			return nil
		}
		return out
	})
}

// decode unpacks a persisted item list, accepting both the wrapped shape and
// the legacy bare-array shape. Legacy data is upgraded in memory only; the
// durable record is rewritten on the next legitimate write.
func (c *Collection[T, P]) decode(raw json.RawMessage) []T {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			c.logger.Warn("malformed legacy item list, treating as empty", "err", err)
			return nil
		}
		return items
	}

	var w wrapper[T]
	if err := json.Unmarshal(raw, &w); err != nil {
		c.logger.Warn("malformed item list, treating as empty", "err", err)
		return nil
	}
	return w.Items
}
