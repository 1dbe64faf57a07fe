package store

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	tktesting "github.com/desertthunder/tripkit/internal/testing"
)

func newTestCache(t *testing.T, adapter Adapter, tier *models.Tier) *Cache {
	t.Helper()

	logger := shared.NewLogger(&bytes.Buffer{})
	gate := NewGate(func() models.Tier { return *tier }, false)

	return NewCache(CacheOpts{Adapter: adapter, Gate: gate, Logger: logger})
}

func TestCache(t *testing.T) {
	def := json.RawMessage(`{"countdowns":[]}`)
	value := json.RawMessage(`{"countdowns":[{"id":"c1","name":"Trip"}]}`)

	t.Run("Read After Write Regardless Of Tier", func(t *testing.T) {
		for _, tier := range []models.Tier{models.TierAnonymous, models.TierStandard, models.TierPremium, models.TierAdmin} {
			t.Run(string(tier), func(t *testing.T) {
				tier := tier
				cache := newTestCache(t, NewMemoryAdapter(), &tier)

				cache.Set("disney-countdowns", value)
				got := cache.Get("disney-countdowns", def)
				if string(got) != string(value) {
					t.Errorf("get after set returned %s, want %s", got, value)
				}
			})
		}
	})

	t.Run("Anonymous Session Is Memory Only", func(t *testing.T) {
		tier := models.TierAnonymous
		adapter := NewMemoryAdapter()

		cache := newTestCache(t, adapter, &tier)
		cache.Set("disney-countdowns", value)

		if adapter.Len() != 0 {
			t.Error("anonymous write must not touch durable storage")
		}

		// Fresh session over the same adapter: nothing was persisted.
		fresh := newTestCache(t, adapter, &tier)
		if got := fresh.Get("disney-countdowns", def); string(got) != string(def) {
			t.Errorf("fresh anonymous session returned %s, want default", got)
		}
	})

	t.Run("Standard Session Writes Through", func(t *testing.T) {
		tier := models.TierStandard
		adapter := NewMemoryAdapter()

		cache := newTestCache(t, adapter, &tier)
		cache.Set("disney-countdowns", value)

		fresh := newTestCache(t, adapter, &tier)
		if got := fresh.Get("disney-countdowns", def); string(got) != string(value) {
			t.Errorf("fresh standard session returned %s, want persisted value", got)
		}
	})

	t.Run("Tier Toggle Changes Only Durable Touches", func(t *testing.T) {
		tier := models.TierAnonymous
		adapter := tktesting.NewCountingAdapter()

		cache := newTestCache(t, adapter, &tier)

		cache.Set("k", value)
		if adapter.Writes() != 0 {
			t.Errorf("expected no durable writes while anonymous, got %d", adapter.Writes())
		}
		if got := cache.Get("k", def); string(got) != string(value) {
			t.Errorf("in-memory result changed while anonymous: %s", got)
		}

		tier = models.TierPremium
		cache.Set("k", value)
		if adapter.Writes() != 1 {
			t.Errorf("expected one durable write after upgrade, got %d", adapter.Writes())
		}
		if got := cache.Get("k", def); string(got) != string(value) {
			t.Errorf("in-memory result changed after upgrade: %s", got)
		}
	})

	t.Run("Gate Refusal Skips Durable Read", func(t *testing.T) {
		tier := models.TierAnonymous
		adapter := tktesting.NewCountingAdapter()
		adapter.Seed("k", value)

		cache := newTestCache(t, adapter, &tier)
		if got := cache.Get("k", def); string(got) != string(def) {
			t.Errorf("anonymous miss returned %s, want default", got)
		}
		if adapter.Reads() != 0 {
			t.Errorf("anonymous miss touched durable storage %d times", adapter.Reads())
		}
	})

	t.Run("Durable Read Populates Cache", func(t *testing.T) {
		tier := models.TierStandard
		adapter := tktesting.NewCountingAdapter()
		adapter.Seed("k", value)

		cache := newTestCache(t, adapter, &tier)

		if got := cache.Get("k", def); string(got) != string(value) {
			t.Fatalf("miss returned %s, want persisted value", got)
		}
		cache.Get("k", def)

		if adapter.Reads() != 1 {
			t.Errorf("second get should hit the cache, adapter saw %d reads", adapter.Reads())
		}
	})

	t.Run("Malformed Persisted Data Treated As Absent", func(t *testing.T) {
		tier := models.TierStandard
		adapter := tktesting.NewCountingAdapter()
		adapter.Seed("k", json.RawMessage(`{"items":[`))

		cache := newTestCache(t, adapter, &tier)

		if got := cache.Get("k", def); string(got) != string(def) {
			t.Errorf("corrupt record returned %s, want default", got)
		}

		// No repaired value is written back until the next legitimate write.
		if adapter.Writes() != 0 {
			t.Errorf("corrupt read triggered %d write-backs", adapter.Writes())
		}
	})

	t.Run("Storage Failure Degrades To Memory", func(t *testing.T) {
		tier := models.TierPremium
		cache := newTestCache(t, &tktesting.FailingAdapter{}, &tier)

		cache.Set("k", value)
		if got := cache.Get("k", def); string(got) != string(value) {
			t.Errorf("cache lost the value after a failed durable write: %s", got)
		}
	})

	t.Run("Update Merges Under One Lock", func(t *testing.T) {
		tier := models.TierStandard
		cache := newTestCache(t, NewMemoryAdapter(), &tier)

		type wrapper struct {
			Items []string `json:"items"`
		}

		appendItem := func(name string) func(json.RawMessage) json.RawMessage {
			return func(raw json.RawMessage) json.RawMessage {
				var w wrapper
				if err := json.Unmarshal(raw, &w); err != nil {
					t.Fatalf("failed to unmarshal current value: %v", err)
				}
				w.Items = append(w.Items, name)
				out, _ := json.Marshal(w)
				return out
			}
		}

		empty := json.RawMessage(`{"items":[]}`)
		cache.Update("k", empty, appendItem("a"))
		cache.Update("k", empty, appendItem("b"))

		var w wrapper
		if err := json.Unmarshal(cache.Get("k", empty), &w); err != nil {
			t.Fatalf("failed to unmarshal result: %v", err)
		}
		if len(w.Items) != 2 || w.Items[0] != "a" || w.Items[1] != "b" {
			t.Errorf("update lost or reordered items: %v", w.Items)
		}
	})
}
