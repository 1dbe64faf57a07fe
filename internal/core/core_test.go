package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/desertthunder/tripkit/internal/store"
)

const quiet = 40 * time.Millisecond

func newTestCore(t *testing.T, adapter store.Adapter, tier models.Tier) *Core {
	t.Helper()

	c := New(Opts{
		Adapter:     adapter,
		Tier:        func() models.Tier { return tier },
		QuietPeriod: quiet,
		Logger:      shared.NewLogger(&bytes.Buffer{}),
	})
	t.Cleanup(c.Scheduler.Stop)
	return c
}

func TestCore(t *testing.T) {
	t.Run("Auto Link On Creation", func(t *testing.T) {
		c := newTestCore(t, store.NewMemoryAdapter(), models.TierStandard)

		widget := c.Widgets.Add(models.WidgetConfig{ID: "widget-A", DomainType: models.DomainCountdown})

		item, err := c.RequestItemForWidget(widget.ID, models.DomainCountdown, "Trip")
		if err != nil {
			t.Fatalf("failed to request item: %v", err)
		}

		// Synchronous contract: the binding is visible immediately.
		config, ok := c.Widgets.Get("widget-A")
		if !ok {
			t.Fatal("widget-A should exist")
		}
		if config.SelectedItemID != item.ID {
			t.Errorf("widget bound to %q, want %q", config.SelectedItemID, item.ID)
		}
		if _, ok := c.Pending.LinkFor("widget-A"); ok {
			t.Error("pending link should be consumed")
		}
	})

	t.Run("Unsolicited Creation Stays Unbound", func(t *testing.T) {
		c := newTestCore(t, store.NewMemoryAdapter(), models.TierStandard)

		c.Widgets.Add(models.WidgetConfig{ID: "widget-A", DomainType: models.DomainCountdown})

		if _, err := c.CreateItem(models.DomainCountdown, "Trip"); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		config, _ := c.Widgets.Get("widget-A")
		if config.SelectedItemID != "" {
			t.Errorf("no pending link, so nothing should bind, got %q", config.SelectedItemID)
		}
	})

	t.Run("Delete Cleans References", func(t *testing.T) {
		c := newTestCore(t, store.NewMemoryAdapter(), models.TierStandard)

		item, err := c.CreateItem(models.DomainBudget, "Food")
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}
		other, err := c.CreateItem(models.DomainBudget, "Hotels")
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		c.Widgets.Add(models.WidgetConfig{ID: "a", DomainType: models.DomainBudget, SelectedItemID: item.ID})
		c.Widgets.Add(models.WidgetConfig{ID: "b", DomainType: models.DomainBudget, SelectedItemID: item.ID})
		c.Widgets.Add(models.WidgetConfig{ID: "c", DomainType: models.DomainBudget, SelectedItemID: other.ID})

		c.DeleteItem(models.DomainBudget, item.ID)

		for _, tc := range []struct {
			id   string
			want string
		}{
			{"a", ""},
			{"b", ""},
			{"c", other.ID},
		} {
			config, _ := c.Widgets.Get(tc.id)
			if config.SelectedItemID != tc.want {
				t.Errorf("widget %s references %q, want %q", tc.id, config.SelectedItemID, tc.want)
			}
		}
	})

	t.Run("Debounced Rename Coalesces", func(t *testing.T) {
		c := newTestCore(t, store.NewMemoryAdapter(), models.TierStandard)

		item, err := c.CreateItem(models.DomainCountdown, "T")
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		// Simulated keystrokes: only the final state should commit.
		for _, name := range []string{"Tr", "Tri", "Trip"} {
			c.ScheduleRename(models.DomainCountdown, item.ID, name)
		}

		if got, _ := c.FindItem(models.DomainCountdown, item.ID); got.Name != "T" {
			t.Errorf("rename committed before the quiet period: %s", got.Name)
		}

		time.Sleep(quiet * 3)

		got, ok := c.FindItem(models.DomainCountdown, item.ID)
		if !ok {
			t.Fatal("item should still exist")
		}
		if got.Name != "Trip" {
			t.Errorf("expected coalesced rename to Trip, got %s", got.Name)
		}
	})

	t.Run("Commit After Delete Is No-Op", func(t *testing.T) {
		c := newTestCore(t, store.NewMemoryAdapter(), models.TierStandard)

		item, err := c.CreateItem(models.DomainPacking, "Bag")
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		c.ScheduleRename(models.DomainPacking, item.ID, "Backpack")
		c.DeleteItem(models.DomainPacking, item.ID)

		time.Sleep(quiet * 3)

		if _, ok := c.FindItem(models.DomainPacking, item.ID); ok {
			t.Error("the armed commit must not resurrect a deleted item")
		}
	})

	t.Run("Flush Commits Immediately", func(t *testing.T) {
		c := newTestCore(t, store.NewMemoryAdapter(), models.TierStandard)

		item, err := c.CreateItem(models.DomainPlanner, "Day 1")
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		c.ScheduleRename(models.DomainPlanner, item.ID, "Arrival Day")
		c.Flush()

		got, _ := c.FindItem(models.DomainPlanner, item.ID)
		if got.Name != "Arrival Day" {
			t.Errorf("flush should commit the pending rename, got %s", got.Name)
		}
	})

	t.Run("Anonymous Session Survives In Memory Only", func(t *testing.T) {
		adapter := store.NewMemoryAdapter()

		c := newTestCore(t, adapter, models.TierAnonymous)
		if _, err := c.CreateItem(models.DomainCountdown, "Trip"); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		if len(c.Items(models.DomainCountdown)) != 1 {
			t.Error("anonymous session should see its own edits")
		}

		// A fresh session over the same adapter starts empty.
		fresh := newTestCore(t, adapter, models.TierAnonymous)
		if len(fresh.Items(models.DomainCountdown)) != 0 {
			t.Error("nothing should have been persisted for an anonymous session")
		}
	})

	t.Run("Standard Session Survives Reload", func(t *testing.T) {
		adapter := store.NewMemoryAdapter()

		c := newTestCore(t, adapter, models.TierStandard)
		item, err := c.CreateItem(models.DomainCountdown, "Trip")
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		fresh := newTestCore(t, adapter, models.TierStandard)
		got, ok := fresh.FindItem(models.DomainCountdown, item.ID)
		if !ok {
			t.Fatal("persisted item should survive a fresh session")
		}
		if got.Name != "Trip" {
			t.Errorf("expected Trip, got %s", got.Name)
		}
	})
}
