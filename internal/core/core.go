// Package core is the composition root for the persistence and binding
// layer: it builds the write-through cache, the four domain collections, the
// widget registry, the pending link table, the auto-link reconciler, and the
// debounced commit scheduler, and wires their lifecycle hooks together.
//
// Everything is constructor-injected; there are no module-level singletons,
// so tests can build an isolated Core per run.
package core

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/collections"
	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/scheduler"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/desertthunder/tripkit/internal/store"
	"github.com/desertthunder/tripkit/internal/widgets"
)

// Core holds the wired persistence and binding layer for one session.
type Core struct {
	Cache      *store.Cache
	Countdowns *collections.Collection[models.Countdown, *models.Countdown]
	Budgets    *collections.Collection[models.Budget, *models.Budget]
	Packing    *collections.Collection[models.PackingList, *models.PackingList]
	Planner    *collections.Collection[models.PlannerDay, *models.PlannerDay]
	Widgets    *widgets.Registry
	Pending    *widgets.PendingTable
	Reconciler *widgets.Reconciler
	Scheduler  *scheduler.Scheduler

	logger *log.Logger
}

// Opts contains configuration options for creating a Core.
type Opts struct {
	Adapter     store.Adapter
	Tier        store.TierSource
	ForceWrites bool
	QuietPeriod time.Duration
	Logger      *log.Logger
	Retry       *store.RetryQueue
}

// New builds a fully wired Core.
func New(opts Opts) *Core {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	gate := store.NewGate(opts.Tier, opts.ForceWrites)
	cache := store.NewCache(store.CacheOpts{
		Adapter: opts.Adapter,
		Gate:    gate,
		Logger:  opts.Logger,
		Retry:   opts.Retry,
	})

	c := &Core{
		Cache:      cache,
		Countdowns: collections.New[models.Countdown](models.DomainCountdown, cache, opts.Logger),
		Budgets:    collections.New[models.Budget](models.DomainBudget, cache, opts.Logger),
		Packing:    collections.New[models.PackingList](models.DomainPacking, cache, opts.Logger),
		Planner:    collections.New[models.PlannerDay](models.DomainPlanner, cache, opts.Logger),
		Scheduler:  scheduler.New(opts.QuietPeriod, opts.Logger),
		logger:     opts.Logger,
	}

	c.Widgets = widgets.NewRegistry(cache, opts.Logger)
	c.Pending = widgets.NewPendingTable(cache, opts.Logger)
	c.Reconciler = widgets.NewReconciler(c.Widgets, c.Pending, opts.Logger)

	// Creation feeds the auto-link reconciler; deletion feeds widget
	// reference cleanup. Both run synchronously with the mutation.
	onCreate := func(itemID string, domain models.Domain) {
		c.Reconciler.ItemCreated(itemID, domain)
	}
	onDelete := func(itemID string, domain models.Domain) {
		c.Widgets.CleanupReferencesTo(itemID, domain)
	}

	c.Countdowns.OnCreate(onCreate)
	c.Countdowns.OnDelete(onDelete)
	c.Budgets.OnCreate(onCreate)
	c.Budgets.OnDelete(onDelete)
	c.Packing.OnCreate(onCreate)
	c.Packing.OnDelete(onDelete)
	c.Planner.OnCreate(onCreate)
	c.Planner.OnDelete(onDelete)

	return c
}

// ItemSummary is the domain-agnostic view of one item, used by the CLI and
// the dashboard TUI.
type ItemSummary struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}

// Items lists the summaries for one domain in stored order.
func (c *Core) Items(domain models.Domain) []ItemSummary {
	var out []ItemSummary

	switch domain {
	case models.DomainCountdown:
		for _, item := range c.Countdowns.List() {
			out = append(out, ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt})
		}
	case models.DomainBudget:
		for _, item := range c.Budgets.List() {
			out = append(out, ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt})
		}
	case models.DomainPacking:
		for _, item := range c.Packing.List() {
			out = append(out, ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt})
		}
	case models.DomainPlanner:
		for _, item := range c.Planner.List() {
			out = append(out, ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt})
		}
	}

	return out
}

// FindItem resolves one item by id. A miss means "unbound", not an error.
func (c *Core) FindItem(domain models.Domain, id string) (ItemSummary, bool) {
	for _, item := range c.Items(domain) {
		if item.ID == id {
			return item, true
		}
	}
	return ItemSummary{}, false
}

// CreateItem creates a default-shaped item of the given domain. Creation
// flows through the owning collection, so the auto-link reconciler sees it.
func (c *Core) CreateItem(domain models.Domain, name string) (ItemSummary, error) {
	now := time.Now()

	switch domain {
	case models.DomainCountdown:
		item, err := c.Countdowns.Create(models.Countdown{
			Meta:       models.Meta{Name: name},
			TargetDate: now.AddDate(0, 0, 30),
		})
		if err != nil {
			return ItemSummary{}, err
		}
		return ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt}, nil
	case models.DomainBudget:
		item, err := c.Budgets.Create(models.Budget{Meta: models.Meta{Name: name}})
		if err != nil {
			return ItemSummary{}, err
		}
		return ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt}, nil
	case models.DomainPacking:
		item, err := c.Packing.Create(models.PackingList{Meta: models.Meta{Name: name}})
		if err != nil {
			return ItemSummary{}, err
		}
		return ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt}, nil
	case models.DomainPlanner:
		item, err := c.Planner.Create(models.PlannerDay{
			Meta: models.Meta{Name: name},
			Date: now,
		})
		if err != nil {
			return ItemSummary{}, err
		}
		return ItemSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt}, nil
	}

	return ItemSummary{}, fmt.Errorf("%w: %s", shared.ErrUnknownDomain, domain)
}

// RenameItem renames an item immediately, bypassing the debounce window.
func (c *Core) RenameItem(domain models.Domain, id, name string) {
	switch domain {
	case models.DomainCountdown:
		c.Countdowns.Update(id, func(item *models.Countdown) { item.Name = name })
	case models.DomainBudget:
		c.Budgets.Update(id, func(item *models.Budget) { item.Name = name })
	case models.DomainPacking:
		c.Packing.Update(id, func(item *models.PackingList) { item.Name = name })
	case models.DomainPlanner:
		c.Planner.Update(id, func(item *models.PlannerDay) { item.Name = name })
	}
}

// ScheduleRename arms the debounced commit for a rename. Rapid calls for the
// same item coalesce into one write; the commit revalidates existence through
// the collection, so an item deleted before the timer fires is a no-op.
func (c *Core) ScheduleRename(domain models.Domain, id, name string) {
	c.Scheduler.Schedule(domain, id, func() {
		c.RenameItem(domain, id, name)
	})
}

// DeleteItem removes an item through its owning collection, which fires the
// widget reference cleanup.
func (c *Core) DeleteItem(domain models.Domain, id string) {
	switch domain {
	case models.DomainCountdown:
		c.Countdowns.Delete(id)
	case models.DomainBudget:
		c.Budgets.Delete(id)
	case models.DomainPacking:
		c.Packing.Delete(id)
	case models.DomainPlanner:
		c.Planner.Delete(id)
	}
}

// RequestItemForWidget is the non-blocking "give me a new item of type X"
// flow: the widget registers a pending link, then item creation runs and the
// reconciler binds the result before this returns.
func (c *Core) RequestItemForWidget(widgetID string, domain models.Domain, name string) (ItemSummary, error) {
	c.Pending.Register(widgetID, domain)

	item, err := c.CreateItem(domain, name)
	if err != nil {
		// Creation failed; the widget keeps its pending link until it is
		// retried or cancelled.
		return ItemSummary{}, err
	}

	return item, nil
}

// Flush commits every armed debounce timer now. Call before shutdown.
func (c *Core) Flush() {
	c.Scheduler.Flush()
}
