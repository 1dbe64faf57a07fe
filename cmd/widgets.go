package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/urfave/cli/v3"
)

// WidgetAdd appends a widget for the given domain at the end of display order.
func (r *Runner) WidgetAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	domain, err := models.ParseDomain(cmd.String("domain"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	config := r.core.Widgets.Add(models.WidgetConfig{DomainType: domain})
	r.logger.Info("widget added", "domain", domain, "id", config.ID)

	r.writePlain("✓ Added %s widget at position %d\n", domain, config.Order)
	r.writePlain("  ID: %s\n", config.ID)
	return nil
}

// WidgetList prints widgets in display order, including what each is bound to.
func (r *Runner) WidgetList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	configs := r.core.Widgets.List()

	if cmd.Bool("json") {
		return r.writeJSON(configs, cmd.Bool("pretty"))
	}

	if len(configs) == 0 {
		return r.writePlain("No widgets yet. Add one with 'tripkit widget add'.\n")
	}

	r.writePlain("Widgets (%d):\n", len(configs))
	for _, config := range configs {
		binding := "unbound"
		if config.SelectedItemID != "" {
			if item, ok := r.core.FindItem(config.DomainType, config.SelectedItemID); ok {
				binding = item.Name
			}
		} else if _, ok := r.core.Pending.LinkFor(config.ID); ok {
			binding = "pending link"
		}
		r.writePlain("  %d. [%s] %s — %s\n", config.Order, config.DomainType, config.ID, binding)
	}
	return nil
}

// WidgetRemove deletes a widget; remaining widgets close the gap in order.
func (r *Runner) WidgetRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	id := cmd.String("id")
	if _, ok := r.core.Widgets.Get(id); !ok {
		return fmt.Errorf("%w: widget %q", shared.ErrNotFound, id)
	}

	r.core.Widgets.Remove(id)
	r.core.Pending.Cancel(id)
	r.logger.Info("widget removed", "id", id)

	r.writePlain("✓ Removed widget %s\n", id)
	return nil
}

// WidgetReorder applies a new display order. IDs omitted from the list are
// removed, matching a drag-and-drop surface submitting the full board.
func (r *Runner) WidgetReorder(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	var ids []string
	for _, id := range strings.Split(cmd.String("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: --ids must list at least one widget", shared.ErrInvalidArgument)
	}

	before := len(r.core.Widgets.List())
	r.core.Widgets.Reorder(ids)
	after := len(r.core.Widgets.List())

	r.logger.Info("widgets reordered", "kept", after, "dropped", before-after)

	r.writePlain("✓ Reordered %d widgets", after)
	if dropped := before - after; dropped > 0 {
		r.writePlain(" (%d removed)", dropped)
	}
	r.writePlain("\n")
	return nil
}

// WidgetBind points a widget at an existing item of its domain.
func (r *Runner) WidgetBind(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	id := cmd.String("id")
	itemID := cmd.String("item")

	config, ok := r.core.Widgets.Get(id)
	if !ok {
		return fmt.Errorf("%w: widget %q", shared.ErrNotFound, id)
	}

	item, ok := r.core.FindItem(config.DomainType, itemID)
	if !ok {
		return fmt.Errorf("%w: %s item %q", shared.ErrNotFound, config.DomainType, itemID)
	}

	r.core.Widgets.Update(id, func(c *models.WidgetConfig) { c.SelectedItemID = itemID })
	r.core.Pending.Cancel(id)
	r.logger.Info("widget bound", "id", id, "item", itemID)

	r.writePlain("✓ Bound widget %s to %q\n", id, item.Name)
	return nil
}

// WidgetUnbind clears a widget's binding without touching the item.
func (r *Runner) WidgetUnbind(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	id := cmd.String("id")
	if _, ok := r.core.Widgets.Get(id); !ok {
		return fmt.Errorf("%w: widget %q", shared.ErrNotFound, id)
	}

	r.core.Widgets.Update(id, func(c *models.WidgetConfig) { c.SelectedItemID = "" })
	r.logger.Info("widget unbound", "id", id)

	r.writePlain("✓ Unbound widget %s\n", id)
	return nil
}

// WidgetRequest creates a fresh item of the widget's domain and binds it.
func (r *Runner) WidgetRequest(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	id := cmd.String("id")
	config, ok := r.core.Widgets.Get(id)
	if !ok {
		return fmt.Errorf("%w: widget %q", shared.ErrNotFound, id)
	}

	name := cmd.String("name")
	if name == "" {
		name = fmt.Sprintf("New %s", config.DomainType)
	}

	item, err := r.core.RequestItemForWidget(id, config.DomainType, name)
	if err != nil {
		return fmt.Errorf("failed to create item for widget: %w", err)
	}

	r.logger.Info("widget item created", "widget", id, "item", item.ID)

	r.writePlain("✓ Created %s %q and bound it to widget %s\n", config.DomainType, item.Name, id)
	return nil
}

// WidgetCancel drops a widget's pending item link, if any.
func (r *Runner) WidgetCancel(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	id := cmd.String("id")
	if _, ok := r.core.Pending.LinkFor(id); !ok {
		return r.writePlain("No pending link for widget %s\n", id)
	}

	r.core.Pending.Cancel(id)
	r.logger.Info("pending link cancelled", "widget", id)

	r.writePlain("✓ Cancelled pending link for widget %s\n", id)
	return nil
}
