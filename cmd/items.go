package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/urfave/cli/v3"
)

// ItemAdd creates a new item in the given domain.
func (r *Runner) ItemAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	domain, err := models.ParseDomain(cmd.String("domain"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	item, err := r.core.CreateItem(domain, cmd.String("name"))
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	r.logger.Info("item created", "domain", domain, "id", item.ID)

	r.writePlain("✓ Created %s: %s\n", domain, item.Name)
	r.writePlain("  ID: %s\n", item.ID)
	return nil
}

// ItemList prints all items in a domain.
func (r *Runner) ItemList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	domain, err := models.ParseDomain(cmd.String("domain"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	items := r.core.Items(domain)

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		return r.writePlain("No %s items yet. Create one with 'tripkit item add'.\n", domain)
	}

	r.writePlain("%s items (%d):\n", domain, len(items))
	for _, item := range items {
		r.writePlain("  %s  %s\n", item.ID, item.Name)
	}
	return nil
}

// ItemRename renames an item, either through the debounce window or, with
// --now, immediately.
func (r *Runner) ItemRename(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	domain, err := models.ParseDomain(cmd.String("domain"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	id := cmd.String("id")
	name := cmd.String("name")

	if _, ok := r.core.FindItem(domain, id); !ok {
		return fmt.Errorf("%w: %s item %q", shared.ErrNotFound, domain, id)
	}

	if cmd.Bool("now") {
		r.core.RenameItem(domain, id, name)
	} else {
		// Scheduled path: the commit sits in the debounce window until
		// teardown flushes it, same as a page unload would.
		r.core.ScheduleRename(domain, id, name)
	}
	r.logger.Info("item renamed", "domain", domain, "id", id)

	r.writePlain("✓ Renamed %s %s to %q\n", domain, id, name)
	return nil
}

// ItemDelete removes an item; widgets bound to it are unbound as part of the delete.
func (r *Runner) ItemDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	domain, err := models.ParseDomain(cmd.String("domain"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	id := cmd.String("id")
	if _, ok := r.core.FindItem(domain, id); !ok {
		return fmt.Errorf("%w: %s item %q", shared.ErrNotFound, domain, id)
	}

	r.core.DeleteItem(domain, id)
	r.logger.Info("item deleted", "domain", domain, "id", id)

	r.writePlain("✓ Deleted %s %s\n", domain, id)
	return nil
}
