// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func sessionFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "tier",
			Usage: "Access tier override (anonymous, standard, premium, admin)",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep all data in memory, skip the database entirely",
		},
	}
	return append(flags, extra...)
}

// setupCommand handles initial configuration and database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file, database, and migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// itemCommand handles trip item operations across all domains.
func itemCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "item",
		Aliases: []string{"items"},
		Usage:   "Manage trip items (countdowns, budgets, packing lists, planner days)",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a new item",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Usage:    "Item domain (countdown, budget, packing, planner)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Item name",
						Required: true,
					},
				),
				Action: r.ItemAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List items in a domain",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Usage:    "Item domain (countdown, budget, packing, planner)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				),
				Action: r.ItemList,
			},
			{
				Name:  "rename",
				Usage: "Rename an item",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Usage:    "Item domain (countdown, budget, packing, planner)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Item ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "New item name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "now",
						Usage: "Commit immediately instead of through the debounce window",
					},
				),
				Action: r.ItemRename,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete an item and clear widgets bound to it",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Usage:    "Item domain (countdown, budget, packing, planner)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Item ID",
						Required: true,
					},
				),
				Action: r.ItemDelete,
			},
		},
	}
}

// widgetCommand handles dashboard widget configuration.
func widgetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "widget",
		Aliases: []string{"widgets"},
		Usage:   "Manage dashboard widgets and their item bindings",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a widget for a domain",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Usage:    "Widget domain (countdown, budget, packing, planner)",
						Required: true,
					},
				),
				Action: r.WidgetAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List widgets in display order",
				Flags: sessionFlags(
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				),
				Action: r.WidgetList,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a widget",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Widget ID",
						Required: true,
					},
				),
				Action: r.WidgetRemove,
			},
			{
				Name:  "reorder",
				Usage: "Reorder widgets; widgets omitted from the list are removed",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "ids",
						Usage:    "Comma-separated widget IDs in desired order",
						Required: true,
					},
				),
				Action: r.WidgetReorder,
			},
			{
				Name:  "bind",
				Usage: "Bind an existing item to a widget",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Widget ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "item",
						Usage:    "Item ID to bind",
						Required: true,
					},
				),
				Action: r.WidgetBind,
			},
			{
				Name:  "unbind",
				Usage: "Clear a widget's item binding",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Widget ID",
						Required: true,
					},
				),
				Action: r.WidgetUnbind,
			},
			{
				Name:  "request",
				Usage: "Create a new item and bind it to a widget in one step",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Widget ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Name for the new item",
					},
				),
				Action: r.WidgetRequest,
			},
			{
				Name:  "cancel",
				Usage: "Cancel a widget's pending item link",
				Flags: sessionFlags(
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Widget ID",
						Required: true,
					},
				),
				Action: r.WidgetCancel,
			},
		},
	}
}

// storeCommand handles database maintenance.
func storeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Inspect and maintain the durable store",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run pending database migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.StoreMigrate,
			},
			{
				Name:  "rollback",
				Usage: "Roll back the most recent migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.StoreRollback,
			},
			{
				Name:  "get",
				Usage: "Print the raw stored value for a key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:     "key",
						Aliases:  []string{"k"},
						Usage:    "Storage key, e.g. disney-countdowns",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.StoreGet,
			},
		},
	}
}

// dashboardCommand returns the top-level TUI command for interactive widget management.
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash", "ui"},
		Usage:   "Launch interactive dashboard for widgets and items",
		Flags:   sessionFlags(),
		Action:  r.Dashboard,
	}
}
