package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/desertthunder/tripkit/internal/ui"
	"github.com/urfave/cli/v3"
)

// Dashboard launches the interactive terminal UI for widget and item management.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCore(cmd); err != nil {
		return err
	}
	defer r.teardown()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tripkit-dashboard.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(r.core)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}
