package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/core"
	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/desertthunder/tripkit/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	core   *core.Core

	db          *sql.DB
	retry       *store.RetryQueue
	retryCancel context.CancelFunc
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Core   *core.Core // pre-built core, used by tests
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		core:   opts.Core,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, itemCommand, widgetCommand, dashboardCommand, storeCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the Runner's logger, e.g. for TUI file logging.
func (r *Runner) SetLogger(l *log.Logger) { r.logger = l }

// ensureCore builds the session core from config and flags: the durable
// adapter (SQLite, or memory-only with --ephemeral), the tier source, and the
// optional retry queue. A pre-injected core is left alone.
func (r *Runner) ensureCore(cmd *cli.Command) error {
	if r.core != nil {
		return nil
	}

	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		r.config = config
	}

	tierLabel := cmd.String("tier")
	if tierLabel == "" {
		tierLabel = r.config.User.Tier
	}
	tier, err := models.ParseTier(tierLabel)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	var adapter store.Adapter
	if cmd.Bool("ephemeral") {
		adapter = store.NewMemoryAdapter()
	} else {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		r.db = db
		adapter = store.NewSQLiteAdapter(db)
	}

	if r.config.Retry.Enabled {
		interval := time.Duration(r.config.Retry.IntervalMS) * time.Millisecond
		r.retry = store.NewRetryQueue(adapter, r.logger, interval, r.config.Retry.Burst)

		ctx, cancel := context.WithCancel(context.Background())
		r.retryCancel = cancel
		r.retry.Start(ctx)
	}

	r.core = core.New(core.Opts{
		Adapter:     adapter,
		Tier:        func() models.Tier { return tier },
		QuietPeriod: time.Duration(r.config.Commit.QuietPeriodMS) * time.Millisecond,
		Logger:      r.logger,
		Retry:       r.retry,
	})

	return nil
}

// teardown flushes pending commits and releases session resources.
func (r *Runner) teardown() {
	if r.core != nil {
		r.core.Flush()
	}
	if r.retryCancel != nil {
		r.retryCancel()
		r.retry.Wait()
	}
	if r.db != nil {
		r.db.Close()
		r.db = nil
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
