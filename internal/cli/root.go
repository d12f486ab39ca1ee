// Package cli wires configuration, logging and the collection client into
// the todo command tree. With no subcommand it opens the interactive list.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/live"
	"github.com/idilsaglam/tada/internal/loader"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

type App struct {
	ConfigPath string
	Endpoint   string
	Theme      string
	Live       bool
	LogLevel   string
	NoColor    bool

	cfg     config.Config
	logger  *log.Logger
	closer  io.Closer
	printer *ui.Printer
	ind     *loader.Indicator

	out, errOut io.Writer
}

func NewRootCmd(app *App) *cobra.Command {
	if app.out == nil {
		app.out = os.Stdout
	}
	if app.errOut == nil {
		app.errOut = os.Stderr
	}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "To-do list backed by a remote collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  todo

  # Scriptable commands
  todo add "Buy milk"
  todo print --group
  todo done 2
  todo mv 3 1

  # Local collection on :3000
  todo serve --db db.json
`),
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "Path to a config file (TOML)")
	f.StringVar(&app.Endpoint, "endpoint", "", "Collection URL (default "+config.DefaultEndpoint+")")
	f.StringVar(&app.Theme, "theme", "", "Theme: classic, neon or mono")
	f.BoolVar(&app.Live, "live", false, "Refresh on remote changes (needs todo serve)")
	f.StringVar(&app.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.BoolVar(&app.NoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newPrintCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMvCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// setup resolves config (flags win) and builds the logger and printer.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = app.Endpoint
	}
	if flags.Changed("theme") {
		cfg.Theme = app.Theme
	}
	if flags.Changed("live") {
		cfg.Live = app.Live
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{msg: "config validation: " + err.Error()}
	}
	app.cfg = cfg
	app.printer = ui.NewPrinter(app.out, app.errOut, cfg.Theme, app.NoColor)

	// The list owns the terminal, so it logs to a file.
	opts := logging.OptionsFrom(cfg.Log)
	if cmd == cmd.Root() && opts.File == "" {
		opts.File = logging.DefaultFile()
	}
	logger, closer, err := logging.New(opts, app.errOut)
	if err != nil {
		return err
	}
	app.logger, app.closer = logger, closer
	app.ind = loader.New()
	return nil
}

func (app *App) client() (*api.Client, error) {
	return api.NewClient(app.cfg.Endpoint,
		api.WithTimeout(app.cfg.Timeout),
		api.WithIndicator(app.ind),
		api.WithLogger(app.logger),
	)
}

// sorted fetches the list in display order.
func (app *App) sorted(ctx context.Context, c *api.Client) ([]model.Todo, error) {
	todos, err := c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	model.SortByPosition(todos)
	return todos, nil
}

func runTUI(ctx context.Context, app *App) error {
	c, err := app.client()
	if err != nil {
		return err
	}
	opts := tui.Options{
		Backend:   c,
		Indicator: app.ind,
		Theme:     app.cfg.Theme,
		Logger:    app.logger,
	}
	if app.cfg.Live {
		feed, err := live.FeedURL(c.Endpoint())
		if err == nil {
			opts.Changes, err = live.Subscribe(ctx, feed, app.logger)
		}
		if err != nil {
			app.logger.Warn("live refresh disabled", "err", err)
		}
	}
	app.logger.Info("starting", "endpoint", c.Endpoint())
	return tui.Run(ctx, opts)
}
