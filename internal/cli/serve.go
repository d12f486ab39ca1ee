package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/server"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, db, backend string
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local /todos collection (json-server compatible)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := app.cfg.Serve
			flags := cmd.Flags()
			if flags.Changed("addr") {
				sc.Addr = addr
			}
			if flags.Changed("db") {
				sc.DB = db
			}
			if flags.Changed("backend") {
				sc.Backend = backend
			}
			if flags.Changed("watch") {
				sc.Watch = watch
			}
			return serve(cmd.Context(), app, sc.Addr, sc.DB, sc.Backend, sc.Watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, localhost:3000)")
	cmd.Flags().StringVar(&db, "db", "", "Database file (default db.json)")
	cmd.Flags().StringVar(&backend, "backend", "", "Storage backend: json or sqlite")
	cmd.Flags().BoolVar(&watch, "watch", true, "Announce external edits of the json database")
	return cmd
}

func openStore(ctx context.Context, backend, path string) (store.Store, error) {
	switch backend {
	case "", "json":
		return jsonstore.Open(path)
	case "sqlite":
		return sqlitestore.Open(ctx, path)
	}
	return nil, usagef("serve: unknown backend %q", backend)
}

func serve(ctx context.Context, app *App, addr, db, backend string, watch bool) error {
	st, err := openStore(ctx, backend, db)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(st, app.logger)
	if js, ok := st.(*jsonstore.Store); ok && watch {
		err := server.WatchFile(ctx, js.Path(), func() {
			app.logger.Debug("database changed on disk", "path", js.Path())
			srv.Publish(server.Event{Type: server.EventChanged, Op: "external"})
		})
		if err != nil {
			app.logger.Warn("not watching database", "err", err)
		}
	}
	app.logger.Info("collection", "url", fmt.Sprintf("http://%s/todos", addr), "backend", backend, "db", db)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
