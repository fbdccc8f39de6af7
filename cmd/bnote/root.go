package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"bnote/internal/config"
	"bnote/internal/store"
)

type app struct {
	cfg      config.Config
	dbPath   string
	timezone string
	verbose  bool
	now      func() time.Time
}

func newApp() *app {
	return &app{now: time.Now}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bnote",
		Short:         "note management",
		Long:          "bnote lists and exports notes kept in a single SQLite table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return a.loadConfig(cmd)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database file (default $BNOTE_DB_PATH or note.db)")
	root.PersistentFlags().StringVar(&a.timezone, "timezone", "", "IANA timezone for today (default $BNOTE_TIMEZONE or Local)")

	root.AddCommand(
		newListCmd(a),
		newMDCmd(a),
		newInitCmd(a),
		newAddCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil && a.timezone == "" {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.timezone != "" {
		cfg.TimezoneName = a.timezone
		loc, err := config.LoadLocation(a.timezone)
		if err != nil {
			return err
		}
		cfg.Location = loc
	}
	a.cfg = cfg
	slog.Debug("config", "db", cfg.DBPath, "timezone", cfg.Location.String(), "command", cmd.Name())
	return nil
}

// openStore opens the configured database and makes sure the schema exists.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.OpenWithOptions(a.cfg.DBPath, store.OpenOptions{
		BusyTimeout: a.cfg.DBBusyTimeout,
		LockTimeout: a.cfg.DBLockTimeout,
	})
	if err != nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
