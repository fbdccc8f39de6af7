package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"bnote/internal/config"
	"bnote/internal/logging"
	"bnote/internal/store"
	"bnote/internal/web"
)

func main() {
	cfg, cfgErr := config.Load()
	closeLog, err := logging.Setup(os.Stdout, logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		File:   cfg.LogFile,
	})
	if err != nil {
		slog.Error("open log file", "path", cfg.LogFile, "err", err)
	}
	defer closeLog()
	if cfgErr != nil {
		slog.Error("load config", "err", cfgErr)
		os.Exit(1)
	}

	st, err := store.OpenWithOptions(cfg.DBPath, store.OpenOptions{
		BusyTimeout: cfg.DBBusyTimeout,
		LockTimeout: cfg.DBLockTimeout,
	})
	if err != nil {
		slog.Error("open store", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.Init(ctx); err != nil {
		cancel()
		slog.Error("init store", "err", err)
		os.Exit(1)
	}
	cancel()

	srv, err := web.NewServer(cfg, st)
	if err != nil {
		slog.Error("new server", "err", err)
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		sig := <-sigs
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			slog.Warn("shutdown", "err", err)
		}
	}()

	slog.Info("listening", "addr", cfg.ListenAddr, "base_url", cfg.BaseURL, "db", cfg.DBPath, "timezone", cfg.Location.String())
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
