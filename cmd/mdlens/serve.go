package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kk-code-lab/mdlens/internal/api"
	"github.com/kk-code-lab/mdlens/internal/config"
	"github.com/kk-code-lab/mdlens/internal/markup"
	"github.com/kk-code-lab/mdlens/internal/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

const shutdownTimeout = 5 * time.Second

func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	if cfg.IsDevelopment() {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Logger()
}

func runServe(stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, stderr)

	st, err := store.New(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	// stop() or a caught signal cancels ctx.
	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	server := api.NewServer(st, markup.NewParser(), log, cfg)
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().
			Str("addr", cfg.HTTPServerAddress).
			Str("store", cfg.StoreBackend).
			Msg("start HTTP server")
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("cannot start HTTP server")
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("HTTP server: graceful shutdown")

		toCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(toCtx); err != nil {
			log.Error().Err(err).Msg("cannot shut down HTTP server gracefully")
			return err
		}
		log.Info().Msg("HTTP server stopped")
		return nil
	})

	return group.Wait()
}
