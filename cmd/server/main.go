package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/monopoly-lobby/internal/archive"
	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/config"
	"github.com/DoyleJ11/monopoly-lobby/internal/history"
	"github.com/DoyleJ11/monopoly-lobby/internal/httpapi"
	"github.com/DoyleJ11/monopoly-lobby/internal/hub"
	"github.com/DoyleJ11/monopoly-lobby/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := board.DefaultCatalog()
	hubOpts := hub.Options{
		Logger:      log,
		MaxPlayers:  cfg.MaxPlayers,
		TurnTimeout: cfg.TurnTimeout,
		TradeTTL:    cfg.TradeOfferTTL,
		Actions:     history.Nop{},
	}
	routeOpts := httpapi.Options{
		Catalog:        catalog,
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		MessageRate:    cfg.MessageRate,
		MessageBurst:   cfg.MessageBurst,
	}

	if cfg.DatabaseURL != "" {
		store, err := archive.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		hubOpts.Results = store
		routeOpts.Results = store
		log.Info("results archive enabled")
	}

	if cfg.RedisAddr != "" {
		pub := history.New(history.Options{Addr: cfg.RedisAddr, Key: cfg.RedisKey})
		defer pub.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := pub.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn("action history unavailable, continuing without it", zap.Error(err))
		} else {
			hubOpts.Actions = pub
			log.Info("action history enabled", zap.String("key", cfg.RedisKey))
		}
	}

	h := hub.NewHub(ctx, hubOpts)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.SetupRoutes(h, routeOpts),
		ReadHeaderTimeout: 5 * time.Second,
		// Hijacked websocket connections outlive Shutdown, so their
		// request contexts hang off the signal context instead.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		h.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
