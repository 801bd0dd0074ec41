// Command cpbridged serves the competitive-programming tool bridge over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cpbridge/cpbridge"
	"github.com/cpbridge/cpbridge/clist"
	"github.com/cpbridge/cpbridge/codeforces"
	"github.com/cpbridge/cpbridge/config"
	"github.com/cpbridge/cpbridge/cptools"
	"github.com/cpbridge/cpbridge/httpapi"
	"github.com/cpbridge/cpbridge/keepalive"
	"github.com/cpbridge/cpbridge/leetcode"
	"github.com/cpbridge/cpbridge/upstream"
)

const shutdownGrace = 15 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("service failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	api := upstream.NewClient()
	svc := &cptools.Service{
		CF:       codeforces.New(api),
		LC:       leetcode.New(api),
		Contests: clist.New(api, cfg.ClistAPIKey),
		OwnerID:  cfg.OwnerID,
	}

	reg := cpbridge.NewRegistry(
		cpbridge.WithDefaultHandle(cfg.DefaultHandle),
		cpbridge.WithMiddleware(cpbridge.WithLogging(log)),
	)
	if err := cptools.Register(reg, svc); err != nil {
		return err
	}
	log.Info("tools registered", "count", len(reg.Descriptors()))

	keepaliveDone := make(chan struct{})
	if cfg.KeepaliveURL != "" {
		p := keepalive.New(cfg.KeepaliveURL, log)
		go func() {
			defer close(keepaliveDone)
			p.Run(ctx)
		}()
	} else {
		close(keepaliveDone)
	}

	srv := httpapi.New(reg, cfg.AuthToken, log)
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", cfg.Port)
		errCh <- srv.Run(":" + cfg.Port)
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	log.Info("shutting down")
	cancel()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	if err := reg.Shutdown(shutdownCtx); err != nil {
		log.Warn("registry shutdown", "error", err)
	}
	// The pinger must acknowledge cancellation before the process exits.
	<-keepaliveDone
	return runErr
}
