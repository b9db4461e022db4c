package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/talgya/task-tycoon/internal/api"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			if addr != "" {
				a.cfg.Addr = addr
			}
			return serve(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides TYCOON_ADDR)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	srv := api.NewServer(a.proc, a.cfg.CORSOrigins)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP API starting",
			"addr", a.cfg.Addr,
			"store", a.cfg.Store,
			"difficulty", a.cfg.Difficulty,
			"seeded", a.cfg.Seed != 0,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	fmt.Printf("\nTask Tycoon is open for business on %s\n", a.cfg.Addr)
	fmt.Println("Serving... (Ctrl+C to stop)")

	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println("Server stopped. Company state saved.")
	return nil
}
