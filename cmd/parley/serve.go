package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpAdapter "github.com/parleykit/parley/pkg/adapters/http"
	"github.com/parleykit/parley/pkg/adapters/memory"
	redisAdapter "github.com/parleykit/parley/pkg/adapters/redis"
	"github.com/parleykit/parley/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dialogue sessions over HTTP",
	Long:  `Exposes the resource as a JSON API: sessions advance one line per request and persist in a memory or redis store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		redisURL, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("session-ttl")

		logger := newLogger(cmd)

		res, err := loadResource(cmd)
		if err != nil {
			return err
		}

		var store ports.SessionStore
		if redisURL != "" {
			redisStore := redisAdapter.New(redisURL, "", 0, redisAdapter.WithTTL(ttl))
			defer redisStore.Close()
			store = redisStore
		} else {
			store = memory.NewStore()
		}

		server := httpAdapter.NewServer(res, store,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(prometheus.NewRegistry()),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: server.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("closing server: %w", err)
				}
			}
			logger.Info("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (empty for in-memory)")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Session expiry when using redis")
}
