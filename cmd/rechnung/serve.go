package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rechnung-app/rechnung/internal/config"
	"github.com/rechnung-app/rechnung/internal/logger"
	"github.com/rechnung-app/rechnung/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP application",
	Long: `Starts the HTTP server serving the JSON API, PDF downloads and HTML
previews. Overdue statuses are refreshed once at startup and again whenever
an invoice is read.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.WithComponent("serve")

	gw, invoices, clients, settings, err := openStores(cfg.DBPath)
	if err != nil {
		return err
	}
	if err := invoices.RefreshStatuses(); err != nil {
		return err
	}
	if err := clients.RefreshTotals(invoices.All()); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      withLogging(server.New(gw, invoices, clients, settings)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Dur("took", time.Since(start)).Msg("request")
	})
}
