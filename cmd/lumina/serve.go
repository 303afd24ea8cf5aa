package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanmxa/lumina/internal/config"
	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session over HTTP and WebSocket",
	Long: `Serve a single redesign session over a JSON API.

Endpoints:
  GET  /api/state                 Current session
  GET  /api/styles                Style catalog
  GET  /api/images/{which}        original or generated image bytes
  GET  /api/events                WebSocket stream of session snapshots
  POST /api/image                 Upload a room photo (multipart "image" or raw body)
  POST /api/style                 {"style": "Boho"}
  POST /api/messages              {"text": "...", "visualEdit": false}

Add ?wait=true to the POST intents to block until the backend call finishes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		cfg, err := engineConfig(ctx, settings)
		if err != nil {
			return err
		}
		engine := core.New(cfg)

		addr := settings.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		// No WriteTimeout: /api/events holds its connection open.
		srv := &http.Server{
			Addr:              addr,
			Handler:           web.New(ctx, engine).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Logger().Info("server listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "Lumina listening on http://%s\n", addr)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-ctx.Done():
		}
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		engine.Wait()
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from settings, "+config.DefaultServerAddr+")")
}
