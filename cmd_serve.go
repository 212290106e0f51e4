package main

import (
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sampleset/api"
	"sampleset/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the preset API over HTTP",
	Long: `Serves the sample library and presets over HTTP on SAMPLESET_PORT.
Selections can be made interactively over a websocket at
/api/selections/{id}/ws.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	router := api.RegisterRoutes(session.NewManager(), presetManager(), cfg.SamplesDir, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		server.Close()
	}()

	logger.Info("sampleset listening",
		zap.String("addr", addr),
		zap.String("presets", cfg.PresetFile),
		zap.String("samples", cfg.SamplesDir))
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
