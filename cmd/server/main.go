package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huzzai/rizz-coach/internal/api"
	"github.com/huzzai/rizz-coach/internal/catalog"
	"github.com/huzzai/rizz-coach/internal/core"
	"github.com/huzzai/rizz-coach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "rizz-coach",
	Short:        "Dating coach API backed by Gemini",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})
	rootCmd.AddCommand(probeCmd, historyCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	a := newApp(ctx)
	defer a.Close()
	log := a.logger.Logger(ctx)

	kv, err := store.Open(a.cfg.DatabaseDriver, a.cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	defer kv.Close()

	cat := catalog.Default()
	history := store.NewHistory(kv, a.logger)
	apiHandler := api.NewAPIHandler(api.Services{
		Text:     core.NewTextService(a.client, core.NewGeminiExtractor(a.client), a.logger),
		Pickup:   core.NewPickupService(ctx, a.client, cat, history, a.logger),
		Critique: core.NewCritiqueService(a.client, a.logger),
		Chat:     core.NewChatService(a.client, a.logger),
		Catalog:  cat,
		Prober:   a.client,
	}, a.logger)
	router := api.NewRouter(apiHandler)

	// Probe once at startup so the status endpoint has something to report.
	go apiHandler.RefreshStatus(ctx)

	serverAddr := fmt.Sprintf(":%s", a.cfg.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // completion calls can take time
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server. Press Ctrl+C to quit.", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Could not listen", zap.String("addr", serverAddr), zap.Error(err))
		return err
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	log.Info("Server exiting gracefully")
	return nil
}
