package main

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/huzzai/rizz-coach/internal/config"
	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/logger"
)

// app holds what every command needs: config, logger and the completion client.
type app struct {
	cfg     *config.Config
	logger  *logger.LogMiddleware
	client  *gemini.Client
	closers []io.Closer
}

func newApp(ctx context.Context) *app {
	cfg := config.LoadConfig()
	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: cfg.Production, Level: cfg.LogLevel})
	log := logMiddleware.Logger(ctx)

	if !cfg.EnvFileLoaded {
		log.Info("No .env file found, relying on environment variables")
	}
	if err := cfg.Validate(); err != nil {
		// Not fatal: features report the problem when they call the model.
		log.Error("Configuration problem", zap.Error(err))
	}

	a := &app{cfg: cfg, logger: logMiddleware}
	settings := cfg.GeminiSettings()
	var transports []gemini.Transport
	for _, name := range cfg.GeminiTransports {
		switch name {
		case "sdk":
			t, err := gemini.NewSDKTransport(ctx, settings)
			if err != nil {
				log.Warn("[Gemini] SDK transport unavailable", zap.Error(err))
				continue
			}
			a.closers = append(a.closers, t)
			transports = append(transports, t)
		case "rest":
			transports = append(transports, gemini.NewRESTTransport(settings, nil))
		}
	}
	a.client = gemini.NewClient(settings, logMiddleware, transports...)
	log.Info("[Gemini] Client ready", zap.Stringer("client", a.client))
	return a
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Logger(context.Background()).Warn("Error closing resource", zap.Error(err))
		}
	}
	a.logger.Sync()
}
