package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hirescope/hirescope/internal/app"
	"github.com/hirescope/hirescope/internal/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	application := app.NewApp(cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := application.Server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
