package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/railsathi/railsathi/internal/queue"
	"github.com/railsathi/railsathi/internal/telemetry"
)

func main() {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(telemetry.NewTraceHandler(jsonHandler))

	shutdownTracing, err := telemetry.Setup(context.Background(), "railsathi-worker")
	if err != nil {
		logger.Error("failed to setup tracing", slog.String("err", err.Error()))
		os.Exit(1)
	}

	worker, err := queue.NewWorker(logger)
	if err != nil {
		logger.Error("failed to create worker", slog.String("err", err.Error()))
		os.Exit(1)
	}

	go func() {
		if err := worker.Start(); err != nil {
			logger.Error("worker error", slog.String("err", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	worker.Stop()

	if err := shutdownTracing(context.Background()); err != nil {
		logger.Error("tracing shutdown error", slog.String("err", err.Error()))
	}

	logger.Info("worker exited properly")
}
