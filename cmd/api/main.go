package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railsathi/railsathi/internal/server"
	"github.com/railsathi/railsathi/internal/telemetry"
)

func main() {
	logger := newLogger()

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, "railsathi-api")
	if err != nil {
		logger.Error("failed to setup tracing", slog.String("err", err.Error()))
		os.Exit(1)
	}

	app, err := server.NewServer(logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("err", err.Error()))
		os.Exit(1)
	}

	go func() {
		logger.Info("API server starting", slog.String("addr", app.Addr))
		if err := app.ListenAndServe(); err != nil {
			logger.Error("server error", slog.String("err", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down API server")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Shutdown(sctx); err != nil {
		logger.Error("shutdown error", slog.String("err", err.Error()))
	}
	if err := shutdownTracing(sctx); err != nil {
		logger.Error("tracing shutdown error", slog.String("err", err.Error()))
	}

	logger.Info("API server exited properly")
}

func newLogger() *slog.Logger {
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
	return slog.New(telemetry.NewTraceHandler(jsonHandler))
}
