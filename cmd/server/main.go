package main

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/config"
	"ctchen222/growing-tic-tac-toe/internal/db"
	"ctchen222/growing-tic-tac-toe/internal/events"
	"ctchen222/growing-tic-tac-toe/internal/logger"
	"ctchen222/growing-tic-tac-toe/internal/server"
	"ctchen222/growing-tic-tac-toe/internal/session"
	"ctchen222/growing-tic-tac-toe/internal/telemetry"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad("config.yml")

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, conf.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	logger.Init(conf.LogLevel, conf.Telemetry.Enabled)

	// Session storage
	var (
		store     session.Store
		publisher events.Publisher
	)
	switch conf.Session.Store {
	case config.StoreRedis:
		rdb, err := db.NewRedisClient(ctx, conf.Redis)
		if err != nil {
			slog.Error("failed to initialize redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, conf.Session.TTL)
		publisher = events.NewRedisPublisher(rdb)
	default:
		memory := session.NewMemoryStore(conf.Session.TTL)
		go memory.RunSweeper(ctx, time.Minute)
		store = memory
	}

	manager := session.NewManager(store, publisher)

	// Create the Gin-based server
	srv := server.NewServer(manager)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    conf.HTTP.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		slog.Info("http server started", "addr", conf.HTTP.Addr, "store", conf.Session.Store)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe failed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), conf.HTTP.ShutdownTimeout)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}
