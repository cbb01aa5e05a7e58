package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	httpserver "chat-feed/infrastructure/http"
	"chat-feed/infrastructure/storage"
	"chat-feed/internal/logs"
	"chat-feed/observability"
	"chat-feed/repositories"
	"chat-feed/runtime/workers"
	"chat-feed/services"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (pool teardown included)
// executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database pool, built once and passed by reference.
	var (
		store *storage.Store
		err   error
	)
	switch config.DBDriver {
	case "sqlite":
		store, err = storage.OpenSQLite(config.SQLitePath, log)
	default:
		store, err = storage.OpenPostgres(config.PostgresDSN(), log, storage.PoolConfig{
			MaxOpenConns:    config.MaxOpenConns,
			MaxIdleConns:    config.MaxIdleConns,
			ConnMaxLifetime: config.ConnMaxLifetime,
		})
	}
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	// 3. Wiring
	monitoring := observability.NewMonitoringManager(log)
	senderRepository := repositories.NewSenderRepository(log, store.RowLocking())
	messageRepository := repositories.NewMessageRepository(log)
	chatService := services.NewChatService(
		store, senderRepository, messageRepository, monitoring, log,
		config.MaxTxRetries, config.RetryBackoff,
	)
	server := httpserver.NewServer(log, chatService, store, monitoring, httpserver.ServerConfig{
		MaxContentLength: config.MaxContentLength,
		RequestTimeout:   config.RequestTimeout,
	})

	// 4. Background workers
	supervisor := workers.NewSupervisor(log)
	supervisor.Add(workers.NewReporterWorker(log, monitoring, config.MetricInterval))
	supervisorDone := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(supervisorDone)
	}()

	// 5. Serve until a termination signal arrives.
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Listen(config.Addr())
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return exitRuntime, fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down...")
	}

	if err = server.Shutdown(); err != nil {
		log.Warn("HTTP shutdown error", "error", err)
	}
	supervisor.Stop()
	<-supervisorDone

	log.Info("Server gracefully stopped")
	return exitOK, nil
}
