// Command loadgen drives concurrent traffic against one or more feed
// server replicas and reports throughput when every worker finishes.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chat-feed/internal/logs"
	"chat-feed/observability"
	"chat-feed/runtime/workers"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Loadgen error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
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

	servers := config.ServerList()
	names := generateRandomNames(config.NamePoolSize)
	log.Info("Starting load", "servers", servers, "workers", config.Workers,
		"total_requests", config.TotalRequests, "name_pool", len(names))

	client := &fasthttp.Client{
		MaxConnsPerHost: config.Workers,
	}
	monitoring := observability.NewMonitoringManager(log)

	perWorker := config.TotalRequests / config.Workers
	supervisor := workers.NewSupervisor(log)
	for i := 0; i < config.Workers; i++ {
		supervisor.Add(workers.NewSenderWorker(
			log, client, monitoring, servers, names,
			config.MessageText, perWorker, config.RequestTimeout,
			time.Now().UnixNano()+int64(i),
		))
	}

	start := time.Now()
	supervisor.Run(ctx)
	total := time.Since(start)

	stats := monitoring.Snapshot()
	sent := stats.Accepted + stats.ValidationRejected + stats.Failed
	fmt.Printf("Total time: %.2fs\n", total.Seconds())
	fmt.Printf("Requests sent: %d (accepted=%d rejected=%d failed=%d)\n",
		sent, stats.Accepted, stats.ValidationRejected, stats.Failed)
	fmt.Printf("Mean request time: %s\n", stats.MeanLatency.Round(time.Microsecond))
	if total > 0 {
		fmt.Printf("Throughput: %.2f req/s\n", float64(sent)/total.Seconds())
	}

	if stats.Failed > 0 {
		return exitRuntime, fmt.Errorf("%d requests failed", stats.Failed)
	}
	return exitOK, nil
}

// generateRandomNames builds the sender pool: 5 to 7 ASCII letters,
// capitalized, the same shape real display names tend to have.
func generateRandomNames(count int) []string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := 5 + rnd.Intn(3)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteByte(letters[rnd.Intn(len(letters))])
		}
		name := b.String()
		names = append(names, strings.ToUpper(name[:1])+name[1:])
	}
	return names
}
