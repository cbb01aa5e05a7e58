package main

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	// FEED_SERVERS is a comma-separated list of server replica base URLs;
	// each request picks one at random.
	Servers        string        `env:"FEED_SERVERS,default=http://127.0.0.1:8123"`
	TotalRequests  int           `env:"TOTAL_REQUESTS,default=5000"`
	Workers        int           `env:"WORKERS,default=50"`
	NamePoolSize   int           `env:"NAME_POOL_SIZE,default=50"`
	MessageText    string        `env:"MESSAGE_TEXT,default=load test message"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	LogLevel       string        `env:"LOG_LEVEL,default=INFO"`
}

func (c Config) ServerList() []string {
	parts := strings.Split(c.Servers, ",")
	servers := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimRight(strings.TrimSpace(p), "/"); s != "" {
			servers = append(servers, s)
		}
	}
	return servers
}

func (c Config) Validate() error {
	if len(c.ServerList()) == 0 {
		return fmt.Errorf("FEED_SERVERS must name at least one replica")
	}
	if c.Workers <= 0 || c.TotalRequests <= 0 || c.NamePoolSize <= 0 {
		return fmt.Errorf("WORKERS, TOTAL_REQUESTS and NAME_POOL_SIZE must be positive")
	}
	return nil
}
