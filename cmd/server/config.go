package main

import (
	"fmt"
	"time"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8123"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	// DB_DRIVER selects postgres (production) or sqlite (local runs).
	DBDriver   string `env:"DB_DRIVER,default=postgres"`
	SQLitePath string `env:"SQLITE_PATH,default=chat-feed.db"`

	PostgresHost     string        `env:"POSTGRES_HOST"`
	PostgresPort     int           `env:"POSTGRES_PORT,default=5432"`
	PostgresDB       string        `env:"POSTGRES_DB"`
	PostgresUser     string        `env:"POSTGRES_USER"`
	PostgresPassword string        `env:"POSTGRES_PASSWORD"`
	MaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS,default=20"`
	MaxIdleConns     int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	ConnMaxLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT,default=5s"`
	MaxTxRetries     int           `env:"MAX_TX_RETRIES,default=3"`
	RetryBackoff     time.Duration `env:"RETRY_BACKOFF,default=50ms"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH,default=4096"`
	MetricInterval   time.Duration `env:"METRIC_INTERVAL,default=10s"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PostgresDSN assembles the connection string from its parts; the parts
// stay separate in the environment so deploy tooling can template them.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB)
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresHost == "" || c.PostgresDB == "" || c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_HOST, POSTGRES_DB and POSTGRES_USER are required with DB_DRIVER=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required with DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}
