package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// FEED_SERVER_ADDR points the scenarios at a running server replica,
	// e.g. http://localhost:8123. Empty means the e2e suite is skipped.
	ServerAddr string `envconfig:"FEED_SERVER_ADDR"`
	// E2E_DEBUG_JSON dumps full response bodies for troubleshooting
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
