package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_PostgresDSN(t *testing.T) {
	req := require.New(t)
	config := Config{
		PostgresHost:     "db.internal",
		PostgresPort:     5433,
		PostgresUser:     "feed",
		PostgresPassword: "secret",
		PostgresDB:       "chatfeed",
	}
	req.Equal(
		"host=db.internal port=5433 user=feed password=secret dbname=chatfeed sslmode=disable",
		config.PostgresDSN(),
	)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"postgres complete", Config{DBDriver: "postgres", PostgresHost: "h", PostgresDB: "d", PostgresUser: "u"}, false},
		{"postgres missing host", Config{DBDriver: "postgres", PostgresDB: "d", PostgresUser: "u"}, true},
		{"sqlite with path", Config{DBDriver: "sqlite", SQLitePath: "feed.db"}, false},
		{"sqlite without path", Config{DBDriver: "sqlite"}, true},
		{"unknown driver", Config{DBDriver: "oracle"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
