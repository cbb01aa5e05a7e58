package main

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestConfig_ServerList(t *testing.T) {
	req := require.New(t)
	config := Config{Servers: "http://a:8123/, http://b:8124 ,,"}
	req.Equal([]string{"http://a:8123", "http://b:8124"}, config.ServerList())
}

func TestConfig_Validate(t *testing.T) {
	req := require.New(t)
	req.Error(Config{Servers: " ,"}.Validate())
	req.Error(Config{Servers: "http://a", Workers: 0, TotalRequests: 1, NamePoolSize: 1}.Validate())
	req.NoError(Config{Servers: "http://a", Workers: 1, TotalRequests: 1, NamePoolSize: 1}.Validate())
}

func TestGenerateRandomNames(t *testing.T) {
	req := require.New(t)
	names := generateRandomNames(50)
	req.Len(names, 50)
	for _, name := range names {
		req.GreaterOrEqual(len(name), 5)
		req.LessOrEqual(len(name), 7)
		req.True(unicode.IsUpper(rune(name[0])), "capitalized: %s", name)
	}
}
