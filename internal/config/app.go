package config

import (
	"os"
	"strings"
)

const defaultPort = ":8080"

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port is the listen address; a bare port number gets a leading colon.
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

// AllowedOrigins lists the CORS origins, comma separated in
// CORS_ALLOWED_ORIGINS. Empty means any origin.
func AllowedOrigins() []string {
	return splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
}
