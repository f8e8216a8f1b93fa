package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type StoreBackend string

const (
	MemoryBackend   StoreBackend = "memory"
	PostgresBackend StoreBackend = "postgres"
	RedisBackend    StoreBackend = "redis"
)

func Store() (StoreBackend, error) {
	s, ok := os.LookupEnv("STORE_BACKEND")
	if !ok || s == "" {
		return MemoryBackend, nil
	}
	switch b := StoreBackend(strings.ToLower(s)); b {
	case MemoryBackend, PostgresBackend, RedisBackend:
		return b, nil
	default:
		return "", fmt.Errorf(
			"STORE_BACKEND must be one of 'memory', 'postgres', 'redis', got %q", s)
	}
}

// SessionTTL is how long a session may sit idle before it is dropped.
// REDIS_TTL is accepted as an older name.
func SessionTTL() (time.Duration, error) {
	if _, ok := os.LookupEnv("SESSION_TTL"); ok {
		return lookupDuration("SESSION_TTL", 24*time.Hour)
	}
	return lookupDuration("REDIS_TTL", 24*time.Hour)
}

func SweepInterval() (time.Duration, error) {
	return lookupDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute)
}
