package config

import (
	"os"
	"time"
)

type Redis struct {
	Addr     string
	Password string
	DB       int
	// TTL is how long an untouched session survives.
	TTL time.Duration
}

func NewRedis() (*Redis, error) {
	addr, ok := os.LookupEnv("REDIS_URL")
	if !ok || addr == "" {
		addr = "localhost:6379"
	}
	db, err := lookupInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	ttl, err := SessionTTL()
	if err != nil {
		return nil, err
	}
	return &Redis{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		TTL:      ttl,
	}, nil
}
