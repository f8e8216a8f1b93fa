package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const keyPrefix = "mines:session:"

// Store keeps sessions in Redis. Every write renews the key's TTL, so a
// session lives for TTL after its last move.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func key(id string) string {
	return keyPrefix + id
}

func New(ctx context.Context, cfg *config.Redis) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to reach redis at %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, cfg.TTL), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func encode(rec *session.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Create implements [session.Store].
func (s *Store) Create(ctx context.Context, rec *session.Record) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, key(rec.ID), data, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return session.ErrExists
	}
	return nil
}

// Load implements [session.Store].
func (s *Store) Load(ctx context.Context, id string) (*session.Record, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec session.Record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return &rec, nil
}

// Save implements [session.Store]. Expired sessions are not brought back.
func (s *Store) Save(ctx context.Context, rec *session.Record) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	err = s.client.SetArgs(ctx, key(rec.ID), data, redis.SetArgs{
		Mode: "XX",
		TTL:  s.ttl,
	}).Err()
	if errors.Is(err, redis.Nil) {
		return session.ErrNotFound
	}
	return err
}

// Delete implements [session.Store].
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}
