package session

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const (
	createAttempts   = 3
	subscriberBuffer = 16
)

// Update is broadcast to the subscribers of a session after every move.
type Update struct {
	Record   *Record
	Snapshot mines.Snapshot
}

type lock struct {
	mu   sync.Mutex
	refs int
}

// Manager runs moves against stored sessions. Moves on one session are
// serialised by a per-session lock held across load, apply and save;
// different sessions proceed in parallel.
type Manager struct {
	store    Store
	logger   *slog.Logger
	defaults mines.GameParams
	newRand  func() *rand.Rand
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*lock
	subs  map[string]map[chan Update]struct{}
}

type Option func(*Manager)

// WithRand replaces the per-move randomness source, for tests.
func WithRand(newRand func() *rand.Rand) Option {
	return func(m *Manager) { m.newRand = newRand }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func NewManager(
	store Store, logger *slog.Logger, defaults mines.GameParams, opts ...Option,
) *Manager {
	m := &Manager{
		store:    store,
		logger:   logger,
		defaults: defaults,
		newRand:  createRand,
		now:      func() time.Time { return time.Now().UTC() },
		locks:    make(map[string]*lock),
		subs:     make(map[string]map[chan Update]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Defaults() mines.GameParams {
	return m.defaults
}

func (m *Manager) acquire(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &lock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// Create starts a new session with params.
func (m *Manager) Create(ctx context.Context, params mines.GameParams) (*Record, error) {
	game, err := mines.NewGame(params)
	if err != nil {
		return nil, err
	}
	now := m.now()
	for range createAttempts {
		rec := &Record{
			ID:        NewID(),
			Game:      game,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = m.store.Create(ctx, rec)
		if errors.Is(err, ErrExists) {
			m.logger.Warn("session id collision", slog.String("id", rec.ID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("unable to create session: %w", err)
		}
		m.logger.Debug("session created",
			slog.String("id", rec.ID), slog.String("params", params.Seed()))
		return rec, nil
	}
	return nil, fmt.Errorf("unable to create session: %w", err)
}

func (m *Manager) Get(ctx context.Context, id string) (*Record, error) {
	return m.store.Load(ctx, id)
}

// Play applies mv to session id, stores the result and broadcasts it.
// Engine errors (a cell off the board) leave the session untouched.
func (m *Manager) Play(ctx context.Context, id string, mv Move) (*Record, mines.Snapshot, error) {
	release := m.acquire(id)
	defer release()

	rec, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, mines.Snapshot{}, err
	}

	snap, err := mv.apply(rec.Game, m.newRand())
	if err != nil {
		return rec, snap, err
	}

	rec.UpdatedAt = m.now()
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, mines.Snapshot{}, fmt.Errorf("unable to save session: %w", err)
	}

	if snap.Changed {
		m.logger.Info("game status changed",
			slog.String("id", id),
			slog.String("move", mv.String()),
			slog.String("status", snap.Status.String()))
	}
	m.publish(id, Update{Record: rec, Snapshot: snap})
	return rec, snap, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	release := m.acquire(id)
	defer release()
	return m.store.Delete(ctx, id)
}

// Subscribe registers for the updates of session id. The returned cancel
// func must be called once the caller stops reading.
func (m *Manager) Subscribe(id string) (<-chan Update, func()) {
	ch := make(chan Update, subscriberBuffer)
	m.mu.Lock()
	set, ok := m.subs[id]
	if !ok {
		set = make(map[chan Update]struct{})
		m.subs[id] = set
	}
	set[ch] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(set, ch)
			if len(set) == 0 {
				delete(m.subs, id)
			}
			close(ch)
		})
	}
}

func (m *Manager) publish(id string, u Update) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.subs[id] {
		select {
		case ch <- u:
		default:
			m.logger.Warn("subscriber too slow, dropping update", slog.String("id", id))
		}
	}
}
