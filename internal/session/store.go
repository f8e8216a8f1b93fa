package session

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExists   = errors.New("session already exists")
)

type Record struct {
	ID        string
	Game      *mines.Game
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store keeps one game per session. Implementations must hand out records
// that share no memory with what they hold: [Manager] mutates loaded games.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
}

// NewID is a random UUID, URL-safe base64 encoded.
func NewID() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}
