package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}

func (q *Queries) Ping(ctx context.Context) error {
	return q.db.Ping(ctx)
}
