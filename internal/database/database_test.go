package database

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	ups, err := fs.Glob(Migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(Migrations, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups), "every migration needs a down step")

	first, err := fs.ReadFile(Migrations, "migrations/000001_game_session.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(first), "CREATE TABLE IF NOT EXISTS game_session")
}

func TestMigrateUnknownDriver(t *testing.T) {
	err := Migrate("nosuchdb://localhost/mines", Migrations)
	assert.ErrorContains(t, err, "unable to create migrator")
}

type fakeMigration struct {
	upErr    error
	closeErr error
	closed   int
}

func (m *fakeMigration) Up() error { return m.upErr }

func (m *fakeMigration) Close() (error, error) {
	m.closed++
	return nil, m.closeErr
}

func TestUpClosesMigrator(t *testing.T) {
	tests := []struct {
		name     string
		upErr    error
		closeErr error
		wantErr  string
	}{
		{"applied", nil, nil, ""},
		{"no change", migrate.ErrNoChange, nil, ""},
		{"up fails", errors.New("dirty database version 1"), nil, "failed to migrate database"},
		{"close fails", nil, errors.New("conn busy"), "unable to close migrator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMigration{upErr: tt.upErr, closeErr: tt.closeErr}
			err := up(m)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
			assert.Equal(t, 1, m.closed)
		})
	}
}
