package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/fooddiary/internal/db"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "diary.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))
	return sqldb
}

func TestSQLiteStore_GetReturnsDefaultWhenAbsent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t), "")
	v, err := s.Get(context.Background(), "diary_entries", "[]")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestSQLiteStore_SetUpsertsValue(t *testing.T) {
	s := NewSQLiteStore(setupDB(t), "")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "daily_calories", "1800"))
	require.NoError(t, s.Set(ctx, "daily_calories", "2000"))

	v, err := s.Get(ctx, "daily_calories", "0")
	require.NoError(t, err)
	assert.Equal(t, "2000", v)
}

func TestSQLiteStore_NamespacesAreIsolated(t *testing.T) {
	sqldb := setupDB(t)
	ctx := context.Background()
	a := NewSQLiteStore(sqldb, "a")
	b := NewSQLiteStore(sqldb, "b")

	require.NoError(t, a.Set(ctx, "recipes", `[{"name":"x"}]`))

	v, err := b.Get(ctx, "recipes", "[]")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	require.NoError(t, b.Set(ctx, "goals", "[]"))
	require.NoError(t, a.Clear(ctx))

	am, err := a.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, am)
	bm, err := b.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"goals": "[]"}, bm)
}

func TestSQLiteStore_AtomicCommitsAllWrites(t *testing.T) {
	s := NewSQLiteStore(setupDB(t), "")
	ctx := context.Background()

	err := s.Atomic(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Set(ctx, "recipes", "[1]"); err != nil {
			return err
		}
		return tx.Set(ctx, "diary_entries", "[2]")
	})
	require.NoError(t, err)

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"recipes": "[1]", "diary_entries": "[2]"}, m)
}

func TestSQLiteStore_AtomicRollsBackOnError(t *testing.T) {
	s := NewSQLiteStore(setupDB(t), "")
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "recipes", "[]"))

	boom := errors.New("boom")
	err := s.Atomic(ctx, func(ctx context.Context, tx Store) error {
		require.NoError(t, tx.Set(ctx, "recipes", "[1]"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := s.Get(ctx, "recipes", "")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestSQLiteStore_NestedAtomicReusesTransaction(t *testing.T) {
	s := NewSQLiteStore(setupDB(t), "")
	ctx := context.Background()

	err := s.Atomic(ctx, func(ctx context.Context, tx Store) error {
		return tx.Atomic(ctx, func(ctx context.Context, inner Store) error {
			return inner.Set(ctx, "goals", "[]")
		})
	})
	require.NoError(t, err)

	v, err := s.Get(ctx, "goals", "")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestSQLiteStore_GetPropagatesDriverError(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqldb.Close()

	mock.ExpectQuery(`SELECT value FROM preferences`).
		WithArgs(DefaultNamespace, "diary_entries").
		WillReturnError(errors.New("disk I/O error"))

	s := NewSQLiteStore(sqldb, "")
	_, err = s.Get(context.Background(), "diary_entries", "[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_AtomicRollsBackWhenWriteFails(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqldb.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO preferences`).
		WithArgs(DefaultNamespace, "recipes", "[]").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	s := NewSQLiteStore(sqldb, "")
	err = s.Atomic(context.Background(), func(ctx context.Context, tx Store) error {
		return tx.Set(ctx, "recipes", "[]")
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
