package store

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultNamespace matches the preferences file the diary has always used.
const DefaultNamespace = "FoodDiary"

// DBTX is the subset of database/sql used by SQLiteStore.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore keeps values in the preferences table created by db.ApplyMigrations.
type SQLiteStore struct {
	db        *sql.DB
	q         DBTX
	namespace string
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB, namespace string) *SQLiteStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &SQLiteStore{db: db, q: db, namespace: namespace}
}

func (s *SQLiteStore) Get(ctx context.Context, key, def string) (string, error) {
	var value string
	err := s.q.QueryRowContext(ctx, `SELECT value FROM preferences WHERE namespace = ? AND key = ?`, s.namespace, key).Scan(&value)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.q.ExecContext(ctx, `
INSERT INTO preferences(namespace, key, value, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) (map[string]string, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT key, value FROM preferences WHERE namespace = ? ORDER BY key ASC`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM preferences WHERE namespace = ?`, s.namespace); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.db == nil {
		// Already inside a transaction.
		return fn(ctx, s)
	}
	return withTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, &SQLiteStore{q: tx, namespace: s.namespace})
	})
}

// withTx commits when fn returns nil and rolls back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin preferences tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit preferences tx: %w", cerr)
		}
	}()

	err = fn(ctx, tx)
	return err
}
