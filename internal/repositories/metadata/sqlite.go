package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/dbx"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
)

const upsertSQL = `
	INSERT INTO "metadata" ("key", "value") VALUES (?, ?)
	ON CONFLICT("key") DO UPDATE SET "value" = excluded."value"`

// SQLiteRepository keeps key/value pairs in the metadata table.
type SQLiteRepository struct {
	db   dbx.DBTX
	gate schema.Gate
}

func NewSQLiteRepository(db dbx.DBTX, gate schema.Gate) *SQLiteRepository {
	return &SQLiteRepository{db: db, gate: gate}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT "value" FROM "metadata" WHERE "key" = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, upsertSQL, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

// SetMany writes all pairs or none.
func (r *SQLiteRepository) SetMany(ctx context.Context, pairs map[string][]byte) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	return r.atomically(ctx, func(ctx context.Context, q dbx.DBTX) error {
		for key, value := range pairs {
			if _, err := q.ExecContext(ctx, upsertSQL, key, value); err != nil {
				return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// DeleteMany removes all keys or none. Missing keys are ignored.
func (r *SQLiteRepository) DeleteMany(ctx context.Context, keys ...string) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	return r.atomically(ctx, func(ctx context.Context, q dbx.DBTX) error {
		for _, key := range keys {
			if _, err := q.ExecContext(ctx, `DELETE FROM "metadata" WHERE "key" = ?`, key); err != nil {
				return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// atomically runs fn in a new transaction, or directly when the repository
// is already bound to one.
func (r *SQLiteRepository) atomically(ctx context.Context, fn func(context.Context, dbx.DBTX) error) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return fn(ctx, r.db)
	}
	return dbx.WithTx(ctx, db, nil, fn)
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM "metadata" WHERE "key" = ?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
