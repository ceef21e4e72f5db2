package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/dbx"
	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db   dbx.DBTX
	gate schema.Gate
}

func NewSQLiteRepository(db dbx.DBTX, gate schema.Gate) *SQLiteRepository {
	return &SQLiteRepository{db: db, gate: gate}
}

var table = schema.Full(schema.Users)

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	var (
		u    models.UserAccount
		hash sql.NullString
	)
	err := r.db.QueryRowContext(ctx, table.SelectSQL(`"Email" = ?`), email).Scan(&u.Id, &u.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if hash.Valid {
		u.PasswordHash = &hash.String
	}
	return &u, nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, email string) (bool, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return false, err
	}
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM "UserAccount" WHERE "Email" = ?`, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, u *models.UserAccount) (int64, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return 0, err
	}
	var hash any
	if u.PasswordHash != nil {
		hash = *u.PasswordHash
	}
	values := map[string]any{"Email": u.Email, "PasswordHash": hash}

	if u.Id == 0 {
		q, args := table.InsertSQL(values)
		res, err := r.db.ExecContext(ctx, q, args...)
		if dbx.IsUniqueViolation(err) {
			return 0, common.ErrorAlreadyExists
		}
		if err != nil {
			return 0, fmt.Errorf("failed to insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted user id: %w", err)
		}
		u.Id = id
		return id, nil
	}

	q, args := table.UpdateSQL(values, u.Id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if dbx.IsUniqueViolation(err) {
		return 0, common.ErrorAlreadyExists
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update user: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return 0, common.ErrorNotFound
	}
	return u.Id, nil
}
