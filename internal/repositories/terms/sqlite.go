package terms

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

// NewSQLiteRepository returns a repository bound to db whose calls wait on gate.
func NewSQLiteRepository(db dbx.DBTX, gate schema.Gate) *SQLiteRepository {
	return &SQLiteRepository{db: db, gate: gate}
}

var table = schema.Full(schema.Terms)

func scanTerm(s dbx.Scanner) (models.Term, error) {
	var (
		t          models.Term
		start, end string
	)
	if err := s.Scan(&t.Id, &t.Title, &start, &end); err != nil {
		return t, fmt.Errorf("failed to scan term: %w", err)
	}
	var err error
	if t.StartDate, err = dbx.ParseTime(start); err != nil {
		return t, err
	}
	if t.EndDate, err = dbx.ParseTime(end); err != nil {
		return t, err
	}
	return t, nil
}

func values(t *models.Term) map[string]any {
	return map[string]any{
		"Title":     t.Title,
		"StartDate": dbx.FormatTime(t.StartDate),
		"EndDate":   dbx.FormatTime(t.EndDate),
	}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Term, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}
	list, err := dbx.QueryAll(ctx, r.db, table.SelectSQL(""), scanTerm)
	if err != nil {
		return nil, fmt.Errorf("failed to select terms: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Term, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}
	t, err := scanTerm(r.db.QueryRowContext(ctx, table.SelectSQL(`"Id" = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, t *models.Term) (int64, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return 0, err
	}
	if t.Id == 0 {
		q, args := table.InsertSQL(values(t))
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert term: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted term id: %w", err)
		}
		t.Id = id
		return id, nil
	}

	q, args := table.UpdateSQL(values(t), t.Id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update term: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return 0, common.ErrorNotFound
	}
	return t.Id, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, t *models.Term) error {
	return r.DeleteByID(ctx, t.Id)
}

// DeleteByID removes the row if present. Courses of the term are not touched.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM "Terms" WHERE "Id" = ?`, id); err != nil {
		return fmt.Errorf("failed to delete term: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Match(ctx context.Context, pattern string) ([]models.Term, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}
	live, err := schema.Probe(ctx, r.db, schema.Terms)
	if err != nil {
		return nil, err
	}
	where, args := live.MatchWhere(pattern)
	list, err := dbx.QueryAll(ctx, r.db, live.SelectSQL(where), scanTerm, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search terms: %w", err)
	}
	return list, nil
}
