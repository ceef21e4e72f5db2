package assessments

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
// Assessments.Notes was added after the first release; it is probed on every call.
type SQLiteRepository struct {
	db   dbx.DBTX
	gate schema.Gate
}

func NewSQLiteRepository(db dbx.DBTX, gate schema.Gate) *SQLiteRepository {
	return &SQLiteRepository{db: db, gate: gate}
}

func scanAssessment(s dbx.Scanner) (models.Assessment, error) {
	var (
		a          models.Assessment
		kind       int64
		start, end string
		due, notes sql.NullString
	)
	err := s.Scan(&a.Id, &a.CourseId, &kind, &a.Title, &start, &end, &due,
		&a.NotifyStart, &a.NotifyEnd, &notes)
	if err != nil {
		return a, fmt.Errorf("failed to scan assessment: %w", err)
	}
	if a.Type, err = models.AssessmentTypeFromInt(kind); err != nil {
		return a, err
	}
	if a.StartDate, err = dbx.ParseTime(start); err != nil {
		return a, err
	}
	if a.EndDate, err = dbx.ParseTime(end); err != nil {
		return a, err
	}
	if a.DueDate, err = dbx.ParseNullTime(due); err != nil {
		return a, err
	}
	if notes.Valid {
		a.Notes = &notes.String
	}
	return a, nil
}

func values(a *models.Assessment) map[string]any {
	var notes any
	if a.Notes != nil {
		notes = *a.Notes
	}
	return map[string]any{
		"CourseId":    a.CourseId,
		"Type":        int64(a.Type),
		"Title":       a.Title,
		"StartDate":   dbx.FormatTime(a.StartDate),
		"EndDate":     dbx.FormatTime(a.EndDate),
		"DueDate":     dbx.NullableTime(a.DueDate),
		"NotifyStart": a.NotifyStart,
		"NotifyEnd":   a.NotifyEnd,
		"Notes":       notes,
	}
}

func (r *SQLiteRepository) live(ctx context.Context) (*schema.Live, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}
	return schema.Probe(ctx, r.db, schema.Assessments)
}

func (r *SQLiteRepository) list(ctx context.Context, where string, args ...any) ([]models.Assessment, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	list, err := dbx.QueryAll(ctx, r.db, live.SelectSQL(where), scanAssessment, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select assessments: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error) {
	return r.list(ctx, `"CourseId" = ?`, courseID)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Assessment, error) {
	return r.list(ctx, "")
}

func (r *SQLiteRepository) Match(ctx context.Context, pattern string) ([]models.Assessment, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	where, args := live.MatchWhere(pattern)
	list, err := dbx.QueryAll(ctx, r.db, live.SelectSQL(where), scanAssessment, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search assessments: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Assessment, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	a, err := scanAssessment(r.db.QueryRowContext(ctx, live.SelectSQL(`"Id" = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, a *models.Assessment) (int64, error) {
	live, err := r.live(ctx)
	if err != nil {
		return 0, err
	}
	if a.Id == 0 {
		q, args := live.InsertSQL(values(a))
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert assessment: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted assessment id: %w", err)
		}
		a.Id = id
		return id, nil
	}

	q, args := live.UpdateSQL(values(a), a.Id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update assessment: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return 0, common.ErrorNotFound
	}
	return a.Id, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, a *models.Assessment) error {
	return r.DeleteByID(ctx, a.Id)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM "Assessments" WHERE "Id" = ?`, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	return nil
}
