package courses

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

func scanCourse(s dbx.Scanner) (models.Course, error) {
	var (
		c          models.Course
		start, end string
		due, notes sql.NullString
		status     int64
	)
	err := s.Scan(&c.Id, &c.TermId, &c.Title, &start, &end, &due, &status,
		&c.InstructorName, &c.InstructorPhone, &c.InstructorEmail, &notes,
		&c.NotifyStart, &c.NotifyEnd)
	if err != nil {
		return c, fmt.Errorf("failed to scan course: %w", err)
	}
	if c.StartDate, err = dbx.ParseTime(start); err != nil {
		return c, err
	}
	if c.EndDate, err = dbx.ParseTime(end); err != nil {
		return c, err
	}
	if c.DueDate, err = dbx.ParseNullTime(due); err != nil {
		return c, err
	}
	if c.Status, err = models.CourseStatusFromInt(status); err != nil {
		return c, err
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	return c, nil
}

func values(c *models.Course) map[string]any {
	var notes any
	if c.Notes != nil {
		notes = *c.Notes
	}
	return map[string]any{
		"TermId":          c.TermId,
		"Title":           c.Title,
		"StartDate":       dbx.FormatTime(c.StartDate),
		"EndDate":         dbx.FormatTime(c.EndDate),
		"DueDate":         dbx.NullableTime(c.DueDate),
		"Status":          int64(c.Status),
		"InstructorName":  c.InstructorName,
		"InstructorPhone": c.InstructorPhone,
		"InstructorEmail": c.InstructorEmail,
		"NotifyStart":     c.NotifyStart,
		"Notes":           notes,
		"NotifyEnd":       c.NotifyEnd,
	}
}

// live waits for the schema and probes the Courses table.
func (r *SQLiteRepository) live(ctx context.Context) (*schema.Live, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}
	return schema.Probe(ctx, r.db, schema.Courses)
}

func (r *SQLiteRepository) list(ctx context.Context, where string, args ...any) ([]models.Course, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	list, err := dbx.QueryAll(ctx, r.db, live.SelectSQL(where), scanCourse, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select courses: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) ListByTerm(ctx context.Context, termID int64) ([]models.Course, error) {
	return r.list(ctx, `"TermId" = ?`, termID)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	return r.list(ctx, "")
}

func (r *SQLiteRepository) Match(ctx context.Context, pattern string) ([]models.Course, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	where, args := live.MatchWhere(pattern)
	list, err := dbx.QueryAll(ctx, r.db, live.SelectSQL(where), scanCourse, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	c, err := scanCourse(r.db.QueryRowContext(ctx, live.SelectSQL(`"Id" = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, c *models.Course) (int64, error) {
	live, err := r.live(ctx)
	if err != nil {
		return 0, err
	}
	if c.Id == 0 {
		q, args := live.InsertSQL(values(c))
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert course: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted course id: %w", err)
		}
		c.Id = id
		return id, nil
	}

	q, args := live.UpdateSQL(values(c), c.Id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update course: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return 0, common.ErrorNotFound
	}
	return c.Id, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, c *models.Course) error {
	return r.DeleteByID(ctx, c.Id)
}

// DeleteByID removes the row if present. Assessments and todos of the course
// are not touched.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM "Courses" WHERE "Id" = ?`, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}
