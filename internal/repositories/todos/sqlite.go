package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/dbx"
	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
)

var now = time.Now

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db   dbx.DBTX
	gate schema.Gate
}

func NewSQLiteRepository(db dbx.DBTX, gate schema.Gate) *SQLiteRepository {
	return &SQLiteRepository{db: db, gate: gate}
}

func scanTodo(s dbx.Scanner) (models.TodoItem, error) {
	var (
		item                 models.TodoItem
		notes, due, modified sql.NullString
		created              string
	)
	err := s.Scan(&item.Id, &item.CourseId, &item.Title, &notes, &due,
		&item.IsCompleted, &item.NotifyDue, &created, &modified)
	if err != nil {
		return item, fmt.Errorf("failed to scan todo: %w", err)
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	if item.DueDate, err = dbx.ParseNullTime(due); err != nil {
		return item, err
	}
	if item.CreatedUtc, err = dbx.ParseTime(created); err != nil {
		return item, err
	}
	if item.ModifiedUtc, err = dbx.ParseNullTime(modified); err != nil {
		return item, err
	}
	return item, nil
}

func values(item *models.TodoItem) map[string]any {
	var notes any
	if item.Notes != nil {
		notes = *item.Notes
	}
	return map[string]any{
		"CourseId":    item.CourseId,
		"Title":       item.Title,
		"Notes":       notes,
		"DueDate":     dbx.NullableTime(item.DueDate),
		"IsCompleted": item.IsCompleted,
		"NotifyDue":   item.NotifyDue,
		"CreatedUtc":  dbx.FormatTime(item.CreatedUtc),
		"ModifiedUtc": dbx.NullableTime(item.ModifiedUtc),
	}
}

func (r *SQLiteRepository) live(ctx context.Context) (*schema.Live, error) {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}
	return schema.Probe(ctx, r.db, schema.Todos)
}

func (r *SQLiteRepository) list(ctx context.Context, where string, args ...any) ([]models.TodoItem, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	list, err := dbx.QueryAll(ctx, r.db, live.SelectSQL(where), scanTodo, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.TodoItem, error) {
	return r.list(ctx, `"CourseId" = ?`, courseID)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.TodoItem, error) {
	return r.list(ctx, "")
}

func (r *SQLiteRepository) Match(ctx context.Context, pattern string) ([]models.TodoItem, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	where, args := live.MatchWhere(pattern)
	list, err := dbx.QueryAll(ctx, r.db, live.SelectSQL(where), scanTodo, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search todos: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.TodoItem, error) {
	live, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	item, err := scanTodo(r.db.QueryRowContext(ctx, live.SelectSQL(`"Id" = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, item *models.TodoItem) (int64, error) {
	live, err := r.live(ctx)
	if err != nil {
		return 0, err
	}
	if item.Id == 0 {
		if item.CreatedUtc.IsZero() {
			item.CreatedUtc = now().UTC()
		}
		q, args := live.InsertSQL(values(item))
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert todo: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted todo id: %w", err)
		}
		item.Id = id
		return id, nil
	}

	modified := now().UTC()
	prev := item.ModifiedUtc
	item.ModifiedUtc = &modified
	q, args := live.UpdateSQL(values(item), item.Id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		item.ModifiedUtc = prev
		return 0, fmt.Errorf("failed to update todo: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		item.ModifiedUtc = prev
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		item.ModifiedUtc = prev
		return 0, common.ErrorNotFound
	}
	return item.Id, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, item *models.TodoItem) error {
	return r.DeleteByID(ctx, item.Id)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.gate.EnsureReady(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM "TodoItem" WHERE "Id" = ?`, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
