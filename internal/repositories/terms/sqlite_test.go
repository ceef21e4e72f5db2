package terms

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
	"github.com/dmitrijs2005/classkeeper/internal/schema/schematest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, guard := schematest.Open(t)
	return NewSQLiteRepository(db, guard)
}

func TestSave_InsertAssignsIdThenUpdates(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	term := &models.Term{Title: "Fall 2024", StartDate: schematest.Date(2024, 9, 1), EndDate: schematest.Date(2024, 12, 20)}
	id, err := r.Save(ctx, term)
	require.NoError(t, err)
	require.NotZero(t, id)
	assert.Equal(t, id, term.Id)

	term.Title = "Autumn 2024"
	id2, err := r.Save(ctx, term)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Autumn 2024", all[0].Title)
	assert.True(t, all[0].StartDate.Equal(term.StartDate))
	assert.True(t, all[0].EndDate.Equal(term.EndDate))
}

func TestSave_UpdateMissingRow(t *testing.T) {
	r := newRepo(t)
	_, err := r.Save(context.Background(), &models.Term{Id: 42, Title: "ghost"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_OrderedByStartDate(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	for _, tm := range []models.Term{
		{Title: "Spring 2025", StartDate: schematest.Date(2025, 1, 10)},
		{Title: "Fall 2024", StartDate: schematest.Date(2024, 9, 1)},
		{Title: "Summer 2025", StartDate: schematest.Date(2025, 6, 1)},
	} {
		tm := tm
		_, err := r.Save(ctx, &tm)
		require.NoError(t, err)
	}

	all, err := r.List(ctx)
	require.NoError(t, err)
	var titles []string
	for _, tm := range all {
		titles = append(titles, tm.Title)
	}
	assert.Equal(t, []string{"Fall 2024", "Spring 2025", "Summer 2025"}, titles)
}

func TestGetByID(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	term := &models.Term{Title: "Fall 2024"}
	_, err := r.Save(ctx, term)
	require.NoError(t, err)

	got, err := r.GetByID(ctx, term.Id)
	require.NoError(t, err)
	assert.Equal(t, "Fall 2024", got.Title)

	_, err = r.GetByID(ctx, term.Id+100)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	term := &models.Term{Title: "Fall 2024"}
	_, err := r.Save(ctx, term)
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, term))
	require.NoError(t, r.DeleteByID(ctx, term.Id))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMatch_TitleCaseInsensitive(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	for _, title := range []string{"Fall 2024", "Spring 2025"} {
		_, err := r.Save(ctx, &models.Term{Title: title})
		require.NoError(t, err)
	}

	got, err := r.Match(ctx, "%fall%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fall 2024", got[0].Title)

	got, err = r.Match(ctx, "%calc%")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGateErrorStopsCall(t *testing.T) {
	db := schematest.OpenRaw(t)
	gate := schema.NewGuard(db, func(context.Context, *sql.DB) error { return errors.New("boom") }, logging.Nop())
	r := NewSQLiteRepository(db, gate)

	_, err := r.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestList_DBErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "Terms"`)).WillReturnError(errors.New("disk I/O error"))

	r := NewSQLiteRepository(db, schema.Ready)
	_, err = r.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select terms")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "Terms"`)).WillReturnError(errors.New("database is locked"))

	r := NewSQLiteRepository(db, schema.Ready)
	_, err = r.Save(context.Background(), &models.Term{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert term")
	require.NoError(t, mock.ExpectationsWereMet())
}
