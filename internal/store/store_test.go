package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/config"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "app.db")

	s, err := Open(cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, cfg.DatabasePath
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestDSN(t *testing.T) {
	dsn := DSN("/data/app.db", 5*time.Second)
	assert.True(t, strings.HasPrefix(dsn, "/data/app.db?"))
	assert.Contains(t, dsn, "busy_timeout%285000%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")
}

func TestOpen_IsLazy(t *testing.T) {
	s, _ := openStore(t)
	assert.Equal(t, schema.Uninitialized, s.Guard.State())
	assert.False(t, tableExists(t, s.DB, "Terms"))

	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, schema.Initialized, s.Guard.State())
	assert.True(t, tableExists(t, s.DB, "Terms"))
	assert.True(t, tableExists(t, s.DB, "goose_db_version"))
}

func TestOpen_PragmasApplied(t *testing.T) {
	s, _ := openStore(t)
	var mode string
	require.NoError(t, s.DB.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", strings.ToLower(mode))

	var busy int
	require.NoError(t, s.DB.QueryRow(`PRAGMA busy_timeout`).Scan(&busy))
	assert.Equal(t, 5000, busy)
}

func TestConcurrentFirstCallsInitializeOnce(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			switch i % 4 {
			case 0:
				_, err = s.Terms.List(ctx)
			case 1:
				_, err = s.Courses.ListAll(ctx)
			case 2:
				_, err = s.Search.Search(ctx, "calc")
			default:
				_, err = s.Todos.Save(ctx, &models.TodoItem{Title: "t"})
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), s.Guard.Runs())
}

func TestReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	s, path := openStore(t)
	ctx := context.Background()

	term := &models.Term{Title: "Fall 2024"}
	_, err := s.Terms.Save(ctx, term)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = path
	s2, err := Open(cfg, logging.Nop())
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Terms.GetByID(ctx, term.Id)
	require.NoError(t, err)
	assert.Equal(t, "Fall 2024", got.Title)
}

func TestDeletingTermOrphansCourses(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	term := &models.Term{Title: "Fall 2024"}
	_, err := s.Terms.Save(ctx, term)
	require.NoError(t, err)
	course := &models.Course{TermId: term.Id, Title: "Calculus II"}
	_, err = s.Courses.Save(ctx, course)
	require.NoError(t, err)
	_, err = s.Assessments.Save(ctx, &models.Assessment{CourseId: course.Id, Title: "Final"})
	require.NoError(t, err)

	require.NoError(t, s.Terms.Delete(ctx, term))

	left, err := s.Courses.ListByTerm(ctx, term.Id)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Calculus II", left[0].Title)

	require.NoError(t, s.Courses.Delete(ctx, course))
	as, err := s.Assessments.ListByCourse(ctx, course.Id)
	require.NoError(t, err)
	assert.Len(t, as, 1)
}

func TestAccountFlowThroughStore(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	ok, err := s.Accounts.CreateUser(ctx, "a@b.com", "pw1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Sessions.SignIn(ctx, "A@B.com", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	email, err := s.Sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
}

func TestOpen_CreatesDatabaseDirectory(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "nested", "dir", "app.db")

	s, err := Open(cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Init(context.Background()))
	assert.True(t, tableExists(t, s.DB, "Terms"))
}

func TestLegacyCoursesAndTodosKeepNotesAfterUpgrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE Courses (
			Id INTEGER PRIMARY KEY AUTOINCREMENT, TermId INTEGER NOT NULL DEFAULT 0,
			Title TEXT NOT NULL DEFAULT '', StartDate TEXT NOT NULL DEFAULT '', EndDate TEXT NOT NULL DEFAULT '',
			DueDate TEXT, Status INTEGER NOT NULL DEFAULT 0,
			InstructorName TEXT NOT NULL DEFAULT '', InstructorPhone TEXT NOT NULL DEFAULT '',
			InstructorEmail TEXT NOT NULL DEFAULT '',
			NotifyStart INTEGER NOT NULL DEFAULT 0, NotifyEnd INTEGER NOT NULL DEFAULT 0)`,
		`CREATE TABLE TodoItem (
			Id INTEGER PRIMARY KEY AUTOINCREMENT, CourseId INTEGER NOT NULL DEFAULT 0,
			Title TEXT NOT NULL DEFAULT '', DueDate TEXT,
			IsCompleted INTEGER NOT NULL DEFAULT 0, NotifyDue INTEGER NOT NULL DEFAULT 0,
			CreatedUtc TEXT NOT NULL DEFAULT '', ModifiedUtc TEXT)`,
	} {
		_, err := raw.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, raw.Close())

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = path
	s, err := Open(cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	start := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	c := &models.Course{
		Title: "Calculus II", StartDate: start, EndDate: start.AddDate(0, 3, 0),
		InstructorName: "Anika Patel", InstructorPhone: "555-123-4567",
		InstructorEmail: "anika.patel@example.edu", Notes: models.StringPtr("bring calculator"),
	}
	_, err = s.Courses.Save(ctx, c)
	require.NoError(t, err)
	_, err = s.Todos.Save(ctx, &models.TodoItem{Title: "Worksheet", Notes: models.StringPtr("calc drills")})
	require.NoError(t, err)

	res, err := s.Search.Search(ctx, "calc")
	require.NoError(t, err)
	require.Len(t, res.Courses, 1)
	require.Len(t, res.Todos, 1)
	require.NotNil(t, res.Courses[0].Notes)
	assert.Equal(t, "bring calculator", *res.Courses[0].Notes)
	require.NotNil(t, res.Todos[0].Notes)
	assert.Equal(t, "calc drills", *res.Todos[0].Notes)
}
