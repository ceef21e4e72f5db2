// Package store opens the SQLite database and wires the schema guard,
// repositories, search engine and services that share it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/config"
	"github.com/dmitrijs2005/classkeeper/internal/filex"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/assessments"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/courses"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/metadata"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/terms"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/todos"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/users"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
	"github.com/dmitrijs2005/classkeeper/internal/search"
	"github.com/dmitrijs2005/classkeeper/internal/services"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Terms       terms.Repository
	Courses     courses.Repository
	Assessments assessments.Repository
	Todos       todos.Repository
	Users       users.Repository
	Metadata    metadata.Repository
}

type Store struct {
	DB    *sql.DB
	Guard *schema.Guard

	Repositories
	Search   *search.Engine
	Accounts *services.AccountService
	Sessions *services.SessionService
	AppLock  *services.AppLockService
	Reports  *services.ReportService
}

// DSN renders the modernc.org/sqlite data source for path with WAL journaling
// and the given busy timeout.
func DSN(path string, busy time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	return path + "?" + q.Encode()
}

// Open opens the database described by cfg. The schema is not touched until
// the first repository call, which runs the migrations through the guard.
func Open(cfg *config.Config, log logging.Logger) (*Store, error) {
	path, err := filex.EnsureParentDir(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare database directory: %w", err)
	}
	db, err := sql.Open("sqlite", DSN(path, cfg.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	return New(db, log), nil
}

// New wires everything around an already opened handle.
func New(db *sql.DB, log logging.Logger) *Store {
	guard := schema.NewGuard(db, schema.Migrate(log), log)
	repos := Repositories{
		Terms:       terms.NewSQLiteRepository(db, guard),
		Courses:     courses.NewSQLiteRepository(db, guard),
		Assessments: assessments.NewSQLiteRepository(db, guard),
		Todos:       todos.NewSQLiteRepository(db, guard),
		Users:       users.NewSQLiteRepository(db, guard),
		Metadata:    metadata.NewSQLiteRepository(db, guard),
	}
	accounts := services.NewAccountService(repos.Users, log)

	return &Store{
		DB:           db,
		Guard:        guard,
		Repositories: repos,
		Search:       search.NewEngine(guard, repos.Terms, repos.Courses, repos.Assessments, repos.Todos, log),
		Accounts:     accounts,
		Sessions:     services.NewSessionService(accounts, repos.Metadata, log),
		AppLock:      services.NewAppLockService(repos.Metadata),
		Reports:      services.NewReportService(repos.Terms, repos.Courses, repos.Assessments, repos.Todos),
	}
}

// Init runs the schema migrations now instead of on first use.
func (s *Store) Init(ctx context.Context) error {
	return s.Guard.EnsureReady(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}
