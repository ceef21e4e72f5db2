package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classkeeper/internal/dbx"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/pressly/goose/v3"
)

// IsAlreadyExists reports whether err is SQLite's complaint about a table,
// index or column that is already there.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column")
}

func execTolerant(ctx context.Context, q dbx.DBTX, log logging.Logger, stmt string) error {
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		if IsAlreadyExists(err) {
			log.Debug(ctx, "schema object already present", "stmt", stmt, "err", err)
			return nil
		}
		return fmt.Errorf("failed to execute %q: %w", stmt, err)
	}
	return nil
}

// CreateTables creates every table that does not exist yet.
func CreateTables(ctx context.Context, q dbx.DBTX, log logging.Logger) error {
	for _, t := range All() {
		if err := execTolerant(ctx, q, log, t.CreateSQL()); err != nil {
			return err
		}
	}
	return nil
}

// MetadataTable holds session flags and the app-lock PIN hash.
const MetadataTable = "metadata"

// CreateMetadata creates the key/value table used for local session state.
func CreateMetadata(ctx context.Context, q dbx.DBTX, log logging.Logger) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s ("key" TEXT PRIMARY KEY, "value" BLOB NOT NULL)`, Quote(MetadataTable))
	return execTolerant(ctx, q, log, stmt)
}

// AddAssessmentNotes adds Assessments.Notes for installations created before
// the column existed. On newer databases the column is already there and the
// resulting error is ignored.
func AddAssessmentNotes(ctx context.Context, q dbx.DBTX, log logging.Logger) error {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", Quote(Assessments.Name), Quote(NotesColumn))
	return execTolerant(ctx, q, log, stmt)
}

// AddNotesColumns adds Notes to Courses and TodoItem tables created before
// the column existed. Tables that already have it are left alone.
func AddNotesColumns(ctx context.Context, q dbx.DBTX, log logging.Logger) error {
	for _, t := range []Table{Courses, Todos} {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", Quote(t.Name), Quote(NotesColumn))
		if err := execTolerant(ctx, q, log, stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateIndexes creates the title, parent-id and unique email indexes.
func CreateIndexes(ctx context.Context, q dbx.DBTX, log logging.Logger) error {
	for _, t := range All() {
		for _, stmt := range t.IndexSQL() {
			if err := execTolerant(ctx, q, log, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

// Apply runs all schema steps in order. It is safe to call any number of times.
func Apply(ctx context.Context, q dbx.DBTX, log logging.Logger) error {
	steps := []func(context.Context, dbx.DBTX, logging.Logger) error{
		CreateTables,
		AddAssessmentNotes,
		CreateIndexes,
		CreateMetadata,
		AddNotesColumns,
	}
	for _, step := range steps {
		if err := step(ctx, q, log); err != nil {
			return err
		}
	}
	return nil
}

// Migrations returns the schema steps as goose Go migrations, one version per step.
func Migrations(log logging.Logger) []*goose.Migration {
	wrap := func(step func(context.Context, dbx.DBTX, logging.Logger) error) *goose.GoFunc {
		return &goose.GoFunc{
			RunTx: func(ctx context.Context, tx *sql.Tx) error {
				return step(ctx, tx, log)
			},
		}
	}
	return []*goose.Migration{
		goose.NewGoMigration(1, wrap(CreateTables), nil),
		goose.NewGoMigration(2, wrap(AddAssessmentNotes), nil),
		goose.NewGoMigration(3, wrap(CreateIndexes), nil),
		goose.NewGoMigration(4, wrap(CreateMetadata), nil),
		goose.NewGoMigration(5, wrap(AddNotesColumns), nil),
	}
}

// MigrateFunc brings the database schema up to date.
type MigrateFunc func(ctx context.Context, db *sql.DB) error

// Migrate returns a MigrateFunc that applies pending versions through goose.
func Migrate(log logging.Logger) MigrateFunc {
	return func(ctx context.Context, db *sql.DB) error {
		provider, err := goose.NewProvider(goose.DialectSQLite3, db, nil,
			goose.WithDisableGlobalRegistry(true),
			goose.WithGoMigrations(Migrations(log)...),
		)
		if err != nil {
			return fmt.Errorf("failed to create migration provider: %w", err)
		}
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		for _, r := range results {
			log.Debug(ctx, "migration applied", "version", r.Source.Version, "took", r.Duration)
		}
		log.Info(ctx, "schema ready", "applied", len(results))
		return nil
	}
}
