// Package schema owns the relational layout of classkeeper.
//
// # Descriptors
//
// Each table is described explicitly by a Table value (name, ordered
// columns, identity column, indexes and natural sort order). Migration,
// repositories and search all consult these descriptors; nothing is derived
// from Go struct reflection.
//
// # Live schema
//
// Installations created by older releases may lack columns added later
// (Notes being the known case). Probe reads the column set actually present
// in the database and returns a Live view that builds select lists, write
// statements and search predicates restricted to existing columns.
//
// # Migration and the init guard
//
// Apply runs idempotent steps: create tables, add Assessments.Notes, create
// indexes, create the metadata table, add Notes to Courses and TodoItem.
// "Already exists" and "duplicate column" failures are swallowed; anything
// else is returned. Migrate runs the same steps as goose
// Go migrations so that a fully migrated database skips them entirely.
//
// Guard runs the migration at most once per process. Concurrent callers that
// arrive while it runs wait for the same outcome; a failed run leaves the
// guard uninitialized so the next caller retries.
package schema
