// Package terms persists academic terms.
//
// Repository is implemented by SQLiteRepository over a dbx.DBTX. Every call
// first passes the schema gate, so the first use of a fresh database creates
// the tables. Terms are listed by start date.
//
//	repo := terms.NewSQLiteRepository(db, guard)
//	id, _ := repo.Save(ctx, &models.Term{Title: "Fall 2024"})
//	all, _ := repo.List(ctx)
//
// Deleting a term leaves its courses in place.
package terms
