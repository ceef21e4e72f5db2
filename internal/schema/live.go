package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classkeeper/internal/dbx"
)

// Live is a table descriptor narrowed to the columns present in the database.
type Live struct {
	Table   Table
	present map[string]bool
}

// Probe reads the live column set of t. A missing table yields a Live with
// no columns rather than an error; the query that follows will report it.
func Probe(ctx context.Context, q dbx.DBTX, t Table) (*Live, error) {
	rows, err := q.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, t.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to probe table %s: %w", t.Name, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", t.Name, err)
		}
		present[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns of %s: %w", t.Name, err)
	}
	return &Live{Table: t, present: present}, nil
}

// Full returns a Live that treats every declared column of t as present.
// It suits tables whose layout never varied between releases.
func Full(t Table) *Live {
	present := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		present[strings.ToLower(c.Name)] = true
	}
	return &Live{Table: t, present: present}
}

// Has reports whether column exists, ignoring case.
func (l *Live) Has(column string) bool {
	return l.present[strings.ToLower(column)]
}

// SelectList renders the declared columns in order. Columns missing from the
// live table are selected as NULL so scanners keep a fixed shape.
func (l *Live) SelectList() string {
	cols := make([]string, len(l.Table.Columns))
	for i, c := range l.Table.Columns {
		if l.Has(c.Name) {
			cols[i] = Quote(c.Name)
		} else {
			cols[i] = "NULL AS " + Quote(c.Name)
		}
	}
	return strings.Join(cols, ", ")
}

// SelectSQL renders SELECT ... FROM table [WHERE where] ORDER BY natural order.
func (l *Live) SelectSQL(where string) string {
	q := "SELECT " + l.SelectList() + " FROM " + Quote(l.Table.Name)
	if where != "" {
		q += " WHERE " + where
	}
	return q + " ORDER BY " + l.Table.OrderBy
}

// InsertSQL renders an INSERT for the given column values, skipping the
// identity column and columns absent from the live table.
func (l *Live) InsertSQL(values map[string]any) (string, []any) {
	var (
		cols  []string
		marks []string
		args  []any
	)
	for _, c := range l.Table.Columns {
		v, ok := values[c.Name]
		if !ok || c.Name == l.Table.Identity || !l.Has(c.Name) {
			continue
		}
		cols = append(cols, Quote(c.Name))
		marks = append(marks, "?")
		args = append(args, v)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Quote(l.Table.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return q, args
}

// UpdateSQL renders an UPDATE by identity for the given column values, with
// the same column filtering as InsertSQL. The id is the last argument.
func (l *Live) UpdateSQL(values map[string]any, id int64) (string, []any) {
	var (
		sets []string
		args []any
	)
	for _, c := range l.Table.Columns {
		v, ok := values[c.Name]
		if !ok || c.Name == l.Table.Identity || !l.Has(c.Name) {
			continue
		}
		sets = append(sets, Quote(c.Name)+" = ?")
		args = append(args, v)
	}
	args = append(args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		Quote(l.Table.Name), strings.Join(sets, ", "), Quote(l.Table.Identity))
	return q, args
}

// MatchWhere builds the case-insensitive substring predicate used by search:
// always on Title, and on Notes when the live table has it. pattern is bound
// once per predicate. Enum columns are never part of it.
func (l *Live) MatchWhere(pattern string) (string, []any) {
	where := "lower(coalesce(" + Quote(TitleColumn) + ", '')) LIKE ?"
	args := []any{pattern}
	if l.Has(NotesColumn) {
		where += " OR lower(coalesce(" + Quote(NotesColumn) + ", '')) LIKE ?"
		args = append(args, pattern)
	}
	return where, args
}
