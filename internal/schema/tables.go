package schema

import (
	"fmt"
	"strings"
)

// Column names shared by several tables.
const (
	IdentityColumn = "Id"
	TitleColumn    = "Title"
	NotesColumn    = "Notes"
)

type Column struct {
	Name    string
	Type    string
	NotNull bool
	// Default is an SQL literal used with NOT NULL columns.
	Default string
}

type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Table describes one entity table.
type Table struct {
	Name     string
	Identity string
	Columns  []Column
	Indexes  []Index
	// OrderBy is the natural sort used by list and search queries.
	OrderBy string
}

func pk() Column { return Column{Name: IdentityColumn, Type: "INTEGER"} }
func text(name string) Column {
	return Column{Name: name, Type: "TEXT", NotNull: true, Default: "''"}
}
func nullText(name string) Column { return Column{Name: name, Type: "TEXT"} }
func integer(name string) Column {
	return Column{Name: name, Type: "INTEGER", NotNull: true, Default: "0"}
}

func titleIndex(table string) Index {
	return Index{Name: "idx_" + table + "_title", Columns: []string{TitleColumn}}
}

var Terms = Table{
	Name:     "Terms",
	Identity: IdentityColumn,
	Columns: []Column{
		pk(),
		text("Title"),
		text("StartDate"),
		text("EndDate"),
	},
	Indexes: []Index{titleIndex("Terms")},
	OrderBy: `"StartDate", "Id"`,
}

var Courses = Table{
	Name:     "Courses",
	Identity: IdentityColumn,
	Columns: []Column{
		pk(),
		integer("TermId"),
		text("Title"),
		text("StartDate"),
		text("EndDate"),
		nullText("DueDate"),
		integer("Status"),
		text("InstructorName"),
		text("InstructorPhone"),
		text("InstructorEmail"),
		nullText(NotesColumn),
		integer("NotifyStart"),
		integer("NotifyEnd"),
	},
	Indexes: []Index{
		titleIndex("Courses"),
		{Name: "idx_Courses_TermId", Columns: []string{"TermId"}},
	},
	OrderBy: `"StartDate", "Id"`,
}

var Assessments = Table{
	Name:     "Assessments",
	Identity: IdentityColumn,
	Columns: []Column{
		pk(),
		integer("CourseId"),
		integer("Type"),
		text("Title"),
		text("StartDate"),
		text("EndDate"),
		nullText("DueDate"),
		integer("NotifyStart"),
		integer("NotifyEnd"),
		nullText(NotesColumn),
	},
	Indexes: []Index{
		titleIndex("Assessments"),
		{Name: "idx_Assessments_CourseId", Columns: []string{"CourseId"}},
	},
	OrderBy: `"EndDate", "Id"`,
}

var Todos = Table{
	Name:     "TodoItem",
	Identity: IdentityColumn,
	Columns: []Column{
		pk(),
		integer("CourseId"),
		text("Title"),
		nullText(NotesColumn),
		nullText("DueDate"),
		integer("IsCompleted"),
		integer("NotifyDue"),
		text("CreatedUtc"),
		nullText("ModifiedUtc"),
	},
	Indexes: []Index{
		titleIndex("TodoItem"),
		{Name: "idx_TodoItem_CourseId", Columns: []string{"CourseId"}},
	},
	// missing due dates sort last
	OrderBy: `"DueDate" IS NULL, "DueDate", "Id"`,
}

var Users = Table{
	Name:     "UserAccount",
	Identity: IdentityColumn,
	Columns: []Column{
		pk(),
		text("Email"),
		nullText("PasswordHash"),
	},
	Indexes: []Index{
		{Name: "idx_user_email", Columns: []string{"Email"}, Unique: true},
	},
	OrderBy: `"Email"`,
}

// All lists every table in creation order.
func All() []Table {
	return []Table{Terms, Courses, Assessments, Todos, Users}
}

// Quote returns name as a quoted SQL identifier.
func Quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ColumnNames returns the declared column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// CreateSQL renders CREATE TABLE IF NOT EXISTS for the descriptor.
func (t Table) CreateSQL() string {
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := Quote(c.Name) + " " + c.Type
		switch {
		case c.Name == t.Identity:
			def += " PRIMARY KEY AUTOINCREMENT"
		case c.NotNull:
			def += " NOT NULL"
			if c.Default != "" {
				def += " DEFAULT " + c.Default
			}
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", Quote(t.Name), strings.Join(defs, ", "))
}

// IndexSQL renders CREATE [UNIQUE] INDEX IF NOT EXISTS statements.
func (t Table) IndexSQL() []string {
	stmts := make([]string, 0, len(t.Indexes))
	for _, idx := range t.Indexes {
		cols := make([]string, len(idx.Columns))
		for i, c := range idx.Columns {
			cols[i] = Quote(c)
		}
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s(%s)",
			unique, Quote(idx.Name), Quote(t.Name), strings.Join(cols, ", ")))
	}
	return stmts
}

// Column returns the descriptor of name, if declared.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}
