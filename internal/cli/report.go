package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/classkeeper/internal/services"
)

const stampLayout = "Jan 2, 2006 3:04 PM"

func (a *App) Report(ctx context.Context, args []string) error {
	r, err := a.store.Reports.Build(ctx, a.now())
	if err != nil {
		return err
	}
	a.printReport(r)
	return nil
}

func (a *App) printReport(r *services.Report) {
	a.printf("Generated: %s\n\n", r.GeneratedAt.Format(stampLayout))
	a.printf("Terms: %d  Courses: %d  Open to-dos: %d\n", r.Terms, r.Courses, r.OpenTodos)
	a.printf("Objective: %d  Performance: %d  Tests: %d\n\n", r.Objective, r.Performance, r.NormalTest)

	if len(r.RecentAssessments) > 0 {
		a.println("Recent assessments:")
		a.printAssessments(r.RecentAssessments)
		a.println()
	}

	t := newTable(a.out, "TERM", "START", "END", "COURSES")
	for _, row := range r.TermRows {
		t.row(row.Term, formatDate(row.Start), formatDate(row.End), strconv.Itoa(row.CourseCount))
	}
	t.flush()
	a.println()

	t = newTable(a.out, "COURSE", "TERM", "STATUS", "START", "END")
	for _, row := range r.CourseRows {
		t.row(row.Course, row.Term, row.Status.String(), formatDate(row.Start), formatDate(row.End))
	}
	t.flush()
	a.println()

	t = newTable(a.out, "TASK", "COURSE", "DUE", "DONE")
	for _, row := range r.TodoRows {
		done := "no"
		if row.Completed {
			done = "yes"
		}
		t.row(row.Task, row.Course, formatOptionalDate(row.Due), done)
	}
	t.flush()
}
