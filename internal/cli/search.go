package cli

import (
	"context"
	"strings"
)

// Search matches the rest of the line against titles and notes of every
// kind of entity.
func (a *App) Search(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return usageError("search <text>")
	}

	res, err := a.store.Search.Search(ctx, text)
	if err != nil {
		return err
	}
	if res.IsEmpty() {
		a.println("No matches")
		return nil
	}

	if len(res.Terms) > 0 {
		a.println("Terms:")
		a.printTerms(res.Terms)
	}
	if len(res.Courses) > 0 {
		a.println("Courses:")
		a.printCourses(res.Courses)
	}
	if len(res.Assessments) > 0 {
		a.println("Assessments:")
		a.printAssessments(res.Assessments)
	}
	if len(res.Todos) > 0 {
		a.println("To-dos:")
		a.printTodos(res.Todos)
	}
	a.printf("%d match(es)\n", res.Total())
	return nil
}
