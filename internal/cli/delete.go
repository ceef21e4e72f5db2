package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/classkeeper/internal/notify"
)

const deleteUsage = "delete <term|course|assessment|todo> <id>"

// Delete removes one entity by kind and id. Children are left in place.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError(deleteUsage)
	}
	id, err := argID(args, 1, deleteUsage)
	if err != nil {
		return err
	}

	var cancel []int64
	switch strings.ToLower(args[0]) {
	case "term":
		err = a.store.Terms.DeleteByID(ctx, id)
	case "course":
		err = a.store.Courses.DeleteByID(ctx, id)
		cancel = notify.CourseReminderIDs(id)
	case "assessment":
		err = a.store.Assessments.DeleteByID(ctx, id)
		cancel = notify.AssessmentReminderIDs(id)
	case "todo":
		err = a.store.Todos.DeleteByID(ctx, id)
		cancel = notify.TodoReminderIDs(id)
	default:
		return usageError(deleteUsage)
	}
	if err != nil {
		return err
	}
	if err := notify.CancelAll(ctx, a.notifier, cancel); err != nil {
		return err
	}
	a.println("Deleted")
	return nil
}
