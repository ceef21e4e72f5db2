package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/notify"
)

// Todos lists the items of a course, or every item without an argument.
func (a *App) Todos(ctx context.Context, args []string) error {
	var (
		items []models.TodoItem
		err   error
	)
	if len(args) > 0 {
		courseID, perr := argID(args, 0, "todos [course id]")
		if perr != nil {
			return perr
		}
		items, err = a.store.Todos.ListByCourse(ctx, courseID)
	} else {
		items, err = a.store.Todos.ListAll(ctx)
	}
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("Nothing to do")
		return nil
	}
	a.printTodos(items)
	return nil
}

func (a *App) printTodos(items []models.TodoItem) {
	t := newTable(a.out, "ID", "DONE", "TITLE", "DUE", "NOTES")
	for _, it := range items {
		done := ""
		if it.IsCompleted {
			done = "x"
		}
		t.row(strconv.FormatInt(it.Id, 10), done, it.Title, formatOptionalDate(it.DueDate), formatNotes(it.Notes))
	}
	t.flush()
}

// AddTodo prompts for an item, attached to the course given as the first
// argument if any.
func (a *App) AddTodo(ctx context.Context, args []string) error {
	var item models.TodoItem
	if len(args) > 0 {
		courseID, err := argID(args, 0, "addtodo [course id]")
		if err != nil {
			return err
		}
		if _, err := a.store.Courses.GetByID(ctx, courseID); err != nil {
			return err
		}
		item.CourseId = courseID
	}

	var err error
	if item.Title, err = a.text("Title"); err != nil {
		return err
	}
	if item.Title == "" {
		return usageError("title is required")
	}
	notes, err := a.text("Notes")
	if err != nil {
		return err
	}
	item.Notes = models.StringPtr(notes)
	if item.DueDate, err = a.optionalDate("Due date"); err != nil {
		return err
	}
	if item.DueDate != nil {
		if item.NotifyDue, err = a.yesNo("Remind when due?"); err != nil {
			return err
		}
	}

	id, err := a.store.Todos.Save(ctx, &item)
	if err != nil {
		return err
	}
	if err := a.remind(ctx, notify.PlanTodo(item)); err != nil {
		return err
	}
	a.printf("To-do %d saved\n", id)
	return nil
}

// Done marks an item completed and drops its reminder.
func (a *App) Done(ctx context.Context, args []string) error {
	id, err := argID(args, 0, "done <todo id>")
	if err != nil {
		return err
	}
	item, err := a.store.Todos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	item.IsCompleted = true
	if _, err := a.store.Todos.Save(ctx, item); err != nil {
		return err
	}
	if err := notify.CancelAll(ctx, a.notifier, notify.TodoReminderIDs(id)); err != nil {
		return err
	}
	a.printf("To-do %d completed\n", id)
	return nil
}
