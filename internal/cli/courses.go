package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/notify"
)

// Courses lists the courses of the term given as the first argument.
func (a *App) Courses(ctx context.Context, args []string) error {
	termID, err := argID(args, 0, "courses <term id>")
	if err != nil {
		return err
	}
	if _, err := a.store.Terms.GetByID(ctx, termID); err != nil {
		return err
	}
	items, err := a.store.Courses.ListByTerm(ctx, termID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No courses in this term")
		return nil
	}
	a.printCourses(items)
	return nil
}

func (a *App) printCourses(items []models.Course) {
	t := newTable(a.out, "ID", "TITLE", "STATUS", "START", "END", "INSTRUCTOR", "NOTES")
	for _, c := range items {
		t.row(strconv.FormatInt(c.Id, 10), c.Title, c.Status.String(),
			formatDate(c.StartDate), formatDate(c.EndDate), c.InstructorName, formatNotes(c.Notes))
	}
	t.flush()
}

// AddCourse prompts for a course in the term given as the first argument,
// validates it and schedules its reminders.
func (a *App) AddCourse(ctx context.Context, args []string) error {
	termID, err := argID(args, 0, "addcourse <term id>")
	if err != nil {
		return err
	}
	if _, err := a.store.Terms.GetByID(ctx, termID); err != nil {
		return err
	}

	c := models.Course{TermId: termID}
	if c.Title, err = a.text("Title"); err != nil {
		return err
	}
	if c.StartDate, err = a.date("Start date"); err != nil {
		return err
	}
	if c.EndDate, err = a.date("End date"); err != nil {
		return err
	}
	if c.DueDate, err = a.optionalDate("Due date"); err != nil {
		return err
	}
	status, err := a.text("Status (InProgress, Completed, Dropped, PlanToTake; blank for InProgress)")
	if err != nil {
		return err
	}
	if status != "" {
		if c.Status, err = models.ParseCourseStatus(status); err != nil {
			return err
		}
	}
	if c.InstructorName, err = a.text("Instructor name"); err != nil {
		return err
	}
	if c.InstructorPhone, err = a.text("Instructor phone"); err != nil {
		return err
	}
	if c.InstructorEmail, err = a.text("Instructor email"); err != nil {
		return err
	}
	notes, err := a.text("Notes")
	if err != nil {
		return err
	}
	c.Notes = models.StringPtr(notes)
	if c.NotifyStart, err = a.yesNo("Remind at start?"); err != nil {
		return err
	}
	if c.NotifyEnd, err = a.yesNo("Remind at end?"); err != nil {
		return err
	}

	if err := c.Validate(); err != nil {
		return err
	}
	id, err := a.store.Courses.Save(ctx, &c)
	if err != nil {
		return err
	}
	if err := a.remind(ctx, notify.PlanCourse(c)); err != nil {
		return err
	}
	a.printf("Course %d saved\n", id)
	return nil
}

// remind schedules the reminders that are still in the future.
func (a *App) remind(ctx context.Context, rs []notify.Reminder) error {
	return notify.ScheduleAll(ctx, a.notifier, notify.Upcoming(rs, a.now().UTC()))
}
