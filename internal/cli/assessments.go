package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/notify"
)

func (a *App) Assessments(ctx context.Context, args []string) error {
	courseID, err := argID(args, 0, "assessments <course id>")
	if err != nil {
		return err
	}
	if _, err := a.store.Courses.GetByID(ctx, courseID); err != nil {
		return err
	}
	items, err := a.store.Assessments.ListByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No assessments for this course")
		return nil
	}
	a.printAssessments(items)
	return nil
}

func (a *App) printAssessments(items []models.Assessment) {
	t := newTable(a.out, "ID", "TYPE", "TITLE", "START", "END", "DUE", "NOTES")
	for _, it := range items {
		t.row(strconv.FormatInt(it.Id, 10), it.Type.String(), it.Title,
			formatDate(it.StartDate), formatDate(it.EndDate), formatOptionalDate(it.DueDate), formatNotes(it.Notes))
	}
	t.flush()
}

// AddAssessment prompts for an assessment of the course given as the first
// argument. A course holds at most one Objective and one Performance
// assessment.
func (a *App) AddAssessment(ctx context.Context, args []string) error {
	courseID, err := argID(args, 0, "addassessment <course id>")
	if err != nil {
		return err
	}
	if _, err := a.store.Courses.GetByID(ctx, courseID); err != nil {
		return err
	}

	as := models.Assessment{CourseId: courseID}
	kind, err := a.text("Type (Objective, Performance, NormalTest)")
	if err != nil {
		return err
	}
	if as.Type, err = models.ParseAssessmentType(kind); err != nil {
		return err
	}

	existing, err := a.store.Assessments.ListByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if err := models.CheckAssessmentSlots(existing, as); err != nil {
		return err
	}

	if as.Title, err = a.text("Title"); err != nil {
		return err
	}
	if as.StartDate, err = a.date("Start date"); err != nil {
		return err
	}
	if as.EndDate, err = a.date("End date"); err != nil {
		return err
	}
	if as.DueDate, err = a.optionalDate("Due date"); err != nil {
		return err
	}
	notes, err := a.text("Notes")
	if err != nil {
		return err
	}
	as.Notes = models.StringPtr(notes)
	if as.NotifyStart, err = a.yesNo("Remind at start?"); err != nil {
		return err
	}
	if as.NotifyEnd, err = a.yesNo("Remind at end?"); err != nil {
		return err
	}

	id, err := a.store.Assessments.Save(ctx, &as)
	if err != nil {
		return err
	}
	if err := a.remind(ctx, notify.PlanAssessment(as)); err != nil {
		return err
	}
	a.printf("Assessment %d saved\n", id)
	return nil
}
