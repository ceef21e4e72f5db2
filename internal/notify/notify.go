// Package notify turns the notify flags of courses, assessments and todos
// into reminders and hands them to a Notifier. Storage never calls it; the
// CLI does after a successful save.
package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/models"
)

// Notifier delivers reminders. Scheduling an id that is already scheduled
// replaces it.
type Notifier interface {
	Schedule(ctx context.Context, id int64, title, message string, whenUTC time.Time) error
	Cancel(ctx context.Context, id int64) error
}

type Reminder struct {
	ID      int64
	Title   string
	Message string
	When    time.Time
}

// Reminder ids are entity id * 10 + a slot, so one entity never collides
// with another of a different kind.
const (
	slotCourseStart = iota + 1
	slotCourseEnd
	slotAssessmentStart
	slotAssessmentEnd
	slotTodoDue
)

func reminderID(entityID int64, slot int) int64 {
	return entityID*10 + int64(slot)
}

func PlanCourse(c models.Course) []Reminder {
	var rs []Reminder
	if c.NotifyStart {
		rs = append(rs, Reminder{ID: reminderID(c.Id, slotCourseStart), Title: "Course starts", Message: c.Title, When: c.StartDate.UTC()})
	}
	if c.NotifyEnd {
		rs = append(rs, Reminder{ID: reminderID(c.Id, slotCourseEnd), Title: "Course ends", Message: c.Title, When: c.EndDate.UTC()})
	}
	return rs
}

func PlanAssessment(a models.Assessment) []Reminder {
	var rs []Reminder
	if a.NotifyStart {
		rs = append(rs, Reminder{ID: reminderID(a.Id, slotAssessmentStart), Title: "Assessment starts", Message: a.Title, When: a.StartDate.UTC()})
	}
	if a.NotifyEnd {
		rs = append(rs, Reminder{ID: reminderID(a.Id, slotAssessmentEnd), Title: "Assessment ends", Message: a.Title, When: a.EndDate.UTC()})
	}
	return rs
}

// PlanTodo yields a due reminder for open items that have a due date.
func PlanTodo(t models.TodoItem) []Reminder {
	if !t.NotifyDue || t.DueDate == nil || t.IsCompleted {
		return nil
	}
	return []Reminder{{ID: reminderID(t.Id, slotTodoDue), Title: "To-do due", Message: t.Title, When: t.DueDate.UTC()}}
}

// Upcoming drops reminders that are not after now.
func Upcoming(rs []Reminder, now time.Time) []Reminder {
	out := rs[:0:0]
	for _, r := range rs {
		if r.When.After(now) {
			out = append(out, r)
		}
	}
	return out
}

// ScheduleAll schedules every reminder and stops at the first error.
func ScheduleAll(ctx context.Context, n Notifier, rs []Reminder) error {
	for _, r := range rs {
		if err := n.Schedule(ctx, r.ID, r.Title, r.Message, r.When); err != nil {
			return err
		}
	}
	return nil
}

// CourseReminderIDs lists every reminder id a course can own.
func CourseReminderIDs(id int64) []int64 {
	return []int64{reminderID(id, slotCourseStart), reminderID(id, slotCourseEnd)}
}

func AssessmentReminderIDs(id int64) []int64 {
	return []int64{reminderID(id, slotAssessmentStart), reminderID(id, slotAssessmentEnd)}
}

func TodoReminderIDs(id int64) []int64 {
	return []int64{reminderID(id, slotTodoDue)}
}

// CancelAll cancels every id and stops at the first error.
func CancelAll(ctx context.Context, n Notifier, ids []int64) error {
	for _, id := range ids {
		if err := n.Cancel(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
