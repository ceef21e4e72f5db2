// Package todos persists to-do items attached to a course.
//
// Items are listed by due date with undated items last. Save stamps
// CreatedUtc on insert and ModifiedUtc on update.
package todos
