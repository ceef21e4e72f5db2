// Package courses persists courses belonging to a term.
//
// Courses carry an optional Notes column that older databases may lack, so
// reads and writes probe the live table first: a missing Notes column reads
// back as nil and is left out of inserts and updates.
package courses
