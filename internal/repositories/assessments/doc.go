// Package assessments persists course assessments, listed by end date.
package assessments
