package models

import "time"

type Term struct {
	Id        int64
	Title     string
	StartDate time.Time
	EndDate   time.Time
}

type Course struct {
	Id              int64
	TermId          int64
	Title           string
	StartDate       time.Time
	EndDate         time.Time
	DueDate         *time.Time
	Status          CourseStatus
	InstructorName  string
	InstructorPhone string
	InstructorEmail string
	Notes           *string
	NotifyStart     bool
	NotifyEnd       bool
}

type Assessment struct {
	Id          int64
	CourseId    int64
	Type        AssessmentType
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	DueDate     *time.Time
	NotifyStart bool
	NotifyEnd   bool
	Notes       *string
}

type TodoItem struct {
	Id          int64
	CourseId    int64
	Title       string
	Notes       *string
	DueDate     *time.Time
	IsCompleted bool
	NotifyDue   bool
	CreatedUtc  time.Time
	ModifiedUtc *time.Time
}

// UserAccount stores either a salted credential ("salt:key") or, for rows
// created before hashing was introduced, the raw password.
type UserAccount struct {
	Id           int64
	Email        string
	PasswordHash *string
}

// Credential returns the stored credential or "" when none is set.
func (u *UserAccount) Credential() string {
	if u.PasswordHash == nil {
		return ""
	}
	return *u.PasswordHash
}

// SearchResult groups search hits per entity kind, each in natural order.
type SearchResult struct {
	Terms       []Term
	Courses     []Course
	Assessments []Assessment
	Todos       []TodoItem
}

func (r *SearchResult) IsEmpty() bool {
	return len(r.Terms) == 0 && len(r.Courses) == 0 && len(r.Assessments) == 0 && len(r.Todos) == 0
}

// Total returns the number of hits across all kinds.
func (r *SearchResult) Total() int {
	return len(r.Terms) + len(r.Courses) + len(r.Assessments) + len(r.Todos)
}

// StringPtr returns nil for blank s, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
