package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/assessments"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/courses"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/terms"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/todos"
	"golang.org/x/sync/errgroup"
)

// NoParent is shown for rows whose term or course no longer exists.
const NoParent = "-"

// RecentLimit caps Report.RecentAssessments.
const RecentLimit = 10

type TermRow struct {
	Term        string
	Start, End  time.Time
	CourseCount int
}

type CourseRow struct {
	Course     string
	Term       string
	Status     models.CourseStatus
	Start, End time.Time
}

type TodoRow struct {
	Task      string
	Course    string
	Due       *time.Time
	Completed bool
}

// Report is a read-only snapshot of everything stored.
type Report struct {
	GeneratedAt time.Time

	Terms     int
	Courses   int
	OpenTodos int

	Objective   int
	Performance int
	NormalTest  int

	// RecentAssessments holds the latest assessments by end date, newest first.
	RecentAssessments []models.Assessment

	TermRows   []TermRow
	CourseRows []CourseRow
	TodoRows   []TodoRow
}

type ReportService struct {
	terms       terms.Repository
	courses     courses.Repository
	assessments assessments.Repository
	todos       todos.Repository
}

func NewReportService(t terms.Repository, c courses.Repository, a assessments.Repository, d todos.Repository) *ReportService {
	return &ReportService{terms: t, courses: c, assessments: a, todos: d}
}

// Build loads all four tables and assembles the report stamped with now.
func (s *ReportService) Build(ctx context.Context, now time.Time) (*Report, error) {
	var (
		ts []models.Term
		cs []models.Course
		as []models.Assessment
		ds []models.TodoItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { ts, err = s.terms.List(gctx); return err })
	g.Go(func() (err error) { cs, err = s.courses.ListAll(gctx); return err })
	g.Go(func() (err error) { as, err = s.assessments.ListAll(gctx); return err })
	g.Go(func() (err error) { ds, err = s.todos.ListAll(gctx); return err })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load report data: %w", err)
	}

	r := &Report{GeneratedAt: now, Terms: len(ts), Courses: len(cs)}

	for _, d := range ds {
		if !d.IsCompleted {
			r.OpenTodos++
		}
	}
	for _, a := range as {
		switch a.Type {
		case models.Objective:
			r.Objective++
		case models.Performance:
			r.Performance++
		case models.NormalTest:
			r.NormalTest++
		}
	}

	recent := append([]models.Assessment(nil), as...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].EndDate.After(recent[j].EndDate) })
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	r.RecentAssessments = recent

	perTerm := make(map[int64]int)
	for _, c := range cs {
		perTerm[c.TermId]++
	}
	termTitle := make(map[int64]string, len(ts))
	for _, t := range ts {
		termTitle[t.Id] = t.Title
		r.TermRows = append(r.TermRows, TermRow{Term: t.Title, Start: t.StartDate, End: t.EndDate, CourseCount: perTerm[t.Id]})
	}

	courseTitle := make(map[int64]string, len(cs))
	for _, c := range cs {
		courseTitle[c.Id] = c.Title
		title, ok := termTitle[c.TermId]
		if !ok {
			title = NoParent
		}
		r.CourseRows = append(r.CourseRows, CourseRow{Course: c.Title, Term: title, Status: c.Status, Start: c.StartDate, End: c.EndDate})
	}

	// todos arrive ordered by due date with undated items last
	for _, d := range ds {
		title, ok := courseTitle[d.CourseId]
		if d.CourseId == 0 || !ok {
			title = NoParent
		}
		r.TodoRows = append(r.TodoRows, TodoRow{Task: d.Title, Course: title, Due: d.DueDate, Completed: d.IsCompleted})
	}
	return r, nil
}
