// Package search runs a case-insensitive substring query over terms, courses,
// assessments and todos at once.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
	"golang.org/x/sync/errgroup"
)

// Matcher is the search side of a repository. pattern is a lower-case LIKE
// pattern such as "%calc%".
type Matcher[T any] interface {
	Match(ctx context.Context, pattern string) ([]T, error)
}

type Engine struct {
	gate        schema.Gate
	terms       Matcher[models.Term]
	courses     Matcher[models.Course]
	assessments Matcher[models.Assessment]
	todos       Matcher[models.TodoItem]
	log         logging.Logger
}

func NewEngine(
	gate schema.Gate,
	terms Matcher[models.Term],
	courses Matcher[models.Course],
	assessments Matcher[models.Assessment],
	todos Matcher[models.TodoItem],
	log logging.Logger,
) *Engine {
	return &Engine{
		gate:        gate,
		terms:       terms,
		courses:     courses,
		assessments: assessments,
		todos:       todos,
		log:         log,
	}
}

// Pattern turns user input into the LIKE pattern passed to matchers.
func Pattern(text string) string {
	return "%" + strings.ToLower(strings.TrimSpace(text)) + "%"
}

// Search matches text against titles, and notes where the table has them.
// Blank text yields an empty result without touching storage. The four
// tables are queried concurrently; the first failure fails the search.
func (e *Engine) Search(ctx context.Context, text string) (*models.SearchResult, error) {
	res := &models.SearchResult{}
	if strings.TrimSpace(text) == "" {
		return res, nil
	}
	if err := e.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	pattern := Pattern(text)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Terms, err = e.terms.Match(gctx, pattern)
		return err
	})
	g.Go(func() (err error) {
		res.Courses, err = e.courses.Match(gctx, pattern)
		return err
	})
	g.Go(func() (err error) {
		res.Assessments, err = e.assessments.Match(gctx, pattern)
		return err
	})
	g.Go(func() (err error) {
		res.Todos, err = e.todos.Match(gctx, pattern)
		return err
	})
	if err := g.Wait(); err != nil {
		e.log.Warn(ctx, "search failed", "query", text, "err", err)
		return nil, fmt.Errorf("search failed: %w", err)
	}

	e.log.Debug(ctx, "search done", "query", text, "hits", res.Total())
	return res, nil
}
