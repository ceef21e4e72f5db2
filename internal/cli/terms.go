package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/classkeeper/internal/models"
)

func (a *App) Terms(ctx context.Context, args []string) error {
	items, err := a.store.Terms.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No terms yet")
		return nil
	}
	a.printTerms(items)
	return nil
}

func (a *App) printTerms(items []models.Term) {
	t := newTable(a.out, "ID", "TITLE", "START", "END")
	for _, it := range items {
		t.row(strconv.FormatInt(it.Id, 10), it.Title, formatDate(it.StartDate), formatDate(it.EndDate))
	}
	t.flush()
}

func (a *App) AddTerm(ctx context.Context, args []string) error {
	var term models.Term
	var err error

	if term.Title, err = a.text("Title"); err != nil {
		return err
	}
	if term.StartDate, err = a.date("Start date"); err != nil {
		return err
	}
	if term.EndDate, err = a.date("End date"); err != nil {
		return err
	}
	if err := term.Validate(); err != nil {
		return err
	}

	id, err := a.store.Terms.Save(ctx, &term)
	if err != nil {
		return err
	}
	a.printf("Term %d saved\n", id)
	return nil
}
