package terms

import (
	"context"

	"github.com/dmitrijs2005/classkeeper/internal/models"
)

// Repository describes CRUD and query operations for Term objects.
type Repository interface {
	// List returns every term ordered by start date.
	List(ctx context.Context) ([]models.Term, error)

	// GetByID returns common.ErrorNotFound when no term has the id.
	GetByID(ctx context.Context, id int64) (*models.Term, error)

	// Save inserts a term with Id 0 and sets its new id, otherwise updates it.
	Save(ctx context.Context, t *models.Term) (int64, error)

	Delete(ctx context.Context, t *models.Term) error
	DeleteByID(ctx context.Context, id int64) error

	// Match returns terms whose title contains the lower-cased LIKE pattern.
	Match(ctx context.Context, pattern string) ([]models.Term, error)
}
