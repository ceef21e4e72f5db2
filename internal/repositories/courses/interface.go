package courses

import (
	"context"

	"github.com/dmitrijs2005/classkeeper/internal/models"
)

// Repository describes CRUD and query operations for Course objects.
type Repository interface {
	// ListByTerm returns the courses of a term ordered by start date.
	ListByTerm(ctx context.Context, termID int64) ([]models.Course, error)

	// ListAll returns every course ordered by start date.
	ListAll(ctx context.Context) ([]models.Course, error)

	// GetByID returns common.ErrorNotFound when no course has the id.
	GetByID(ctx context.Context, id int64) (*models.Course, error)

	// Save inserts a course with Id 0 and sets its new id, otherwise updates it.
	Save(ctx context.Context, c *models.Course) (int64, error)

	Delete(ctx context.Context, c *models.Course) error
	DeleteByID(ctx context.Context, id int64) error

	// Match returns courses whose title or notes contain the LIKE pattern.
	Match(ctx context.Context, pattern string) ([]models.Course, error)
}
