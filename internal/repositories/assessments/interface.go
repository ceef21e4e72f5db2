package assessments

import (
	"context"

	"github.com/dmitrijs2005/classkeeper/internal/models"
)

// Repository describes CRUD and query operations for Assessment objects.
type Repository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error)
	ListAll(ctx context.Context) ([]models.Assessment, error)

	// GetByID returns common.ErrorNotFound when no assessment has the id.
	GetByID(ctx context.Context, id int64) (*models.Assessment, error)

	// Save inserts an assessment with Id 0 and sets its new id, otherwise updates it.
	Save(ctx context.Context, a *models.Assessment) (int64, error)

	Delete(ctx context.Context, a *models.Assessment) error
	DeleteByID(ctx context.Context, id int64) error

	Match(ctx context.Context, pattern string) ([]models.Assessment, error)
}
