package todos

import (
	"context"

	"github.com/dmitrijs2005/classkeeper/internal/models"
)

// Repository describes CRUD and query operations for TodoItem objects.
type Repository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.TodoItem, error)
	ListAll(ctx context.Context) ([]models.TodoItem, error)

	// GetByID returns common.ErrorNotFound when no item has the id.
	GetByID(ctx context.Context, id int64) (*models.TodoItem, error)

	// Save inserts an item with Id 0 and sets its new id, otherwise updates it.
	Save(ctx context.Context, item *models.TodoItem) (int64, error)

	Delete(ctx context.Context, item *models.TodoItem) error
	DeleteByID(ctx context.Context, id int64) error

	Match(ctx context.Context, pattern string) ([]models.TodoItem, error)
}
