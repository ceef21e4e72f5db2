package users

import (
	"context"

	"github.com/dmitrijs2005/classkeeper/internal/models"
)

// Repository describes the account operations used by the services layer.
type Repository interface {
	// GetByEmail returns common.ErrorNotFound when no account has the email.
	GetByEmail(ctx context.Context, email string) (*models.UserAccount, error)

	Exists(ctx context.Context, email string) (bool, error)

	// Save inserts an account with Id 0, otherwise updates it.
	Save(ctx context.Context, u *models.UserAccount) (int64, error)
}
