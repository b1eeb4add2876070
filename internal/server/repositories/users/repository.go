// Package users persists registered accounts.
package users

import (
	"context"

	"github.com/dkravets/taskkeeper/internal/server/models"
)

// Repository is the credential store. Implementations return
// common.ErrorNotFound for missing records and common.ErrorEmailExists when
// a create collides with the unique email index.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateName(ctx context.Context, id string, name string) (*models.User, error)
}
