// Package tasks persists owned task records.
package tasks

import (
	"context"

	"github.com/dkravets/taskkeeper/internal/server/models"
)

// Filter narrows ListByOwner results. Keyword matches the title as a
// case-insensitive substring; Status filters to an exact match unless it is
// empty or the models.StatusFilterAll sentinel.
type Filter struct {
	Keyword string
	Status  string
}

// Repository stores task records. Ownership is not checked here: callers
// resolve the record first and compare owners (the service layer does this),
// mirroring the store's single-document read-modify-write model.
// Implementations return common.ErrorNotFound for missing ids.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string, filter Filter) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}
