package tasks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dkravets/taskkeeper/internal/common"
	"github.com/dkravets/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository is a map-backed Repository used in tests and local runs
// without a database. Listing matches the Postgres semantics: owner-scoped,
// ILIKE-style keyword match, exact status match, newest-created first.
type InMemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
	seq   int64
	order map[string]int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tasks: make(map[string]*models.Task),
		order: make(map[string]int64),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := *task
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.tasks[stored.ID] = &stored

	r.seq++
	r.order[stored.ID] = r.seq

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string, filter Filter) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword := strings.ToLower(filter.Keyword)
	filterStatus := filter.Status != "" && filter.Status != models.StatusFilterAll

	result := make([]*models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID != ownerID {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(t.Title), keyword) {
			continue
		}
		if filterStatus && string(t.Status) != filter.Status {
			continue
		}
		out := *t
		result = append(result, &out)
	}

	// newest first; insertion order breaks created-at ties
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return r.order[result[i].ID] > r.order[result[j].ID]
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	stored.Title = task.Title
	stored.Description = task.Description
	stored.Status = task.Status
	stored.UpdatedAt = time.Now()

	out := *stored
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.tasks, id)
	delete(r.order, id)
	return nil
}
