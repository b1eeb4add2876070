package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkravets/taskkeeper/internal/server/repositories/tasks"
	"github.com/dkravets/taskkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs the repositories with process-local maps.
// Used by tests and by local runs that do not need durability.
type InMemoryRepositoryManager struct {
	users users.Repository
	tasks tasks.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		tasks: tasks.NewInMemoryRepository(),
	}
}
