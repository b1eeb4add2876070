// Package repomanager wires the persistence backend and hands out the
// per-entity repositories.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkravets/taskkeeper/internal/server/repositories/tasks"
	"github.com/dkravets/taskkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Tasks() tasks.Repository
}
