// Package httpapi exposes the REST surface: authentication endpoints, the
// profile endpoints, and the owner-scoped task CRUD, all behind the bearer
// token gate.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkravets/taskkeeper/internal/logging"
	"github.com/dkravets/taskkeeper/internal/server/repositories/users"
	"github.com/dkravets/taskkeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	tasks     *services.TaskService
	userRepo  users.Repository
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, ts *services.TaskService, userRepo users.Repository, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		tasks:     ts,
		userRepo:  userRepo,
		jwtSecret: []byte(secretKey),
	}
}

// Handler builds the route table. Protected routes go through withAuth, which
// must run before any handler that touches owned resources.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/user/profile", s.withAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /api/user/profile", s.withAuth(s.handleUpdateProfile))

	mux.HandleFunc("GET /api/tasks", s.withAuth(s.handleListTasks))
	mux.HandleFunc("POST /api/tasks", s.withAuth(s.handleCreateTask))
	mux.HandleFunc("PUT /api/tasks/{id}", s.withAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.withAuth(s.handleDeleteTask))

	return s.corsMiddleware(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("API is running..."))
}
