package httpapi

import (
	"net/http"
	"time"

	"github.com/dkravets/taskkeeper/internal/server/models"
	"github.com/dkravets/taskkeeper/internal/server/repositories/tasks"
	"github.com/dkravets/taskkeeper/internal/server/services"
)

type taskResponse struct {
	ID          string    `json:"_id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		User:        task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func toTaskResponses(list []*models.Task) []taskResponse {
	out := make([]taskResponse, 0, len(list))
	for _, task := range list {
		out = append(out, toTaskResponse(task))
	}
	return out
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// updateTaskRequest is the explicit allow-list of mutable task fields. Nil
// means "not supplied"; anything else a client sends (owner, timestamps) is
// dropped at decode time.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	q := r.URL.Query()
	filter := tasks.Filter{
		Keyword: q.Get("keyword"),
		Status:  q.Get("status"),
	}

	list, err := s.tasks.List(r.Context(), user.ID, filter)
	if err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponses(list))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	if err := requireFields(requiredField{"title", req.Title}); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, req.Title, req.Description, req.Status)
	if err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	task, err := s.tasks.Update(r.Context(), user.ID, r.PathValue("id"), patch)
	if err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.tasks.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task removed"})
}
