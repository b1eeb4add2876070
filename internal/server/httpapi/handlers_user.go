package httpapi

import (
	"net/http"
	"time"

	"github.com/dkravets/taskkeeper/internal/server/models"
)

type userResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	updated, err := s.users.UpdateProfile(r.Context(), user.ID, req.Name)
	if err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
