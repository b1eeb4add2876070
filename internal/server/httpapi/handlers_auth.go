package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dkravets/taskkeeper/internal/common"
	"github.com/dkravets/taskkeeper/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the flat shape the browser client stores on login.
type authResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func toAuthResponse(user *models.User, token string) authResponse {
	return authResponse{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}
}

// decodeJSON reads the request body into dst, reporting malformed input as a
// validation error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrorValidation)
	}
	return nil
}

type requiredField struct {
	name  string
	value string
}

// requireFields mirrors the pre-store validation layer: every listed field
// must be non-empty before the request reaches a service.
func requireFields(fields ...requiredField) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", common.ErrorValidation, strings.Join(missing, ", "))
	}
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	if err := requireFields(
		requiredField{"name", req.Name},
		requiredField{"email", req.Email},
		requiredField{"password", req.Password},
	); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", user.Email)
	writeJSON(w, http.StatusCreated, toAuthResponse(user, token))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	if err := requireFields(
		requiredField{"email", req.Email},
		requiredField{"password", req.Password},
	); err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(user, token))
}
