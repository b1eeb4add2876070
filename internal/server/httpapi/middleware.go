package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dkravets/taskkeeper/internal/common"
	"github.com/dkravets/taskkeeper/internal/server/auth"
	"github.com/dkravets/taskkeeper/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// withAuth is the bearer token gate. It extracts and verifies the token, then
// resolves the claim to a live user record; a valid signature for a vanished
// user is treated as unauthenticated, not as a server error. The resolved
// user is attached to the request context for downstream handlers.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" || !ok || token == "" {
			s.respondError(r.Context(), w, common.ErrorUnauthorized)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			s.respondError(r.Context(), w, err)
			return
		}

		user, err := s.userRepo.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				s.respondError(r.Context(), w, common.ErrorUnauthorized)
				return
			}
			s.respondError(r.Context(), w, fmt.Errorf("%w: %v", common.ErrorInternal, err))
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

// userFromContext returns the identity attached by withAuth. It is nil only
// if a handler was wired without the gate, which is a programming error.
func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// corsMiddleware allows the browser client, served from a different origin,
// to call the API.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
