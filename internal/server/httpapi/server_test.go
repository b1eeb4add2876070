package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkravets/taskkeeper/internal/logging"
	"github.com/dkravets/taskkeeper/internal/server/config"
	"github.com/dkravets/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dkravets/taskkeeper/internal/server/services"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	rm := repomanager.NewInMemoryRepositoryManager()
	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
	}

	us := services.NewUserService(rm.Users(), cfg)
	ts := services.NewTaskService(rm.Tasks())
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	s := NewServer(":0", logger, us, ts, rm.Users(), testSecret)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return srv
}

// doJSON performs a request and decodes the JSON response body into out
// (when out is non-nil).
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp
}

type authJSON struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type userJSON struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type taskJSON struct {
	ID          string    `json:"_id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type messageJSON struct {
	Message string `json:"message"`
}

func registerUser(t *testing.T, srv *httptest.Server, name, email, password string) authJSON {
	t.Helper()

	var out authJSON
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/register", "",
		map[string]string{"name": name, "email": email, "password": password}, &out)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	if out.ID == "" || out.Token == "" {
		t.Fatalf("register %s: incomplete response %+v", email, out)
	}
	return out
}

func createTask(t *testing.T, srv *httptest.Server, token string, body map[string]string) taskJSON {
	t.Helper()

	var out taskJSON
	resp := doJSON(t, srv, http.MethodPost, "/api/tasks", token, body, &out)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task: status %d", resp.StatusCode)
	}
	return out
}
