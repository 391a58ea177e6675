package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/notify"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository/memory"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/service"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.Password.BcryptCost = bcrypt.MinCost
	cfg.Session.Expiration = 3600
	cfg.Session.CookieName = "__job_hub_token"
	cfg.Email.UserDomain = "jobhub.test"
	cfg.InitialAdmin.Username = "Admin"
	cfg.InitialAdmin.Password = "Admin"
	cfg.InitialAdmin.FullName = "Administrator"
	cfg.InitialAdmin.FirstName = "Admin"
	cfg.InitialAdmin.DateOfBirth = "2000-01-01"
	cfg.InitialAdmin.Gender = "Other"

	store := memory.New()
	require.NoError(t, service.Bootstrap(context.Background(), cfg, store, service.BcryptHasher{Cost: cfg.Password.BcryptCost}))

	validator, err := service.NewValidator()
	require.NoError(t, err)

	notifier := notify.Discard{}
	identity := service.NewIdentity(cfg, store, session.NewMemoryStore(), notifier, validator)
	catalog := service.NewCatalog(store, validator)
	applications := service.NewApplications(store, catalog, identity, notifier, validator)

	h := NewHandler(cfg, identity, catalog, applications)
	h.RegisterRoutes()
	return h
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h *Handler, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func login(t *testing.T, h *Handler, username, password string) *http.Cookie {
	t.Helper()

	rec, resp := do(t, h, http.MethodPost, "/auth/login", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "__job_hub_token" {
			return c
		}
	}
	t.Fatal("登录后没有设置 cookie")
	return nil
}

func registerAndLogin(t *testing.T, h *Handler, username string) *http.Cookie {
	t.Helper()

	rec, resp := do(t, h, http.MethodPost, "/auth/register", map[string]string{
		"username":    username,
		"password":    username + "-secret",
		"fullName":    username + " Liddell",
		"firstName":   username,
		"dateOfBirth": "1999-09-09",
		"gender":      "Female",
	})
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)

	return login(t, h, username, username+"-secret")
}

func createJob(t *testing.T, h *Handler, admin *http.Cookie, title string) int64 {
	t.Helper()

	rec, resp := do(t, h, http.MethodPost, "/jobs", map[string]string{
		"title":        title,
		"company":      "Acme",
		"location":     "Guangzhou",
		"description":  "Build things",
		"requirements": "Go",
		"salary":       "20k",
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)

	var job struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &job))
	return job.ID
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
