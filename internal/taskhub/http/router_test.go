package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/internal/taskhub/store/drivers/sqlite"
	"github.com/oakmount/taskhub/pkg/jwtx"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer := &jwtx.Signer{
		Secret: []byte("test-secret"),
		Issuer: "taskhub-test",
		TTL:    time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(signer, "test", st, logger)
	r.UserService = &service.UserService{Store: st}
	r.TaskService = &service.TaskService{Store: st}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// register creates an account and returns a bearer token for it.
func register(t *testing.T, r *Router, username, password string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/v1/users", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	tok := decode[TokenResponse](t, rec)
	require.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/users", "", map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "hunter22",
		"full_name": "Alice Example",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decode[UserResponse](t, rec)
	require.Positive(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, []LabelResponse{{Name: "General", Color: "#5dafb0"}}, user.Categories)

	// The raw body must never leak credential material.
	require.NotContains(t, rec.Body.String(), "password")
	require.NotContains(t, rec.Body.String(), "hash")

	t.Run("duplicate username", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/users", "", map[string]string{
			"username": "alice",
			"password": "other",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "conflict", decode[ErrorResponse](t, rec).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_request", decode[ErrorResponse](t, rec).Error)
	})
}

func TestTokenEndpoint(t *testing.T) {
	r := newTestRouter(t)
	_ = register(t, r, "alice", "hunter22")

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("wrong password", func(t *testing.T) {
		rec := post(url.Values{"username": {"alice"}, "password": {"wrong"}})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := post(url.Values{"username": {"nobody"}, "password": {"x"}})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := post(url.Values{"username": {"alice"}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("token responses are uncacheable", func(t *testing.T) {
		rec := post(url.Values{"username": {"alice"}, "password": {"hunter22"}})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	})
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	t.Run("no token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/tasks", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/tasks", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token from another signer", func(t *testing.T) {
		other := &jwtx.Signer{Secret: []byte("different"), Issuer: "taskhub-test", TTL: time.Hour}
		forged, err := other.Sign(1, "alice")
		require.NoError(t, err)

		rec := doJSON(t, r, http.MethodGet, "/api/v1/users/me", forged, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMeEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "alice", "hunter22")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[UserResponse](t, rec)
	require.Equal(t, "alice", me.Username)

	rec = doJSON(t, r, http.MethodPut, "/api/v1/users/me", token, map[string]string{
		"email":     "new@example.com",
		"full_name": "Alice E",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	me = decode[UserResponse](t, rec)
	require.Equal(t, "new@example.com", me.Email)
	require.Equal(t, "Alice E", me.FullName)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// A deactivated account can no longer obtain tokens.
	form := url.Values{"username": {"alice"}, "password": {"hunter22"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusUnauthorized, rec2.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "alice", "hunter22")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/users/me/categories", token, map[string]string{
		"name": "Work", "color": "#112233",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("invalid color", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/users/me/categories", token, map[string]string{
			"name": "Bad", "color": "red",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/users/me/categories", token, map[string]string{
			"name": "Work", "color": "#445566",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	rec = doJSON(t, r, http.MethodGet, "/api/v1/users/me/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[[]LabelResponse](t, rec)
	require.Len(t, cats, 2) // default General plus Work

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/users/me/categories/Work", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/users/me/categories/Work", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "alice", "hunter22")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/users/me/tags", token, map[string]string{
		"name": "urgent", "color": "#ff0000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/users/me/tags", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []LabelResponse{{Name: "urgent", Color: "#ff0000"}}, decode[[]LabelResponse](t, rec))

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/users/me/tags/urgent", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTaskLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "alice", "hunter22")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, map[string]any{
		"name":        "buy milk",
		"description": "two litres",
		"category":    "Errands",
		"tags":        []string{"shopping"},
		"priority":    1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[TaskResponse](t, rec)
	require.Positive(t, created.ID)
	require.False(t, created.Completed)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]TaskResponse](t, rec)
	require.Len(t, list, 1)
	require.Equal(t, "buy milk", list[0].Name)

	rec = doJSON(t, r, http.MethodPut, "/api/v1/tasks/"+itoa(created.ID), token, map[string]any{
		"priority": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[TaskResponse](t, rec)
	require.Equal(t, 3, updated.Priority)
	require.Equal(t, "buy milk", updated.Name)

	rec = doJSON(t, r, http.MethodPost, "/api/v1/tasks/"+itoa(created.ID)+"/complete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[TaskResponse](t, rec).Completed)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/tasks/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"Errands"}, decode[[]string](t, rec))

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/tasks/"+itoa(created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/tasks/"+itoa(created.ID), token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskOwnershipOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := register(t, r, "alice", "hunter22")
	bobToken := register(t, r, "bob", "hunter22")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/tasks", aliceToken, map[string]any{
		"name": "secret plan",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[TaskResponse](t, rec)

	// Bob sees a 404, not a 403; existence is not revealed.
	rec = doJSON(t, r, http.MethodGet, "/api/v1/tasks/"+itoa(created.ID), bobToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decode[ErrorResponse](t, rec).Error)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/tasks/"+itoa(created.ID), bobToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]TaskResponse](t, rec))
}

func TestTaskValidationOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "alice", "hunter22")

	t.Run("empty name", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, map[string]any{"name": "  "})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_request", decode[ErrorResponse](t, rec).Error)
	})

	t.Run("priority out of range", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, map[string]any{
			"name": "x", "priority": 9,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric task id", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/tasks/abc", token, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskListFiltersOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r, "alice", "hunter22")

	for _, body := range []map[string]any{
		{"name": "a", "category": "Work", "priority": 3, "tags": []string{"office"}},
		{"name": "b", "category": "Errands", "priority": 1, "tags": []string{"shopping"}},
	} {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"?category=Work", []string{"a"}},
		{"?priority=high", []string{"a"}},
		{"?tag=shopping", []string{"b"}},
		{"?completed=false", []string{"a", "b"}},
		{"?category=Work&tag=shopping", nil},
	}
	for _, c := range cases {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/tasks"+c.query, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, c.query)

		var names []string
		for _, task := range decode[[]TaskResponse](t, rec) {
			names = append(names, task.Name)
		}
		require.Equal(t, c.want, names, c.query)
	}

	t.Run("bad priority value", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/tasks?priority=urgent", token, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "test", health.Version)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
