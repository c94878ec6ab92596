package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fungi-kb/apiserver/internal/services"
	"github.com/fungi-kb/apiserver/types"
)

type userTestEnv struct {
	router     *chi.Mux
	repo       *fakeUserRepo
	userToken  string
	adminToken string
}

func newUserTestEnv(t *testing.T) *userTestEnv {
	t.Helper()

	tokens := testTokenManager()
	repo := newFakeUserRepo()
	userService := services.NewUserService(repo)
	mw := NewMiddleware(tokens)

	router := chi.NewRouter()
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, userService, mw)
	})

	userToken, err := tokens.IssueAccess(2, "Mary", types.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokens.IssueAccess(1, "Admin", types.RoleAdmin)
	require.NoError(t, err)

	return &userTestEnv{router: router, repo: repo, userToken: userToken, adminToken: adminToken}
}

func (e *userTestEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestListUsersEndpoint(t *testing.T) {
	env := newUserTestEnv(t)
	_, err := env.repo.Create(t.Context(), types.User{Name: "Mary", Email: "mary@example.com", Role: types.RoleUser})
	require.NoError(t, err)

	// Any authenticated user may list; anonymous may not.
	rec := env.do(t, http.MethodGet, "/users/all", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/users/all", env.userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var parsed map[string][]types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	require.Len(t, parsed["users"], 1)
	require.Equal(t, "mary@example.com", parsed["users"][0].Email)
}

func TestAddUserEndpoint_AdminOnly(t *testing.T) {
	env := newUserTestEnv(t)

	payload := UserUpsertRequest{User: UserPayload{
		Name:     "New Admin",
		Email:    "new-admin@example.com",
		Password: "secret123",
		Role:     types.RoleAdmin,
	}}

	rec := env.do(t, http.MethodPost, "/users/add", env.userToken, payload)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/users/add", env.adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var parsed map[string]types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	require.Equal(t, types.RoleAdmin, parsed["user"].Role)
}

func TestAddUserEndpoint_Invalid(t *testing.T) {
	env := newUserTestEnv(t)

	rec := env.do(t, http.MethodPost, "/users/add", env.adminToken, UserUpsertRequest{
		User: UserPayload{Name: "No Email", Password: "secret123"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/users/add", env.adminToken, UserUpsertRequest{
		User: UserPayload{Name: "Bad Role", Email: "bad@example.com", Password: "secret123", Role: "superuser"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserEndpoint(t *testing.T) {
	env := newUserTestEnv(t)
	created, err := env.repo.Create(t.Context(), types.User{Name: "Mary", Email: "mary@example.com", Role: types.RoleUser})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/users/update", env.adminToken, UserUpsertRequest{
		User: UserPayload{ID: created.ID, Name: "Mary Renamed", Email: "mary@example.com", Role: types.RoleAdmin},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var parsed map[string]types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	require.Equal(t, "Mary Renamed", parsed["user"].Name)
	require.Equal(t, types.RoleAdmin, parsed["user"].Role)

	rec = env.do(t, http.MethodPut, "/users/update", env.adminToken, UserUpsertRequest{
		User: UserPayload{ID: 404, Name: "Ghost", Email: "ghost@example.com"},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUserEndpoint(t *testing.T) {
	env := newUserTestEnv(t)
	created, err := env.repo.Create(t.Context(), types.User{Name: "Mary", Email: "mary@example.com", Role: types.RoleUser})
	require.NoError(t, err)

	rec := env.do(t, http.MethodDelete, "/users/delete/"+strconv.Itoa(created.ID), env.userToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/users/delete/"+strconv.Itoa(created.ID), env.adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/users/delete/"+strconv.Itoa(created.ID), env.adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/users/delete/not-a-number", env.adminToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
