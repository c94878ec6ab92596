package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fungi-kb/apiserver/internal/services"
	"github.com/fungi-kb/apiserver/types"
)

type mushroomTestEnv struct {
	router     *chi.Mux
	userToken  string
	adminToken string
}

func newMushroomTestEnv(t *testing.T) *mushroomTestEnv {
	t.Helper()

	tokens := testTokenManager()
	mushroomService := services.NewMushroomService(newFakeMushroomRepo(), nil, nil)
	mw := NewMiddleware(tokens)

	router := chi.NewRouter()
	router.Route("/mushrooms", func(r chi.Router) {
		MushroomRouter(r, mushroomService, mw)
	})

	userToken, err := tokens.IssueAccess(2, "Mary", types.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokens.IssueAccess(1, "Admin", types.RoleAdmin)
	require.NoError(t, err)

	return &mushroomTestEnv{router: router, userToken: userToken, adminToken: adminToken}
}

func (e *mushroomTestEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
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

func (e *mushroomTestEnv) create(t *testing.T, name string) types.Mushroom {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/mushrooms", e.userToken, types.Mushroom{
		ScientificName: name,
		Visibility:     types.VisibilityPublic,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created types.Mushroom
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestCreateMushroomEndpoint(t *testing.T) {
	env := newMushroomTestEnv(t)

	created := env.create(t, "Pleurotus ostreatus")
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Mary", created.CreatedBy)
	require.False(t, created.Verified)
}

func TestCreateMushroomEndpoint_RequiresAuth(t *testing.T) {
	env := newMushroomTestEnv(t)

	rec := env.do(t, http.MethodPost, "/mushrooms", "", types.Mushroom{
		ScientificName: "Pleurotus ostreatus",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateMushroomEndpoint_Validation(t *testing.T) {
	env := newMushroomTestEnv(t)

	rec := env.do(t, http.MethodPost, "/mushrooms", env.userToken, types.Mushroom{
		ScientificName: "Pleurotus ostreatus",
		TrophicModes:   []string{"photosynthetic"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMushroomEndpoint_Duplicate(t *testing.T) {
	env := newMushroomTestEnv(t)
	env.create(t, "Pleurotus ostreatus")

	rec := env.do(t, http.MethodPost, "/mushrooms", env.userToken, types.Mushroom{
		ScientificName: "Pleurotus ostreatus",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMushroomEndpoint_Public(t *testing.T) {
	env := newMushroomTestEnv(t)
	created := env.create(t, "Pleurotus ostreatus")

	rec := env.do(t, http.MethodGet, "/mushrooms/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched types.Mushroom
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)

	rec = env.do(t, http.MethodGet, "/mushrooms/does-not-exist", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMushroomsEndpoint(t *testing.T) {
	env := newMushroomTestEnv(t)
	env.create(t, "Agaricus bisporus")
	env.create(t, "Lentinula edodes")
	env.create(t, "Pleurotus ostreatus")

	rec := env.do(t, http.MethodGet, "/mushrooms?page=2&limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var parsed MushroomListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	require.Equal(t, 3, parsed.Total)
	require.Equal(t, 2, parsed.Page)
	require.Equal(t, 1, parsed.Limit)
	require.Len(t, parsed.Items, 1)
	require.Equal(t, "Lentinula edodes", parsed.Items[0].ScientificName)
}

func TestListMushroomsEndpoint_BadPagination(t *testing.T) {
	env := newMushroomTestEnv(t)

	rec := env.do(t, http.MethodGet, "/mushrooms?page=zero", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/mushrooms?limit=-5", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMushroomEndpoint(t *testing.T) {
	env := newMushroomTestEnv(t)
	created := env.create(t, "Pleurotus ostreatus")

	rec := env.do(t, http.MethodPut, "/mushrooms/"+created.ID, env.userToken, types.Mushroom{
		ScientificName: "Pleurotus ostreatus",
		Description:    "Updated description",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Mushroom
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Updated description", updated.Description)
	require.Equal(t, "Mary", updated.CreatedBy)

	rec = env.do(t, http.MethodPut, "/mushrooms/missing-id", env.userToken, types.Mushroom{
		ScientificName: "Lentinula edodes",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMushroomEndpoint_AdminOnly(t *testing.T) {
	env := newMushroomTestEnv(t)
	created := env.create(t, "Pleurotus ostreatus")

	rec := env.do(t, http.MethodDelete, "/mushrooms/"+created.ID, env.userToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/mushrooms/"+created.ID, env.adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/mushrooms/"+created.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// newMultipartFile writes a single-file multipart body and returns its
// content type.
func newMultipartFile(t *testing.T, body *bytes.Buffer, filename string, data []byte) string {
	t.Helper()

	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return writer.FormDataContentType()
}

func TestUploadMediaEndpoint_StorageDisabled(t *testing.T) {
	env := newMushroomTestEnv(t)
	created := env.create(t, "Pleurotus ostreatus")

	var body bytes.Buffer
	writer := newMultipartFile(t, &body, "photo.jpg", []byte("fake image bytes"))

	req := httptest.NewRequest(http.MethodPost, "/mushrooms/"+created.ID+"/media", &body)
	req.Header.Set("Content-Type", writer)
	req.Header.Set("Authorization", "Bearer "+env.userToken)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
