package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fungi-kb/apiserver/internal/services"
	"github.com/fungi-kb/apiserver/types"
)

// maxMediaUploadBytes caps a single media upload.
const maxMediaUploadBytes = 10 << 20

// MushroomHandler provides the species document endpoints.
type MushroomHandler struct {
	mushroomService *services.MushroomService
}

func NewMushroomHandler(mushroomService *services.MushroomService) *MushroomHandler {
	return &MushroomHandler{mushroomService: mushroomService}
}

// MushroomRouter registers species document routes. Reads are public,
// writes require a valid access token, deletion requires admin.
func MushroomRouter(r chi.Router, mushroomService *services.MushroomService, mw *Middleware) {
	handler := NewMushroomHandler(mushroomService)

	r.Get("/", handler.ListMushrooms)
	r.Get("/{mushroomID}", handler.GetMushroom)
	r.With(mw.RequireAuth).Post("/", handler.CreateMushroom)
	r.With(mw.RequireAuth).Put("/{mushroomID}", handler.UpdateMushroom)
	r.With(mw.RequireAuth).Post("/{mushroomID}/media", handler.UploadMedia)
	r.With(mw.RequireAuth, RequireRole(types.RoleAdmin)).Delete("/{mushroomID}", handler.DeleteMushroom)
}

// MushroomListResponse is the paginated list payload.
type MushroomListResponse struct {
	Items []types.Mushroom `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
}

func (h *MushroomHandler) ListMushrooms(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.mushroomService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list mushrooms")
		return
	}
	if items == nil {
		items = []types.Mushroom{}
	}

	writeJSON(w, http.StatusOK, MushroomListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *MushroomHandler) GetMushroom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mushroomID")

	mushroom, err := h.mushroomService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrMushroomNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load mushroom")
		return
	}

	writeJSON(w, http.StatusOK, mushroom)
}

func (h *MushroomHandler) CreateMushroom(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	var mushroom types.Mushroom
	if err := json.NewDecoder(r.Body).Decode(&mushroom); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.mushroomService.Create(r.Context(), mushroom, identity.Name)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrScientificNameInUse):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create mushroom")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *MushroomHandler) UpdateMushroom(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	var mushroom types.Mushroom
	if err := json.NewDecoder(r.Body).Decode(&mushroom); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	mushroom.ID = chi.URLParam(r, "mushroomID")

	updated, err := h.mushroomService.Update(r.Context(), mushroom, identity.Name)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrMushroomNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrScientificNameInUse):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update mushroom")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *MushroomHandler) DeleteMushroom(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	id := chi.URLParam(r, "mushroomID")
	if err := h.mushroomService.Delete(r.Context(), id, identity.Name); err != nil {
		if errors.Is(err, services.ErrMushroomNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete mushroom")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadMedia accepts a multipart upload and attaches it to the document's
// media gallery.
func (h *MushroomHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mushroomID")

	r.Body = http.MaxBytesReader(w, r.Body, maxMediaUploadBytes)
	if err := r.ParseMultipartForm(maxMediaUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	updated, err := h.mushroomService.AttachMedia(r.Context(), id, header.Filename, data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMushroomNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrMediaStorageDisabled):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to store media")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
