package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fungi-kb/apiserver/internal/services"
	"github.com/fungi-kb/apiserver/types"
)

// UserHandler provides the administrative user endpoints.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user management routes. Listing requires a valid
// access token; mutations require the admin role.
func UserRouter(r chi.Router, userService *services.UserService, mw *Middleware) {
	handler := NewUserHandler(userService)

	r.With(mw.RequireAuth).Get("/all", handler.ListUsers)
	r.With(mw.RequireAuth, RequireRole(types.RoleAdmin)).Post("/add", handler.AddUser)
	r.With(mw.RequireAuth, RequireRole(types.RoleAdmin)).Put("/update", handler.UpdateUser)
	r.With(mw.RequireAuth, RequireRole(types.RoleAdmin)).Delete("/delete/{userID}", handler.DeleteUser)
}

// UserUpsertRequest wraps the user payload for add and update, mirroring
// the register envelope.
type UserUpsertRequest struct {
	User UserPayload `json:"user"`
}

type UserPayload struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req UserUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.User.Name = strings.TrimSpace(req.User.Name)
	req.User.Email = strings.TrimSpace(req.User.Email)
	if req.User.Name == "" || req.User.Email == "" || req.User.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	user, err := h.userService.Add(r.Context(), req.User.Name, req.User.Email, req.User.Password, req.User.Role)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrEmailInUse):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UserUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.User.Name = strings.TrimSpace(req.User.Name)
	req.User.Email = strings.TrimSpace(req.User.Email)
	if req.User.ID < 1 || req.User.Name == "" || req.User.Email == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	user, err := h.userService.Update(r.Context(), types.User{
		ID:    req.User.ID,
		Name:  req.User.Name,
		Email: req.User.Email,
		Role:  req.User.Role,
	}, req.User.Password)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrEmailInUse):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
