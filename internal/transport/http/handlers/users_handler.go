package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	userssvc "github.com/David-1512/LearnHub/internal/services/users"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type UsersHandler struct {
	users *userssvc.Service
}

func NewUsersHandler(users *userssvc.Service) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, userssvc.ErrNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "user not found")
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "user id is required")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load user")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, mapUser(user.Public()))
}

// Patch updates a profile. Owners patch themselves; admins patch anyone.
func (h *UsersHandler) Patch(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	targetID := chi.URLParam(r, "id")
	if targetID != identity.UserID && !identity.HasRole(enums.RoleAdmin) {
		writeForbidden(w, "FORBIDDEN", "cannot modify another user's profile")
		return
	}

	var req dto.UserPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	err := h.users.UpdateProfile(r.Context(), targetID, userssvc.ProfilePatch{
		Name:     req.Name,
		Age:      req.Age,
		City:     req.City,
		Schedule: req.Schedule,
		Bio:      req.Bio,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		var verr *userssvc.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidation(w, verr)
		case errors.Is(err, userssvc.ErrNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "user not found")
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update profile")
		}
		return
	}

	user, err := h.users.GetByID(r.Context(), targetID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load updated user")
		return
	}

	httperrors.Write(w, http.StatusOK, mapUser(user.Public()))
}
