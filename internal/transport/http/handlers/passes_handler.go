package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	passessvc "github.com/David-1512/LearnHub/internal/services/passes"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type PassesHandler struct {
	passes *passessvc.Service
}

func NewPassesHandler(passes *passessvc.Service) *PassesHandler {
	return &PassesHandler{passes: passes}
}

func (h *PassesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.passes == nil {
		writeInternal(w, "PASSES_SERVICE_UNAVAILABLE", "passes service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	query := r.URL.Query()
	studentID := query.Get("studentId")
	if studentID == "" && !identity.HasRole(enums.RoleAdmin) {
		studentID = identity.UserID
	}

	items, err := h.passes.List(r.Context(), studentID, query.Get("tutorId"))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load passes")
		return
	}

	out := make([]dto.PassResponse, 0, len(items))
	for _, item := range items {
		out = append(out, mapPass(item))
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *PassesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.passes == nil {
		writeInternal(w, "PASSES_SERVICE_UNAVAILABLE", "passes service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.PassCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	pass, created, err := h.passes.Record(r.Context(), identity.UserID, req.TutorID)
	if err != nil {
		if errors.Is(err, passessvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "tutorId is required")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to record pass")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httperrors.Write(w, status, mapPass(pass))
}

func (h *PassesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.passes == nil {
		writeInternal(w, "PASSES_SERVICE_UNAVAILABLE", "passes service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	removed, err := h.passes.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, passessvc.ErrNotFound):
			writeNotFound(w, "PASS_NOT_FOUND", "pass not found")
		case errors.Is(err, passessvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "pass belongs to another student")
		case errors.Is(err, passessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "pass id is required")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to delete pass")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, mapPass(removed))
}
