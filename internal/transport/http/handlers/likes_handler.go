package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	likessvc "github.com/David-1512/LearnHub/internal/services/likes"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type LikesHandler struct {
	likes *likessvc.Service
}

func NewLikesHandler(likes *likessvc.Service) *LikesHandler {
	return &LikesHandler{likes: likes}
}

// List returns the like collection, optionally expanded with tutor cards.
// An empty collection is a 200 with [], never a 404.
func (h *LikesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.likes == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
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

	if query.Get("expand") == "tutor" {
		items, err := h.likes.ListExpanded(r.Context(), studentID)
		if err != nil {
			writeInternal(w, "INTERNAL_ERROR", "failed to load likes")
			return
		}
		out := make([]dto.LikeExpandedResponse, 0, len(items))
		for _, item := range items {
			out = append(out, mapLikedTutor(item))
		}
		httperrors.Write(w, http.StatusOK, out)
		return
	}

	items, err := h.likes.List(r.Context(), studentID, query.Get("tutorId"))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load likes")
		return
	}
	out := make([]dto.LikeResponse, 0, len(items))
	for _, item := range items {
		out = append(out, mapLike(item))
	}
	httperrors.Write(w, http.StatusOK, out)
}

// Create likes a tutor for the signed-in student. 201 on a new record, 200
// with the original record when the pair already exists.
func (h *LikesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.likes == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.LikeCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	like, created, err := h.likes.Like(r.Context(), identity.UserID, req.TutorID)
	if err != nil {
		if errors.Is(err, likessvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "tutorId is required")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to record like")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httperrors.Write(w, status, mapLike(like))
}

func (h *LikesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.likes == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	removed, err := h.likes.Withdraw(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, likessvc.ErrNotFound):
			writeNotFound(w, "LIKE_NOT_FOUND", "like not found")
		case errors.Is(err, likessvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "like belongs to another student")
		case errors.Is(err, likessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "like id is required")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to withdraw like")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, mapLike(removed))
}
