package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	likessvc "github.com/David-1512/LearnHub/internal/services/likes"
	matchessvc "github.com/David-1512/LearnHub/internal/services/matches"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type MatchesHandler struct {
	matches *matchessvc.Service
}

func NewMatchesHandler(matches *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{matches: matches}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.matches == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	items, err := h.matches.List(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load matches")
		return
	}

	out := make([]dto.LikeExpandedResponse, 0, len(items))
	for _, item := range items {
		out = append(out, mapLikedTutor(item))
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *MatchesHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	if h.matches == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	err := h.matches.Withdraw(r.Context(), identity.UserID, chi.URLParam(r, "likeId"))
	if err != nil {
		switch {
		case errors.Is(err, likessvc.ErrNotFound):
			writeNotFound(w, "LIKE_NOT_FOUND", "like not found")
		case errors.Is(err, likessvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "like belongs to another student")
		case errors.Is(err, matchessvc.ErrValidation), errors.Is(err, likessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "like id is required")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to withdraw match")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
