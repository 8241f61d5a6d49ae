package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	feedsvc "github.com/David-1512/LearnHub/internal/services/feed"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type FeedHandler struct {
	feed *feedsvc.Service
}

func NewFeedHandler(feed *feedsvc.Service) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	deck, err := h.feed.GetDeck(r.Context(), identity.UserID, identity.SID)
	if err != nil {
		if errors.Is(err, feedsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid feed request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load feed")
		return
	}

	tutors := make([]dto.TutorResponse, 0, len(deck.Tutors))
	for _, tutor := range deck.Tutors {
		tutors = append(tutors, mapTutor(tutor))
	}
	httperrors.Write(w, http.StatusOK, dto.FeedResponse{
		Tutors: tutors,
		Cursor: deck.Cursor,
	})
}

func (h *FeedHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.feed.Reset(r.Context(), identity.SID); err != nil {
		if errors.Is(err, feedsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid reset request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to reset feed")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.FeedResetResponse{Cursor: 0})
}
