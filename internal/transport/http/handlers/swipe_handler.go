package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	swipessvc "github.com/David-1512/LearnHub/internal/services/swipes"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type SwipeHandler struct {
	swipes *swipessvc.Service
}

func NewSwipeHandler(swipes *swipessvc.Service) *SwipeHandler {
	return &SwipeHandler{swipes: swipes}
}

func (h *SwipeHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	if h.swipes == nil {
		writeInternal(w, "SWIPES_SERVICE_UNAVAILABLE", "swipes service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.swipes.Swipe(r.Context(), identity.UserID, identity.SID, swipessvc.Input{
		TutorID:   req.TutorID,
		Action:    req.Action,
		OffsetX:   req.OffsetX,
		VelocityX: req.VelocityX,
	})
	if err != nil {
		if errors.Is(err, swipessvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "tutorId plus an action or gesture telemetry is required")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to process swipe")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SwipeResponse{
		Decision: string(result.Decision),
		Cursor:   result.Cursor,
		LikeID:   result.LikeID,
		Created:  result.Created,
	})
}
