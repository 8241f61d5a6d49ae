package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	mediasvc "github.com/David-1512/LearnHub/internal/services/media"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

const maxUploadMemory = 8 << 20

type MediaHandler struct {
	media *mediasvc.Service
}

func NewMediaHandler(media *mediasvc.Service) *MediaHandler {
	return &MediaHandler{media: media}
}

func (h *MediaHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "multipart form is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file field is required")
		return
	}
	defer file.Close()

	avatar, err := h.media.UploadAvatar(r.Context(), identity.UserID, header.Filename,
		header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, mediasvc.ErrUnsupportedExt):
			writeBadRequest(w, "UNSUPPORTED_FILE_TYPE", "unsupported file extension")
		case errors.Is(err, mediasvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid avatar upload")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to upload avatar")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.AvatarResponse{
		Key: avatar.Key,
		URL: avatar.URL,
	})
}

func (h *MediaHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	avatar, err := h.media.GetAvatar(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, mediasvc.ErrNoAvatar):
			writeNotFound(w, "AVATAR_NOT_FOUND", "no avatar uploaded")
		case errors.Is(err, mediasvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid avatar request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load avatar")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AvatarResponse{
		Key: avatar.Key,
		URL: avatar.URL,
	})
}
