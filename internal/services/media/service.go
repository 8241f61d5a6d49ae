package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNoAvatar       = errors.New("no avatar uploaded")
	ErrUnsupportedExt = errors.New("unsupported file extension")
)

const maxAvatarSize = 5 << 20

var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

type ProfileStore interface {
	SaveAvatarKey(ctx context.Context, userID, key string) error
	GetAvatarKey(ctx context.Context, userID string) (string, error)
}

type ObjectStorage interface {
	StoreAvatar(ctx context.Context, userID, ext, contentType string, body io.Reader, size int64) (string, error)
	AvatarURL(ctx context.Context, key string) (string, error)
	RemoveAvatar(ctx context.Context, key string) error
}

type Avatar struct {
	Key string
	URL string
}

type Service struct {
	profiles ProfileStore
	storage  ObjectStorage
}

func NewService(profiles ProfileStore, storage ObjectStorage) *Service {
	return &Service{
		profiles: profiles,
		storage:  storage,
	}
}

// UploadAvatar stores the image and points the user's profile at it. The
// previous object, if any, is removed after the new reference is saved.
func (s *Service) UploadAvatar(ctx context.Context, userID, fileName, contentType string, body io.Reader, size int64) (Avatar, error) {
	if strings.TrimSpace(userID) == "" || body == nil || size <= 0 || size > maxAvatarSize {
		return Avatar{}, ErrValidation
	}
	if s.profiles == nil || s.storage == nil {
		return Avatar{}, fmt.Errorf("media dependencies are not configured")
	}

	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".jpg"
	}
	if _, ok := allowedExts[ext]; !ok {
		return Avatar{}, ErrUnsupportedExt
	}

	objectKey, err := s.storage.StoreAvatar(ctx, userID, ext, contentType, body, size)
	if err != nil {
		return Avatar{}, fmt.Errorf("store avatar: %w", err)
	}

	previous, err := s.profiles.GetAvatarKey(ctx, userID)
	if err != nil && !errors.Is(err, pgrepo.ErrAvatarNotFound) {
		_ = s.storage.RemoveAvatar(ctx, objectKey)
		return Avatar{}, fmt.Errorf("load previous avatar: %w", err)
	}

	if err := s.profiles.SaveAvatarKey(ctx, userID, objectKey); err != nil {
		_ = s.storage.RemoveAvatar(ctx, objectKey)
		return Avatar{}, fmt.Errorf("save avatar reference: %w", err)
	}

	if previous != "" && previous != objectKey {
		_ = s.storage.RemoveAvatar(ctx, previous)
	}

	url, err := s.storage.AvatarURL(ctx, objectKey)
	if err != nil {
		return Avatar{}, fmt.Errorf("presign avatar url: %w", err)
	}

	return Avatar{Key: objectKey, URL: url}, nil
}

func (s *Service) GetAvatar(ctx context.Context, userID string) (Avatar, error) {
	if strings.TrimSpace(userID) == "" {
		return Avatar{}, ErrValidation
	}
	if s.profiles == nil || s.storage == nil {
		return Avatar{}, fmt.Errorf("media dependencies are not configured")
	}

	key, err := s.profiles.GetAvatarKey(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAvatarNotFound) {
			return Avatar{}, ErrNoAvatar
		}
		return Avatar{}, fmt.Errorf("load avatar reference: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return Avatar{}, ErrNoAvatar
	}

	url, err := s.storage.AvatarURL(ctx, key)
	if err != nil {
		return Avatar{}, fmt.Errorf("presign avatar url: %w", err)
	}
	return Avatar{Key: key, URL: url}, nil
}
