package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
)

type memoryProfileStore struct {
	keys map[string]string
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{keys: make(map[string]string)}
}

func (s *memoryProfileStore) SaveAvatarKey(_ context.Context, userID, key string) error {
	s.keys[userID] = key
	return nil
}

func (s *memoryProfileStore) GetAvatarKey(_ context.Context, userID string) (string, error) {
	key, ok := s.keys[userID]
	if !ok {
		return "", pgrepo.ErrAvatarNotFound
	}
	return key, nil
}

type memoryObjectStorage struct {
	objects map[string][]byte
	failPut bool
}

func newMemoryObjectStorage() *memoryObjectStorage {
	return &memoryObjectStorage{objects: make(map[string][]byte)}
}

func (s *memoryObjectStorage) StoreAvatar(_ context.Context, userID, ext, _ string, body io.Reader, _ int64) (string, error) {
	if s.failPut {
		return "", errors.New("storage rejected the object")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("users/%s/avatar/%04d%s", userID, len(s.objects), ext)
	s.objects[key] = data
	return key, nil
}

func (s *memoryObjectStorage) AvatarURL(_ context.Context, key string) (string, error) {
	return "https://s3.local/" + key, nil
}

func (s *memoryObjectStorage) RemoveAvatar(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func TestUploadAvatarReplacesPreviousObject(t *testing.T) {
	profiles := newMemoryProfileStore()
	storage := newMemoryObjectStorage()
	service := NewService(profiles, storage)
	ctx := context.Background()

	first, err := service.UploadAvatar(ctx, "user-1", "me.png", "image/png", bytes.NewReader([]byte("one")), 3)
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if !strings.HasPrefix(first.Key, "users/user-1/avatar/") {
		t.Fatalf("unexpected object key: %q", first.Key)
	}
	if first.URL == "" {
		t.Fatalf("expected a presigned url")
	}

	second, err := service.UploadAvatar(ctx, "user-1", "me.jpg", "image/jpeg", bytes.NewReader([]byte("two")), 3)
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}

	if _, stale := storage.objects[first.Key]; stale {
		t.Fatalf("previous avatar object should be removed")
	}
	if profiles.keys["user-1"] != second.Key {
		t.Fatalf("profile should point at the new object: %q", profiles.keys["user-1"])
	}
}

func TestUploadAvatarKeepsProfileWhenStorageRejects(t *testing.T) {
	profiles := newMemoryProfileStore()
	profiles.keys["user-1"] = "users/user-1/avatar/old.png"
	storage := newMemoryObjectStorage()
	storage.failPut = true
	service := NewService(profiles, storage)

	_, err := service.UploadAvatar(context.Background(), "user-1", "me.png", "image/png", bytes.NewReader([]byte("x")), 1)
	if err == nil {
		t.Fatalf("upload should fail when storage rejects the object")
	}
	if profiles.keys["user-1"] != "users/user-1/avatar/old.png" {
		t.Fatalf("profile reference should be untouched: %q", profiles.keys["user-1"])
	}
}

func TestUploadAvatarRejectsUnsupportedExtension(t *testing.T) {
	service := NewService(newMemoryProfileStore(), newMemoryObjectStorage())

	_, err := service.UploadAvatar(context.Background(), "user-1", "document.pdf", "application/pdf", bytes.NewReader([]byte("x")), 1)
	if !errors.Is(err, ErrUnsupportedExt) {
		t.Fatalf("expected ErrUnsupportedExt, got %v", err)
	}
}

func TestUploadAvatarRejectsOversizedBody(t *testing.T) {
	service := NewService(newMemoryProfileStore(), newMemoryObjectStorage())

	_, err := service.UploadAvatar(context.Background(), "user-1", "me.png", "image/png", bytes.NewReader(nil), maxAvatarSize+1)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetAvatarMissing(t *testing.T) {
	service := NewService(newMemoryProfileStore(), newMemoryObjectStorage())

	if _, err := service.GetAvatar(context.Background(), "user-1"); !errors.Is(err, ErrNoAvatar) {
		t.Fatalf("expected ErrNoAvatar, got %v", err)
	}
}
