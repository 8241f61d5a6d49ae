package likes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/David-1512/LearnHub/internal/domain/model"
	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
)

type memoryLikeStore struct {
	likes      map[string]model.Like
	byPair     map[string]string
	failInsert bool
	failDelete bool
}

func newMemoryLikeStore() *memoryLikeStore {
	return &memoryLikeStore{
		likes:  make(map[string]model.Like),
		byPair: make(map[string]string),
	}
}

func (s *memoryLikeStore) pairKey(studentID, tutorID string) string {
	return studentID + "|" + tutorID
}

func (s *memoryLikeStore) Insert(_ context.Context, like model.Like) (model.Like, bool, error) {
	if s.failInsert {
		return model.Like{}, false, fmt.Errorf("insert rejected")
	}
	if id, ok := s.byPair[s.pairKey(like.StudentID, like.TutorID)]; ok {
		return s.likes[id], false, nil
	}
	s.likes[like.ID] = like
	s.byPair[s.pairKey(like.StudentID, like.TutorID)] = like.ID
	return like, true, nil
}

func (s *memoryLikeStore) GetByID(_ context.Context, id string) (model.Like, error) {
	like, ok := s.likes[id]
	if !ok {
		return model.Like{}, pgrepo.ErrLikeNotFound
	}
	return like, nil
}

func (s *memoryLikeStore) List(_ context.Context, studentID, tutorID string) ([]model.Like, error) {
	out := []model.Like{}
	for _, like := range s.likes {
		if studentID != "" && like.StudentID != studentID {
			continue
		}
		if tutorID != "" && like.TutorID != tutorID {
			continue
		}
		out = append(out, like)
	}
	return out, nil
}

func (s *memoryLikeStore) ListExpanded(_ context.Context, studentID string) ([]model.LikedTutor, error) {
	out := []model.LikedTutor{}
	for _, like := range s.likes {
		if like.StudentID != studentID {
			continue
		}
		out = append(out, model.LikedTutor{
			LikeID:    like.ID,
			Tutor:     model.Tutor{ID: like.TutorID},
			CreatedAt: like.CreatedAt,
		})
	}
	return out, nil
}

func (s *memoryLikeStore) DeleteByID(_ context.Context, id string) (model.Like, error) {
	if s.failDelete {
		return model.Like{}, fmt.Errorf("delete rejected")
	}
	like, ok := s.likes[id]
	if !ok {
		return model.Like{}, pgrepo.ErrLikeNotFound
	}
	delete(s.likes, id)
	delete(s.byPair, s.pairKey(like.StudentID, like.TutorID))
	return like, nil
}

type memoryCache struct {
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func TestLikeIsIdempotentPerPair(t *testing.T) {
	store := newMemoryLikeStore()
	service := NewService(store, newMemoryCache())
	ctx := context.Background()

	first, created, err := service.Like(ctx, "student-1", "tutor-1")
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	if !created {
		t.Fatalf("first like should report created")
	}

	second, created, err := service.Like(ctx, "student-1", "tutor-1")
	if err != nil {
		t.Fatalf("repeat like: %v", err)
	}
	if created {
		t.Fatalf("repeat like should not report created")
	}
	if second.ID != first.ID {
		t.Fatalf("repeat like returned a different record: %q vs %q", second.ID, first.ID)
	}

	likes, err := service.List(ctx, "student-1", "")
	if err != nil {
		t.Fatalf("list likes: %v", err)
	}
	if len(likes) != 1 {
		t.Fatalf("expected exactly one like, got %d", len(likes))
	}
}

func TestLikeRestoresCacheWhenWriteFails(t *testing.T) {
	store := newMemoryLikeStore()
	cache := newMemoryCache()
	service := NewService(store, cache)
	ctx := context.Background()

	existing := model.Like{ID: "like-0", StudentID: "student-1", TutorID: "tutor-0", CreatedAt: time.Now().UTC()}
	if err := cache.Set(ctx, listKey("student-1"), []model.Like{existing}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	store.failInsert = true
	if _, _, err := service.Like(ctx, "student-1", "tutor-1"); err == nil {
		t.Fatalf("like should fail when the store rejects the write")
	}

	var cached []model.Like
	hit, err := cache.Get(ctx, listKey("student-1"), &cached)
	if err != nil || !hit {
		t.Fatalf("cache entry should survive the failed write: hit=%v err=%v", hit, err)
	}
	if len(cached) != 1 || cached[0].ID != "like-0" {
		t.Fatalf("cache was not rolled back to the snapshot: %+v", cached)
	}
}

func TestWithdrawRestoresCacheWhenDeleteFails(t *testing.T) {
	store := newMemoryLikeStore()
	cache := newMemoryCache()
	service := NewService(store, cache)
	ctx := context.Background()

	seeded := make([]model.Like, 0, 3)
	for _, tutorID := range []string{"tutor-a", "tutor-b", "tutor-c"} {
		like, _, err := service.Like(ctx, "student-1", tutorID)
		if err != nil {
			t.Fatalf("like %s: %v", tutorID, err)
		}
		seeded = append(seeded, like)
	}
	if err := cache.Set(ctx, listKey("student-1"), seeded); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	store.failDelete = true
	if _, err := service.Withdraw(ctx, "student-1", seeded[1].ID); err == nil {
		t.Fatalf("withdraw should fail when the store rejects the delete")
	}

	var cached []model.Like
	hit, err := cache.Get(ctx, listKey("student-1"), &cached)
	if err != nil || !hit {
		t.Fatalf("cache entry should survive the failed delete: hit=%v err=%v", hit, err)
	}
	if len(cached) != len(seeded) {
		t.Fatalf("cache was not rolled back: got %d likes, want %d", len(cached), len(seeded))
	}
	for i := range seeded {
		if cached[i].ID != seeded[i].ID {
			t.Fatalf("cache was not rolled back at index %d: got %q, want %q", i, cached[i].ID, seeded[i].ID)
		}
	}
}

func TestLikeInvalidatesCacheAfterWrite(t *testing.T) {
	store := newMemoryLikeStore()
	cache := newMemoryCache()
	service := NewService(store, cache)
	ctx := context.Background()

	if err := cache.Set(ctx, listKey("student-1"), []model.Like{}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	if _, _, err := service.Like(ctx, "student-1", "tutor-1"); err != nil {
		t.Fatalf("like: %v", err)
	}

	var cached []model.Like
	if hit, _ := cache.Get(ctx, listKey("student-1"), &cached); hit {
		t.Fatalf("cache entry should be invalidated after a successful write")
	}
}

func TestWithdrawChecksOwnership(t *testing.T) {
	store := newMemoryLikeStore()
	service := NewService(store, newMemoryCache())
	ctx := context.Background()

	like, _, err := service.Like(ctx, "student-1", "tutor-1")
	if err != nil {
		t.Fatalf("like: %v", err)
	}

	if _, err := service.Withdraw(ctx, "student-2", like.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign withdraw should be forbidden, got %v", err)
	}

	removed, err := service.Withdraw(ctx, "student-1", like.ID)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if removed.ID != like.ID {
		t.Fatalf("unexpected removed like: %+v", removed)
	}

	if _, err := service.Withdraw(ctx, "student-1", like.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second withdraw should be not found, got %v", err)
	}
}
