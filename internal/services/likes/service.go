package likes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/David-1512/LearnHub/internal/domain/model"
	"github.com/David-1512/LearnHub/internal/pkg/optimistic"
	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("like not found")
	ErrForbidden  = errors.New("like belongs to another student")
)

type LikeStore interface {
	Insert(ctx context.Context, like model.Like) (model.Like, bool, error)
	GetByID(ctx context.Context, id string) (model.Like, error)
	List(ctx context.Context, studentID, tutorID string) ([]model.Like, error)
	ListExpanded(ctx context.Context, studentID string) ([]model.LikedTutor, error)
	DeleteByID(ctx context.Context, id string) (model.Like, error)
}

type Service struct {
	store LikeStore
	cache optimistic.Store
	newID func() string
	now   func() time.Time
}

func NewService(store LikeStore, cache optimistic.Store) *Service {
	return &Service{
		store: store,
		cache: cache,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Like records the student's like. Repeating a like for the same tutor is a
// no-op that returns the original record; the bool reports whether this call
// created it.
func (s *Service) Like(ctx context.Context, studentID, tutorID string) (model.Like, bool, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(tutorID) == "" {
		return model.Like{}, false, ErrValidation
	}

	candidate := model.Like{
		ID:        s.newID(),
		StudentID: studentID,
		TutorID:   tutorID,
		CreatedAt: s.now().UTC(),
	}

	var (
		stored  model.Like
		created bool
	)
	err := optimistic.Mutate(ctx, s.cache, listKey(studentID), func(items []model.Like) []model.Like {
		return append(items, candidate)
	}, func(ctx context.Context) error {
		var err error
		stored, created, err = s.store.Insert(ctx, candidate)
		return err
	})
	if err != nil {
		return model.Like{}, false, fmt.Errorf("record like: %w", err)
	}

	s.invalidateExpanded(ctx, studentID)
	return stored, created, nil
}

// Withdraw removes the like after checking it belongs to the caller.
func (s *Service) Withdraw(ctx context.Context, studentID, likeID string) (model.Like, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(likeID) == "" {
		return model.Like{}, ErrValidation
	}

	existing, err := s.store.GetByID(ctx, likeID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrLikeNotFound) {
			return model.Like{}, ErrNotFound
		}
		return model.Like{}, fmt.Errorf("load like: %w", err)
	}
	if existing.StudentID != studentID {
		return model.Like{}, ErrForbidden
	}

	var removed model.Like
	err = optimistic.Mutate(ctx, s.cache, listKey(studentID), func(items []model.Like) []model.Like {
		kept := make([]model.Like, 0, len(items))
		for _, item := range items {
			if item.ID != likeID {
				kept = append(kept, item)
			}
		}
		return kept
	}, func(ctx context.Context) error {
		var err error
		removed, err = s.store.DeleteByID(ctx, likeID)
		if errors.Is(err, pgrepo.ErrLikeNotFound) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Like{}, ErrNotFound
		}
		return model.Like{}, fmt.Errorf("withdraw like: %w", err)
	}

	s.invalidateExpanded(ctx, studentID)
	return removed, nil
}

func (s *Service) List(ctx context.Context, studentID, tutorID string) ([]model.Like, error) {
	key := ""
	if strings.TrimSpace(tutorID) == "" && strings.TrimSpace(studentID) != "" {
		key = listKey(studentID)
	}

	return optimistic.Read(ctx, s.cache, key, func(ctx context.Context) ([]model.Like, error) {
		return s.store.List(ctx, studentID, tutorID)
	})
}

// ListExpanded returns the student's likes joined with the tutor cards, the
// shape the matches screen renders.
func (s *Service) ListExpanded(ctx context.Context, studentID string) ([]model.LikedTutor, error) {
	return optimistic.Read(ctx, s.cache, expandedKey(studentID), func(ctx context.Context) ([]model.LikedTutor, error) {
		return s.store.ListExpanded(ctx, studentID)
	})
}

func (s *Service) invalidateExpanded(ctx context.Context, studentID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, expandedKey(studentID))
}

func listKey(studentID string) string {
	return "likes:" + studentID
}

func expandedKey(studentID string) string {
	return "likes_expanded:" + studentID
}
