package passes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/David-1512/LearnHub/internal/domain/model"
	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("pass not found")
	ErrForbidden  = errors.New("pass belongs to another student")
)

type PassStore interface {
	Insert(ctx context.Context, pass model.Pass) (model.Pass, bool, error)
	GetByID(ctx context.Context, id string) (model.Pass, error)
	List(ctx context.Context, studentID, tutorID string) ([]model.Pass, error)
	DeleteByID(ctx context.Context, id string) (model.Pass, error)
}

type Service struct {
	store PassStore
	newID func() string
	now   func() time.Time
}

func NewService(store PassStore) *Service {
	return &Service{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Record marks a tutor as skipped. The student id may be empty, so skips
// taken before a profile exists still dedupe per tutor.
func (s *Service) Record(ctx context.Context, studentID, tutorID string) (model.Pass, bool, error) {
	if strings.TrimSpace(tutorID) == "" {
		return model.Pass{}, false, ErrValidation
	}

	stored, created, err := s.store.Insert(ctx, model.Pass{
		ID:        s.newID(),
		StudentID: strings.TrimSpace(studentID),
		TutorID:   strings.TrimSpace(tutorID),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return model.Pass{}, false, fmt.Errorf("record pass: %w", err)
	}
	return stored, created, nil
}

func (s *Service) List(ctx context.Context, studentID, tutorID string) ([]model.Pass, error) {
	return s.store.List(ctx, studentID, tutorID)
}

func (s *Service) Delete(ctx context.Context, studentID, passID string) (model.Pass, error) {
	if strings.TrimSpace(passID) == "" {
		return model.Pass{}, ErrValidation
	}

	existing, err := s.store.GetByID(ctx, passID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPassNotFound) {
			return model.Pass{}, ErrNotFound
		}
		return model.Pass{}, fmt.Errorf("load pass: %w", err)
	}
	// Anonymous passes have no owner and anyone signed in may clear them.
	if existing.StudentID != "" && existing.StudentID != studentID {
		return model.Pass{}, ErrForbidden
	}

	removed, err := s.store.DeleteByID(ctx, passID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPassNotFound) {
			return model.Pass{}, ErrNotFound
		}
		return model.Pass{}, fmt.Errorf("delete pass: %w", err)
	}
	return removed, nil
}
