package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/David-1512/LearnHub/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

type LikeSource interface {
	ListExpanded(ctx context.Context, studentID string) ([]model.LikedTutor, error)
	Withdraw(ctx context.Context, studentID, likeID string) (model.Like, error)
}

// Service is the student's matches view: every liked tutor with the full
// card, newest first.
type Service struct {
	likes LikeSource
}

func NewService(likes LikeSource) *Service {
	return &Service{likes: likes}
}

func (s *Service) List(ctx context.Context, studentID string) ([]model.LikedTutor, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrValidation
	}

	items, err := s.likes.ListExpanded(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

// Withdraw drops the match by removing the like. The tutor profile itself is
// untouched and shows up in the discovery deck again.
func (s *Service) Withdraw(ctx context.Context, studentID, likeID string) error {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(likeID) == "" {
		return ErrValidation
	}

	if _, err := s.likes.Withdraw(ctx, studentID, likeID); err != nil {
		return err
	}
	return nil
}
