package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/David-1512/LearnHub/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

type CandidateStore interface {
	ListCandidates(ctx context.Context, studentID string, limit int) ([]model.Tutor, error)
}

type CursorStore interface {
	Reset(ctx context.Context, sid string) error
}

// Deck is the ordered candidate list plus how far this session has swiped
// into it. A freshly fetched deck always starts at zero; swipes move the
// cursor until it points past the end, which is the deck's empty state.
type Deck struct {
	Tutors []model.Tutor
	Cursor int
}

type Service struct {
	candidates CandidateStore
	cursors    CursorStore
	pageLimit  int
}

func NewService(candidates CandidateStore, cursors CursorStore, pageLimit int) *Service {
	if pageLimit <= 0 {
		pageLimit = 50
	}
	return &Service{
		candidates: candidates,
		cursors:    cursors,
		pageLimit:  pageLimit,
	}
}

// GetDeck assembles the candidate deck for the student. Tutors already liked
// or passed never enter the deck, so the list shrinks between fetches; the
// session cursor restarts with every fetch, otherwise a cursor left over from
// a longer deck would skip candidates nobody decided on.
func (s *Service) GetDeck(ctx context.Context, studentID, sid string) (Deck, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(sid) == "" {
		return Deck{}, ErrValidation
	}

	tutors, err := s.candidates.ListCandidates(ctx, studentID, s.pageLimit)
	if err != nil {
		return Deck{}, fmt.Errorf("load candidates: %w", err)
	}

	if err := s.cursors.Reset(ctx, sid); err != nil {
		return Deck{}, fmt.Errorf("reset deck cursor: %w", err)
	}

	return Deck{Tutors: tutors, Cursor: 0}, nil
}

// Reset puts the cursor back to the top of the deck. Nothing else changes:
// no refetch, no reshuffle, and every like or pass stays recorded.
func (s *Service) Reset(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrValidation
	}
	if err := s.cursors.Reset(ctx, sid); err != nil {
		return fmt.Errorf("reset deck cursor: %w", err)
	}
	return nil
}
