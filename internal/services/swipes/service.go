package swipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/David-1512/LearnHub/internal/domain/model"
	"github.com/David-1512/LearnHub/internal/domain/rules"
)

var ErrValidation = errors.New("validation error")

type LikeRecorder interface {
	Like(ctx context.Context, studentID, tutorID string) (model.Like, bool, error)
}

type PassRecorder interface {
	Record(ctx context.Context, studentID, tutorID string) (model.Pass, bool, error)
}

type CursorStore interface {
	Advance(ctx context.Context, sid string) (int, error)
}

// Input is either an explicit action ("like"/"skip") or raw gesture
// telemetry; telemetry is scored against the swipe threshold.
type Input struct {
	TutorID   string
	Action    string
	OffsetX   *float64
	VelocityX *float64
}

type Result struct {
	Decision rules.Decision
	Cursor   int
	LikeID   string
	Created  bool
}

type Service struct {
	likes     LikeRecorder
	passes    PassRecorder
	cursors   CursorStore
	threshold float64
}

func NewService(likes LikeRecorder, passes PassRecorder, cursors CursorStore, threshold float64) *Service {
	if threshold <= 0 {
		threshold = rules.DefaultSwipeThreshold
	}
	return &Service{
		likes:     likes,
		passes:    passes,
		cursors:   cursors,
		threshold: threshold,
	}
}

// Swipe resolves the gesture into a decision, advances the deck cursor, and
// records the decision. The cursor moves before the like or pass write, so a
// failed write never freezes the deck on the same card.
func (s *Service) Swipe(ctx context.Context, studentID, sid string, input Input) (Result, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(sid) == "" || strings.TrimSpace(input.TutorID) == "" {
		return Result{}, ErrValidation
	}

	decision, explicit, err := s.decide(input)
	if err != nil {
		return Result{}, err
	}

	result := Result{Decision: decision}

	if decision == rules.DecisionNone {
		// Below the threshold the card snaps back; the deck does not move.
		return result, nil
	}

	cursor, err := s.cursors.Advance(ctx, sid)
	if err != nil {
		return Result{}, fmt.Errorf("advance deck cursor: %w", err)
	}
	result.Cursor = cursor

	switch decision {
	case rules.DecisionLike:
		like, created, err := s.likes.Like(ctx, studentID, input.TutorID)
		if err != nil {
			return Result{}, fmt.Errorf("record like: %w", err)
		}
		result.LikeID = like.ID
		result.Created = created
	case rules.DecisionSkip:
		// A flung-away card is only a pass when the skip was deliberate;
		// gesture skips just move on.
		if explicit {
			_, created, err := s.passes.Record(ctx, studentID, input.TutorID)
			if err != nil {
				return Result{}, fmt.Errorf("record pass: %w", err)
			}
			result.Created = created
		}
	}

	return result, nil
}

func (s *Service) decide(input Input) (rules.Decision, bool, error) {
	action := strings.ToLower(strings.TrimSpace(input.Action))
	if action != "" {
		switch action {
		case "like":
			return rules.DecisionLike, true, nil
		case "skip":
			return rules.DecisionSkip, true, nil
		default:
			return rules.DecisionNone, false, ErrValidation
		}
	}

	if input.OffsetX == nil || input.VelocityX == nil {
		return rules.DecisionNone, false, ErrValidation
	}
	return rules.DecideSwipe(*input.OffsetX, *input.VelocityX, s.threshold), false, nil
}
