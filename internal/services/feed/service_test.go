package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/David-1512/LearnHub/internal/domain/model"
)

type fakeCandidateStore struct {
	tutors    []model.Tutor
	lastLimit int
}

func (f *fakeCandidateStore) ListCandidates(_ context.Context, _ string, limit int) ([]model.Tutor, error) {
	f.lastLimit = limit
	return f.tutors, nil
}

type fakeCursorStore struct {
	cursors map[string]int
}

func newFakeCursorStore() *fakeCursorStore {
	return &fakeCursorStore{cursors: make(map[string]int)}
}

func (f *fakeCursorStore) Reset(_ context.Context, sid string) error {
	f.cursors[sid] = 0
	return nil
}

func TestGetDeckStartsAtTheTop(t *testing.T) {
	candidates := &fakeCandidateStore{tutors: []model.Tutor{
		{ID: "tutor-1", Name: "Maria"},
		{ID: "tutor-2", Name: "Oleg"},
	}}
	cursors := newFakeCursorStore()

	service := NewService(candidates, cursors, 25)

	deck, err := service.GetDeck(context.Background(), "student-1", "sid-1")
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if len(deck.Tutors) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(deck.Tutors))
	}
	if deck.Cursor != 0 {
		t.Fatalf("fresh deck should start at the top, got cursor %d", deck.Cursor)
	}
	if candidates.lastLimit != 25 {
		t.Fatalf("page limit was not forwarded, got %d", candidates.lastLimit)
	}
}

func TestRefetchAfterDecisionsDoesNotSkipCandidates(t *testing.T) {
	// Five candidates, three decided since the last fetch: the next fetch
	// returns the two undecided tutors and the session cursor no longer
	// points three cards in.
	candidates := &fakeCandidateStore{tutors: []model.Tutor{
		{ID: "tutor-4", Name: "Anna"},
		{ID: "tutor-5", Name: "Pavel"},
	}}
	cursors := newFakeCursorStore()
	cursors.cursors["sid-1"] = 3

	service := NewService(candidates, cursors, 25)

	deck, err := service.GetDeck(context.Background(), "student-1", "sid-1")
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if deck.Cursor != 0 {
		t.Fatalf("stale cursor should not survive a refetch, got %d", deck.Cursor)
	}
	if cursors.cursors["sid-1"] != 0 {
		t.Fatalf("session cursor should be reset in the store, got %d", cursors.cursors["sid-1"])
	}
	if len(deck.Tutors) != 2 {
		t.Fatalf("expected the undecided candidates, got %d", len(deck.Tutors))
	}
}

func TestResetOnlyMovesCursor(t *testing.T) {
	candidates := &fakeCandidateStore{}
	cursors := newFakeCursorStore()
	cursors.cursors["sid-1"] = 7

	service := NewService(candidates, cursors, 0)

	if err := service.Reset(context.Background(), "sid-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if cursors.cursors["sid-1"] != 0 {
		t.Fatalf("cursor should be back at the top, got %d", cursors.cursors["sid-1"])
	}
}

func TestDeckRequiresStudentAndSession(t *testing.T) {
	service := NewService(&fakeCandidateStore{}, newFakeCursorStore(), 10)

	if _, err := service.GetDeck(context.Background(), "", "sid-1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing student should fail validation, got %v", err)
	}
	if _, err := service.GetDeck(context.Background(), "student-1", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing session should fail validation, got %v", err)
	}
	if err := service.Reset(context.Background(), " "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank session reset should fail validation, got %v", err)
	}
}
