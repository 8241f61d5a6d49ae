package swipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/David-1512/LearnHub/internal/domain/model"
	"github.com/David-1512/LearnHub/internal/domain/rules"
)

type fakeLikeRecorder struct {
	calls int
}

func (f *fakeLikeRecorder) Like(_ context.Context, studentID, tutorID string) (model.Like, bool, error) {
	f.calls++
	return model.Like{
		ID:        "like-1",
		StudentID: studentID,
		TutorID:   tutorID,
		CreatedAt: time.Now().UTC(),
	}, true, nil
}

type fakePassRecorder struct {
	calls int
}

func (f *fakePassRecorder) Record(_ context.Context, studentID, tutorID string) (model.Pass, bool, error) {
	f.calls++
	return model.Pass{
		ID:        "pass-1",
		StudentID: studentID,
		TutorID:   tutorID,
		CreatedAt: time.Now().UTC(),
	}, true, nil
}

type fakeCursorStore struct {
	cursor int
}

func (f *fakeCursorStore) Advance(_ context.Context, _ string) (int, error) {
	f.cursor++
	return f.cursor, nil
}

func ptr(v float64) *float64 { return &v }

func newSwipeServiceForTest() (*Service, *fakeLikeRecorder, *fakePassRecorder, *fakeCursorStore) {
	likes := &fakeLikeRecorder{}
	passes := &fakePassRecorder{}
	cursors := &fakeCursorStore{}
	return NewService(likes, passes, cursors, rules.DefaultSwipeThreshold), likes, passes, cursors
}

func TestSwipeTelemetryLikeAdvancesAndRecords(t *testing.T) {
	service, likes, passes, cursors := newSwipeServiceForTest()

	res, err := service.Swipe(context.Background(), "student-1", "sid-1", Input{
		TutorID:   "tutor-1",
		OffsetX:   ptr(120),
		VelocityX: ptr(10),
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if res.Decision != rules.DecisionLike {
		t.Fatalf("expected LIKE decision, got %s", res.Decision)
	}
	if res.Cursor != 1 || cursors.cursor != 1 {
		t.Fatalf("cursor should advance once, got result=%d store=%d", res.Cursor, cursors.cursor)
	}
	if likes.calls != 1 || res.LikeID != "like-1" || !res.Created {
		t.Fatalf("like was not recorded: calls=%d result=%+v", likes.calls, res)
	}
	if passes.calls != 0 {
		t.Fatalf("a like swipe must not record a pass")
	}
}

func TestSwipeTelemetrySkipAdvancesWithoutRecording(t *testing.T) {
	service, likes, passes, cursors := newSwipeServiceForTest()

	res, err := service.Swipe(context.Background(), "student-1", "sid-1", Input{
		TutorID:   "tutor-1",
		OffsetX:   ptr(120),
		VelocityX: ptr(-10),
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if res.Decision != rules.DecisionSkip {
		t.Fatalf("expected SKIP decision, got %s", res.Decision)
	}
	if cursors.cursor != 1 {
		t.Fatalf("cursor should advance on a gesture skip, got %d", cursors.cursor)
	}
	if likes.calls != 0 || passes.calls != 0 {
		t.Fatalf("a gesture skip must record nothing: likes=%d passes=%d", likes.calls, passes.calls)
	}
}

func TestSwipeBelowThresholdSnapsBack(t *testing.T) {
	service, likes, passes, cursors := newSwipeServiceForTest()

	res, err := service.Swipe(context.Background(), "student-1", "sid-1", Input{
		TutorID:   "tutor-1",
		OffsetX:   ptr(40),
		VelocityX: ptr(5),
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if res.Decision != rules.DecisionNone {
		t.Fatalf("expected NONE decision, got %s", res.Decision)
	}
	if cursors.cursor != 0 {
		t.Fatalf("cursor must not move below the threshold, got %d", cursors.cursor)
	}
	if likes.calls != 0 || passes.calls != 0 {
		t.Fatalf("nothing should be recorded below the threshold")
	}
}

func TestSwipeExplicitSkipRecordsPass(t *testing.T) {
	service, likes, passes, cursors := newSwipeServiceForTest()

	res, err := service.Swipe(context.Background(), "student-1", "sid-1", Input{
		TutorID: "tutor-1",
		Action:  "skip",
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if res.Decision != rules.DecisionSkip {
		t.Fatalf("expected SKIP decision, got %s", res.Decision)
	}
	if cursors.cursor != 1 {
		t.Fatalf("cursor should advance on an explicit skip, got %d", cursors.cursor)
	}
	if passes.calls != 1 || !res.Created {
		t.Fatalf("explicit skip should record a pass: calls=%d result=%+v", passes.calls, res)
	}
	if likes.calls != 0 {
		t.Fatalf("an explicit skip must not record a like")
	}
}

func TestSwipeRejectsUnknownAction(t *testing.T) {
	service, _, _, cursors := newSwipeServiceForTest()

	_, err := service.Swipe(context.Background(), "student-1", "sid-1", Input{
		TutorID: "tutor-1",
		Action:  "superlike",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown action should fail validation, got %v", err)
	}
	if cursors.cursor != 0 {
		t.Fatalf("cursor must not move on a rejected swipe")
	}
}

func TestSwipeRequiresTelemetryOrAction(t *testing.T) {
	service, _, _, _ := newSwipeServiceForTest()

	_, err := service.Swipe(context.Background(), "student-1", "sid-1", Input{
		TutorID: "tutor-1",
		OffsetX: ptr(120),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("partial telemetry should fail validation, got %v", err)
	}
}
