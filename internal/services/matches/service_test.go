package matches

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/David-1512/LearnHub/internal/domain/model"
)

type fakeLikeSource struct {
	items     []model.LikedTutor
	withdrawn []string
}

func (f *fakeLikeSource) ListExpanded(_ context.Context, _ string) ([]model.LikedTutor, error) {
	return f.items, nil
}

func (f *fakeLikeSource) Withdraw(_ context.Context, _, likeID string) (model.Like, error) {
	f.withdrawn = append(f.withdrawn, likeID)
	return model.Like{ID: likeID}, nil
}

func TestListReturnsExpandedLikes(t *testing.T) {
	source := &fakeLikeSource{items: []model.LikedTutor{
		{LikeID: "like-1", Tutor: model.Tutor{ID: "tutor-1", Name: "Maria"}, CreatedAt: time.Now().UTC()},
	}}
	service := NewService(source)

	items, err := service.List(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 1 || items[0].Tutor.Name != "Maria" {
		t.Fatalf("unexpected matches: %+v", items)
	}
}

func TestWithdrawDelegatesToLikes(t *testing.T) {
	source := &fakeLikeSource{}
	service := NewService(source)

	if err := service.Withdraw(context.Background(), "student-1", "like-1"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if len(source.withdrawn) != 1 || source.withdrawn[0] != "like-1" {
		t.Fatalf("withdraw was not delegated: %v", source.withdrawn)
	}
}

func TestValidation(t *testing.T) {
	service := NewService(&fakeLikeSource{})

	if _, err := service.List(context.Background(), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank student should fail validation, got %v", err)
	}
	if err := service.Withdraw(context.Background(), "student-1", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank like id should fail validation, got %v", err)
	}
}
