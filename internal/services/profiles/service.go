package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/David-1512/LearnHub/internal/domain/model"
	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
)

const maxTags = 20

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("profile not found")
)

type TutorStore interface {
	List(ctx context.Context, filter pgrepo.TutorFilter) ([]model.Tutor, error)
	GetByID(ctx context.Context, id string) (model.Tutor, error)
	SaveSubjects(ctx context.Context, id string, subjects []string) error
}

type StudentStore interface {
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id string) (model.Student, error)
	SaveInterests(ctx context.Context, id string, interests []string) error
}

type Service struct {
	tutors   TutorStore
	students StudentStore
}

func NewService(tutors TutorStore, students StudentStore) *Service {
	return &Service{tutors: tutors, students: students}
}

func (s *Service) ListTutors(ctx context.Context, city, subject string) ([]model.Tutor, error) {
	return s.tutors.List(ctx, pgrepo.TutorFilter{
		City:    strings.TrimSpace(city),
		Subject: strings.TrimSpace(subject),
	})
}

func (s *Service) ListStudents(ctx context.Context) ([]model.Student, error) {
	return s.students.List(ctx)
}

func (s *Service) GetTutor(ctx context.Context, id string) (model.Tutor, error) {
	tutor, err := s.tutors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrTutorNotFound) {
			return model.Tutor{}, ErrNotFound
		}
		return model.Tutor{}, fmt.Errorf("get tutor: %w", err)
	}
	return tutor, nil
}

func (s *Service) GetStudent(ctx context.Context, id string) (model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrStudentNotFound) {
			return model.Student{}, ErrNotFound
		}
		return model.Student{}, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

// ReplaceSubjects swaps the tutor's subject tags wholesale. The editor
// autosaves the whole chip list, so replace semantics beat add/remove pairs.
func (s *Service) ReplaceSubjects(ctx context.Context, tutorID string, subjects []string) ([]string, error) {
	cleaned, err := cleanTags(subjects)
	if err != nil {
		return nil, err
	}

	if err := s.tutors.SaveSubjects(ctx, tutorID, cleaned); err != nil {
		if errors.Is(err, pgrepo.ErrTutorNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save subjects: %w", err)
	}
	return cleaned, nil
}

func (s *Service) ReplaceInterests(ctx context.Context, studentID string, interests []string) ([]string, error) {
	cleaned, err := cleanTags(interests)
	if err != nil {
		return nil, err
	}

	if err := s.students.SaveInterests(ctx, studentID, cleaned); err != nil {
		if errors.Is(err, pgrepo.ErrStudentNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save interests: %w", err)
	}
	return cleaned, nil
}

// cleanTags trims, drops empties and case-insensitive duplicates, and keeps
// the caller's order.
func cleanTags(tags []string) ([]string, error) {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, tag)
	}

	if len(cleaned) > maxTags {
		return nil, ErrValidation
	}
	return cleaned, nil
}
