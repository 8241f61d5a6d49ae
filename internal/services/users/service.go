package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	"github.com/David-1512/LearnHub/internal/domain/model"
	"github.com/David-1512/LearnHub/internal/pkg/validate"
	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
)

const (
	minNameLen     = 2
	minPasswordLen = 8
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string { return "validation error" }

func (e *ValidationError) Unwrap() error { return ErrValidation }

type UserStore interface {
	Create(ctx context.Context, tx pgx.Tx, user model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	UpdateCredentials(ctx context.Context, tx pgx.Tx, id, name, email, passwordHash string) error
}

type TutorStore interface {
	Create(ctx context.Context, tx pgx.Tx, tutor model.Tutor) error
	GetByID(ctx context.Context, id string) (model.Tutor, error)
	Patch(ctx context.Context, tx pgx.Tx, id string, patch pgrepo.TutorPatch) error
}

type StudentStore interface {
	Create(ctx context.Context, tx pgx.Tx, student model.Student) error
	GetByID(ctx context.Context, id string) (model.Student, error)
	Patch(ctx context.Context, tx pgx.Tx, id string, patch pgrepo.StudentPatch) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     enums.Role
	Age      int
	City     string
}

type ProfilePatch struct {
	Name     *string
	Age      *int
	City     *string
	Schedule *string
	Bio      *string
	Email    *string
	Phone    *string
	Password *string
}

type Service struct {
	pool     *pgxpool.Pool
	users    UserStore
	tutors   TutorStore
	students StudentStore
	newID    func() string
}

func NewService(pool *pgxpool.Pool, users UserStore, tutors TutorStore, students StudentStore) *Service {
	return &Service{
		pool:     pool,
		users:    users,
		tutors:   tutors,
		students: students,
		newID:    uuid.NewString,
	}
}

// Register creates the account and its role profile in one transaction, so a
// user row never exists without a matching student or tutor card.
func (s *Service) Register(ctx context.Context, input RegisterInput) (model.User, error) {
	if err := validateRegister(input); err != nil {
		return model.User{}, err
	}
	if s.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           s.newID(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Roles:        []enums.Role{input.Role},
	}

	err = pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.users.Create(txCtx, tx, user); err != nil {
			if errors.Is(err, pgrepo.ErrEmailTaken) {
				return ErrEmailTaken
			}
			return err
		}

		switch input.Role {
		case enums.RoleTutor:
			return s.tutors.Create(txCtx, tx, model.Tutor{
				ID:       user.ID,
				Name:     user.Name,
				Age:      input.Age,
				City:     strings.TrimSpace(input.City),
				Subjects: []string{},
				Email:    user.Email,
			})
		default:
			return s.students.Create(txCtx, tx, model.Student{
				ID:        user.ID,
				Name:      user.Name,
				Age:       input.Age,
				City:      strings.TrimSpace(input.City),
				Interests: []string{},
				Email:     user.Email,
			})
		}
	})
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (model.User, error) {
	if strings.TrimSpace(id) == "" {
		return model.User{}, ErrValidation
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile patches the account row and the role profile together. Which
// profile table gets touched follows the user's roles, not the request.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error {
	if strings.TrimSpace(userID) == "" {
		return ErrValidation
	}
	if err := validatePatch(patch); err != nil {
		return err
	}
	if s.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	passwordHash := ""
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		passwordHash = string(hash)
	}

	return pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		name, email := "", ""
		if patch.Name != nil {
			name = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			email = strings.TrimSpace(*patch.Email)
		}
		if name != "" || email != "" || passwordHash != "" {
			if err := s.users.UpdateCredentials(txCtx, tx, userID, name, email, passwordHash); err != nil {
				return err
			}
		}

		if user.HasRole(enums.RoleTutor) {
			if err := s.tutors.Patch(txCtx, tx, userID, pgrepo.TutorPatch{
				Name:     patch.Name,
				Age:      patch.Age,
				City:     patch.City,
				Schedule: patch.Schedule,
				Bio:      patch.Bio,
				Email:    patch.Email,
				Phone:    patch.Phone,
			}); err != nil && !errors.Is(err, pgrepo.ErrTutorNotFound) {
				return err
			}
		}
		if user.HasRole(enums.RoleStudent) {
			if err := s.students.Patch(txCtx, tx, userID, pgrepo.StudentPatch{
				Name:  patch.Name,
				Age:   patch.Age,
				City:  patch.City,
				Bio:   patch.Bio,
				Email: patch.Email,
				Phone: patch.Phone,
			}); err != nil && !errors.Is(err, pgrepo.ErrStudentNotFound) {
				return err
			}
		}

		return nil
	})
}

func validateRegister(input RegisterInput) error {
	var fields []FieldError

	if !validate.MinLen(input.Name, minNameLen) {
		fields = append(fields, FieldError{Field: "name", Message: "name is too short"})
	}
	if !validate.Email(input.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "invalid email"})
	}
	if !validate.MinLen(input.Password, minPasswordLen) {
		fields = append(fields, FieldError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", minPasswordLen)})
	}
	if input.Role != enums.RoleStudent && input.Role != enums.RoleTutor {
		fields = append(fields, FieldError{Field: "role", Message: "role must be student or tutor"})
	}
	if input.Age != 0 && !validate.InRange(input.Age, 14, 120) {
		fields = append(fields, FieldError{Field: "age", Message: "age is out of range"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validatePatch(patch ProfilePatch) error {
	var fields []FieldError

	if patch.Name != nil && !validate.MinLen(*patch.Name, minNameLen) {
		fields = append(fields, FieldError{Field: "name", Message: "name is too short"})
	}
	if patch.Password != nil && !validate.MinLen(*patch.Password, minPasswordLen) {
		fields = append(fields, FieldError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", minPasswordLen)})
	}
	if patch.Email != nil && !validate.Email(*patch.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "invalid email"})
	}
	if patch.Phone != nil && !validate.Phone(*patch.Phone) {
		fields = append(fields, FieldError{Field: "phone", Message: "invalid phone"})
	}
	if patch.Age != nil && !validate.InRange(*patch.Age, 14, 120) {
		fields = append(fields, FieldError{Field: "age", Message: "age is out of range"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
