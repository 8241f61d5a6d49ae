package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/David-1512/LearnHub/internal/domain/model"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentRepo struct {
	pool *pgxpool.Pool
}

func NewStudentRepo(pool *pgxpool.Pool) *StudentRepo {
	return &StudentRepo{pool: pool}
}

type StudentPatch struct {
	Name      *string
	Age       *int
	City      *string
	Bio       *string
	AvatarKey *string
	Email     *string
	Phone     *string
}

const studentColumns = `
	user_id,
	name,
	age,
	city,
	avatar_key,
	bio,
	interests,
	email,
	phone`

func (r *StudentRepo) Create(ctx context.Context, tx pgx.Tx, student model.Student) error {
	if strings.TrimSpace(student.ID) == "" {
		return fmt.Errorf("invalid student payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO students (
	user_id,
	name,
	age,
	city,
	avatar_key,
	bio,
	interests,
	email,
	phone
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, student.ID, student.Name, student.Age, student.City, student.AvatarKey,
		student.Bio, student.Interests, student.Email, student.Phone); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	return nil
}

func (r *StudentRepo) List(ctx context.Context) ([]model.Student, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+studentColumns+`
FROM students
ORDER BY name ASC, user_id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	items := make([]model.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, student)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate students: %w", rows.Err())
	}

	return items, nil
}

func (r *StudentRepo) GetByID(ctx context.Context, id string) (model.Student, error) {
	if strings.TrimSpace(id) == "" {
		return model.Student{}, fmt.Errorf("student id is required")
	}
	if r.pool == nil {
		return model.Student{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+studentColumns+`
FROM students
WHERE user_id = $1
`, id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, ErrStudentNotFound
		}
		return model.Student{}, err
	}
	return student, nil
}

func (r *StudentRepo) Patch(ctx context.Context, tx pgx.Tx, id string, patch StudentPatch) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("student id is required")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE students SET
	name = COALESCE($2, name),
	age = COALESCE($3, age),
	city = COALESCE($4, city),
	bio = COALESCE($5, bio),
	avatar_key = COALESCE($6, avatar_key),
	email = COALESCE($7, email),
	phone = COALESCE($8, phone)
WHERE user_id = $1
`, id, patch.Name, patch.Age, patch.City, patch.Bio, patch.AvatarKey, patch.Email, patch.Phone)
	if err != nil {
		return fmt.Errorf("patch student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

func (r *StudentRepo) SaveInterests(ctx context.Context, id string, interests []string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("student id is required")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE students SET interests = $2 WHERE user_id = $1
`, id, interests)
	if err != nil {
		return fmt.Errorf("save student interests: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

func scanStudent(row pgx.Row) (model.Student, error) {
	var student model.Student
	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.City,
		&student.AvatarKey,
		&student.Bio,
		&student.Interests,
		&student.Email,
		&student.Phone,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, pgx.ErrNoRows
		}
		return model.Student{}, fmt.Errorf("scan student: %w", err)
	}
	return student, nil
}
