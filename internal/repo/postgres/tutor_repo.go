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

var ErrTutorNotFound = errors.New("tutor not found")

type TutorRepo struct {
	pool *pgxpool.Pool
}

func NewTutorRepo(pool *pgxpool.Pool) *TutorRepo {
	return &TutorRepo{pool: pool}
}

type TutorFilter struct {
	City    string
	Subject string
}

type TutorPatch struct {
	Name      *string
	Age       *int
	City      *string
	Schedule  *string
	Bio       *string
	AvatarKey *string
	Email     *string
	Phone     *string
}

const tutorColumns = `
	user_id,
	name,
	age,
	rating,
	city,
	schedule,
	subjects,
	bio,
	avatar_key,
	email,
	phone`

func (r *TutorRepo) Create(ctx context.Context, tx pgx.Tx, tutor model.Tutor) error {
	if strings.TrimSpace(tutor.ID) == "" {
		return fmt.Errorf("invalid tutor payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO tutors (
	user_id,
	name,
	age,
	rating,
	city,
	schedule,
	subjects,
	bio,
	avatar_key,
	email,
	phone
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`, tutor.ID, tutor.Name, tutor.Age, tutor.Rating, tutor.City, tutor.Schedule,
		tutor.Subjects, tutor.Bio, tutor.AvatarKey, tutor.Email, tutor.Phone); err != nil {
		return fmt.Errorf("insert tutor: %w", err)
	}

	return nil
}

func (r *TutorRepo) List(ctx context.Context, filter TutorFilter) ([]model.Tutor, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `SELECT` + tutorColumns + `
FROM tutors
WHERE ($1 = '' OR city = $1)
	AND ($2 = '' OR $2 = ANY(subjects))
ORDER BY rating DESC, user_id ASC
`
	rows, err := r.pool.Query(ctx, query, strings.TrimSpace(filter.City), strings.TrimSpace(filter.Subject))
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	defer rows.Close()

	return collectTutors(rows)
}

// ListCandidates returns tutors the student has not decided on yet, in the
// stable deck order the discovery feed indexes into.
func (r *TutorRepo) ListCandidates(ctx context.Context, studentID string, limit int) ([]model.Tutor, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, fmt.Errorf("student id is required")
	}
	if limit <= 0 {
		limit = 50
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+tutorColumns+`
FROM tutors t
WHERE NOT EXISTS (
		SELECT 1 FROM likes l
		WHERE l.student_id = $1 AND l.tutor_id = t.user_id
	)
	AND NOT EXISTS (
		SELECT 1 FROM passes p
		WHERE p.student_id = $1 AND p.tutor_id = t.user_id
	)
ORDER BY rating DESC, user_id ASC
LIMIT $2
`, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list tutor candidates: %w", err)
	}
	defer rows.Close()

	return collectTutors(rows)
}

func (r *TutorRepo) GetByID(ctx context.Context, id string) (model.Tutor, error) {
	if strings.TrimSpace(id) == "" {
		return model.Tutor{}, fmt.Errorf("tutor id is required")
	}
	if r.pool == nil {
		return model.Tutor{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+tutorColumns+`
FROM tutors
WHERE user_id = $1
`, id)

	tutor, err := scanTutor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Tutor{}, ErrTutorNotFound
		}
		return model.Tutor{}, err
	}
	return tutor, nil
}

func (r *TutorRepo) Patch(ctx context.Context, tx pgx.Tx, id string, patch TutorPatch) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("tutor id is required")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE tutors SET
	name = COALESCE($2, name),
	age = COALESCE($3, age),
	city = COALESCE($4, city),
	schedule = COALESCE($5, schedule),
	bio = COALESCE($6, bio),
	avatar_key = COALESCE($7, avatar_key),
	email = COALESCE($8, email),
	phone = COALESCE($9, phone)
WHERE user_id = $1
`, id, patch.Name, patch.Age, patch.City, patch.Schedule, patch.Bio,
		patch.AvatarKey, patch.Email, patch.Phone)
	if err != nil {
		return fmt.Errorf("patch tutor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTutorNotFound
	}

	return nil
}

func (r *TutorRepo) SaveSubjects(ctx context.Context, id string, subjects []string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("tutor id is required")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE tutors SET subjects = $2 WHERE user_id = $1
`, id, subjects)
	if err != nil {
		return fmt.Errorf("save tutor subjects: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTutorNotFound
	}

	return nil
}

func collectTutors(rows pgx.Rows) ([]model.Tutor, error) {
	items := make([]model.Tutor, 0)
	for rows.Next() {
		tutor, err := scanTutor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, tutor)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tutors: %w", rows.Err())
	}
	return items, nil
}

func scanTutor(row pgx.Row) (model.Tutor, error) {
	var tutor model.Tutor
	if err := row.Scan(
		&tutor.ID,
		&tutor.Name,
		&tutor.Age,
		&tutor.Rating,
		&tutor.City,
		&tutor.Schedule,
		&tutor.Subjects,
		&tutor.Bio,
		&tutor.AvatarKey,
		&tutor.Email,
		&tutor.Phone,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Tutor{}, pgx.ErrNoRows
		}
		return model.Tutor{}, fmt.Errorf("scan tutor: %w", err)
	}
	return tutor, nil
}
