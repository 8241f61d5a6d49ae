package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/David-1512/LearnHub/internal/domain/model"
)

var ErrPassNotFound = errors.New("pass not found")

type PassRepo struct {
	pool *pgxpool.Pool
}

func NewPassRepo(pool *pgxpool.Pool) *PassRepo {
	return &PassRepo{pool: pool}
}

// Insert records the pass unless the (student, tutor) pair already exists.
// StudentID may be empty; anonymous passes still dedupe per tutor.
func (r *PassRepo) Insert(ctx context.Context, pass model.Pass) (model.Pass, bool, error) {
	if strings.TrimSpace(pass.ID) == "" || strings.TrimSpace(pass.TutorID) == "" {
		return model.Pass{}, false, fmt.Errorf("invalid pass payload")
	}
	if r.pool == nil {
		return model.Pass{}, false, fmt.Errorf("postgres pool is nil")
	}

	createdAt := pass.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO passes (
	id,
	student_id,
	tutor_id,
	created_at
) VALUES ($1, $2, $3, $4)
ON CONFLICT (student_id, tutor_id) DO NOTHING
`, pass.ID, pass.StudentID, pass.TutorID, createdAt)
	if err != nil {
		return model.Pass{}, false, fmt.Errorf("insert pass: %w", err)
	}

	existing, err := r.getByPair(ctx, pass.StudentID, pass.TutorID)
	if err != nil {
		return model.Pass{}, false, err
	}

	return existing, tag.RowsAffected() > 0, nil
}

func (r *PassRepo) List(ctx context.Context, studentID, tutorID string) ([]model.Pass, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, student_id, tutor_id, created_at
FROM passes
WHERE ($1 = '' OR student_id = $1)
	AND ($2 = '' OR tutor_id = $2)
ORDER BY created_at DESC, id ASC
`, strings.TrimSpace(studentID), strings.TrimSpace(tutorID))
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	defer rows.Close()

	items := make([]model.Pass, 0)
	for rows.Next() {
		var pass model.Pass
		if err := rows.Scan(&pass.ID, &pass.StudentID, &pass.TutorID, &pass.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		items = append(items, pass)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate passes: %w", rows.Err())
	}

	return items, nil
}

func (r *PassRepo) GetByID(ctx context.Context, id string) (model.Pass, error) {
	if strings.TrimSpace(id) == "" {
		return model.Pass{}, fmt.Errorf("pass id is required")
	}
	if r.pool == nil {
		return model.Pass{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanPass(r.pool.QueryRow(ctx, `
SELECT id, student_id, tutor_id, created_at
FROM passes
WHERE id = $1
`, id))
}

func (r *PassRepo) DeleteByID(ctx context.Context, id string) (model.Pass, error) {
	if strings.TrimSpace(id) == "" {
		return model.Pass{}, fmt.Errorf("pass id is required")
	}
	if r.pool == nil {
		return model.Pass{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanPass(r.pool.QueryRow(ctx, `
DELETE FROM passes
WHERE id = $1
RETURNING id, student_id, tutor_id, created_at
`, id))
}

func (r *PassRepo) getByPair(ctx context.Context, studentID, tutorID string) (model.Pass, error) {
	return r.scanPass(r.pool.QueryRow(ctx, `
SELECT id, student_id, tutor_id, created_at
FROM passes
WHERE student_id = $1 AND tutor_id = $2
`, studentID, tutorID))
}

func (r *PassRepo) scanPass(row pgx.Row) (model.Pass, error) {
	var pass model.Pass
	if err := row.Scan(&pass.ID, &pass.StudentID, &pass.TutorID, &pass.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Pass{}, ErrPassNotFound
		}
		return model.Pass{}, fmt.Errorf("scan pass: %w", err)
	}
	return pass, nil
}
