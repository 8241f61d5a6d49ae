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

var ErrLikeNotFound = errors.New("like not found")

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// Insert creates the like unless the (student, tutor) pair already exists, in
// which case the existing record is returned. The UNIQUE constraint makes the
// operation race-free; no caller-side existence pre-check is needed.
func (r *LikeRepo) Insert(ctx context.Context, like model.Like) (model.Like, bool, error) {
	if strings.TrimSpace(like.ID) == "" || strings.TrimSpace(like.StudentID) == "" || strings.TrimSpace(like.TutorID) == "" {
		return model.Like{}, false, fmt.Errorf("invalid like payload")
	}
	if r.pool == nil {
		return model.Like{}, false, fmt.Errorf("postgres pool is nil")
	}

	createdAt := like.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO likes (
	id,
	student_id,
	tutor_id,
	created_at
) VALUES ($1, $2, $3, $4)
ON CONFLICT (student_id, tutor_id) DO NOTHING
`, like.ID, like.StudentID, like.TutorID, createdAt)
	if err != nil {
		return model.Like{}, false, fmt.Errorf("insert like: %w", err)
	}

	existing, err := r.GetByPair(ctx, like.StudentID, like.TutorID)
	if err != nil {
		return model.Like{}, false, err
	}

	return existing, tag.RowsAffected() > 0, nil
}

func (r *LikeRepo) GetByID(ctx context.Context, id string) (model.Like, error) {
	if strings.TrimSpace(id) == "" {
		return model.Like{}, fmt.Errorf("like id is required")
	}
	if r.pool == nil {
		return model.Like{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanLike(r.pool.QueryRow(ctx, `
SELECT id, student_id, tutor_id, created_at
FROM likes
WHERE id = $1
`, id))
}

func (r *LikeRepo) GetByPair(ctx context.Context, studentID, tutorID string) (model.Like, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(tutorID) == "" {
		return model.Like{}, fmt.Errorf("invalid like lookup payload")
	}
	if r.pool == nil {
		return model.Like{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanLike(r.pool.QueryRow(ctx, `
SELECT id, student_id, tutor_id, created_at
FROM likes
WHERE student_id = $1 AND tutor_id = $2
`, studentID, tutorID))
}

// List returns likes, optionally narrowed to a student and/or tutor. Empty
// filters mean "all", matching the collection query-string semantics.
func (r *LikeRepo) List(ctx context.Context, studentID, tutorID string) ([]model.Like, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, student_id, tutor_id, created_at
FROM likes
WHERE ($1 = '' OR student_id = $1)
	AND ($2 = '' OR tutor_id = $2)
ORDER BY created_at DESC, id ASC
`, strings.TrimSpace(studentID), strings.TrimSpace(tutorID))
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	items := make([]model.Like, 0)
	for rows.Next() {
		var like model.Like
		if err := rows.Scan(&like.ID, &like.StudentID, &like.TutorID, &like.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		items = append(items, like)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate likes: %w", rows.Err())
	}

	return items, nil
}

// ListExpanded joins each like with its tutor profile, the server-side
// counterpart of the collection expansion parameter.
func (r *LikeRepo) ListExpanded(ctx context.Context, studentID string) ([]model.LikedTutor, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	l.id,
	l.created_at,
	t.user_id,
	t.name,
	t.age,
	t.rating,
	t.city,
	t.schedule,
	t.subjects,
	t.bio,
	t.avatar_key,
	t.email,
	t.phone
FROM likes l
JOIN tutors t ON t.user_id = l.tutor_id
WHERE ($1 = '' OR l.student_id = $1)
ORDER BY l.created_at DESC, l.id ASC
`, strings.TrimSpace(studentID))
	if err != nil {
		return nil, fmt.Errorf("list expanded likes: %w", err)
	}
	defer rows.Close()

	items := make([]model.LikedTutor, 0)
	for rows.Next() {
		var item model.LikedTutor
		if err := rows.Scan(
			&item.LikeID,
			&item.CreatedAt,
			&item.Tutor.ID,
			&item.Tutor.Name,
			&item.Tutor.Age,
			&item.Tutor.Rating,
			&item.Tutor.City,
			&item.Tutor.Schedule,
			&item.Tutor.Subjects,
			&item.Tutor.Bio,
			&item.Tutor.AvatarKey,
			&item.Tutor.Email,
			&item.Tutor.Phone,
		); err != nil {
			return nil, fmt.Errorf("scan expanded like: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate expanded likes: %w", rows.Err())
	}

	return items, nil
}

func (r *LikeRepo) DeleteByID(ctx context.Context, id string) (model.Like, error) {
	if strings.TrimSpace(id) == "" {
		return model.Like{}, fmt.Errorf("like id is required")
	}
	if r.pool == nil {
		return model.Like{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanLike(r.pool.QueryRow(ctx, `
DELETE FROM likes
WHERE id = $1
RETURNING id, student_id, tutor_id, created_at
`, id))
}

func (r *LikeRepo) scanLike(row pgx.Row) (model.Like, error) {
	var like model.Like
	if err := row.Scan(&like.ID, &like.StudentID, &like.TutorID, &like.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Like{}, ErrLikeNotFound
		}
		return model.Like{}, fmt.Errorf("scan like: %w", err)
	}
	return like, nil
}
