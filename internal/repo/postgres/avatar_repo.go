package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAvatarNotFound = errors.New("avatar not found")

// AvatarRepo stores the object key of a user's avatar on whichever profile
// rows the user has.
type AvatarRepo struct {
	pool *pgxpool.Pool
}

func NewAvatarRepo(pool *pgxpool.Pool) *AvatarRepo {
	return &AvatarRepo{pool: pool}
}

func (r *AvatarRepo) SaveAvatarKey(ctx context.Context, userID, key string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tutorTag, err := r.pool.Exec(ctx, `
UPDATE tutors SET avatar_key = $2 WHERE user_id = $1
`, userID, key)
	if err != nil {
		return fmt.Errorf("save tutor avatar key: %w", err)
	}

	studentTag, err := r.pool.Exec(ctx, `
UPDATE students SET avatar_key = $2 WHERE user_id = $1
`, userID, key)
	if err != nil {
		return fmt.Errorf("save student avatar key: %w", err)
	}

	if tutorTag.RowsAffected() == 0 && studentTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *AvatarRepo) GetAvatarKey(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("user id is required")
	}
	if r.pool == nil {
		return "", fmt.Errorf("postgres pool is nil")
	}

	var key string
	err := r.pool.QueryRow(ctx, `
SELECT avatar_key FROM (
	SELECT avatar_key FROM tutors WHERE user_id = $1
	UNION ALL
	SELECT avatar_key FROM students WHERE user_id = $1
) keys
WHERE avatar_key <> ''
LIMIT 1
`, userID).Scan(&key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAvatarNotFound
		}
		return "", fmt.Errorf("get avatar key: %w", err)
	}
	return key, nil
}
