package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	"github.com/David-1512/LearnHub/internal/domain/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, tx pgx.Tx, user model.User) error {
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("invalid user payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
INSERT INTO users (
	id,
	name,
	email,
	password_hash,
	roles
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO NOTHING
`, user.ID, user.Name, user.Email, user.PasswordHash, enums.RolesToStrings(user.Roles))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailTaken
	}

	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if strings.TrimSpace(email) == "" {
		return model.User{}, fmt.Errorf("email is required")
	}
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanUser(r.pool.QueryRow(ctx, `
SELECT id, name, email, password_hash, roles
FROM users
WHERE email = $1
`, strings.ToLower(strings.TrimSpace(email))))
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	if strings.TrimSpace(id) == "" {
		return model.User{}, fmt.Errorf("user id is required")
	}
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanUser(r.pool.QueryRow(ctx, `
SELECT id, name, email, password_hash, roles
FROM users
WHERE id = $1
`, id))
}

func (r *UserRepo) UpdateCredentials(ctx context.Context, tx pgx.Tx, id, name, email, passwordHash string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("user id is required")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE users SET
	name = COALESCE(NULLIF($2, ''), name),
	email = COALESCE(NULLIF($3, ''), email),
	password_hash = COALESCE(NULLIF($4, ''), password_hash)
WHERE id = $1
`, id, name, strings.ToLower(strings.TrimSpace(email)), passwordHash)
	if err != nil {
		return fmt.Errorf("update user credentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) scanUser(row pgx.Row) (model.User, error) {
	var (
		user  model.User
		roles []string
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &roles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.Roles = enums.RolesFromStrings(roles)
	return user, nil
}
