package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/David-1512/LearnHub/internal/domain/model"
)

const (
	MinIdleTTL     = time.Minute
	DefaultIdleTTL = 15 * time.Minute
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, ttl time.Duration) error
	Get(ctx context.Context, sid string) (SessionRecord, error)
	Touch(ctx context.Context, sid string, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// LogoutBroadcaster fans a forced-logout signal out to every live client of a
// user, so one tab signing out signs the rest out too.
type LogoutBroadcaster interface {
	PublishLogout(ctx context.Context, userID string) error
}

type Service struct {
	jwt       *JWTManager
	users     UserStore
	sessions  SessionStore
	broadcast LogoutBroadcaster
	idleTTL   time.Duration
	now       func() time.Time
}

func NewService(jwtManager *JWTManager, users UserStore, sessions SessionStore, broadcast LogoutBroadcaster, idleTTL time.Duration) *Service {
	if idleTTL < MinIdleTTL {
		idleTTL = DefaultIdleTTL
	}

	return &Service{
		jwt:       jwtManager,
		users:     users,
		sessions:  sessions,
		broadcast: broadcast,
		idleTTL:   idleTTL,
		now:       time.Now,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// A missing account and a wrong password look identical to the caller.
		return AuthResult{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.IssueForUser(ctx, user)
}

// IssueForUser opens a fresh session for an already authenticated user. It
// backs both password login and the auto-login right after registration.
func (s *Service) IssueForUser(ctx context.Context, user model.User) (AuthResult, error) {
	sessionID, err := NewSessionID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate session id: %w", err)
	}

	session := SessionRecord{
		SID:      sessionID,
		UserID:   user.ID,
		Roles:    user.Roles,
		IssuedAt: s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, session, s.idleTTL); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(user.ID, sessionID, user.Roles)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		AccessExpires: accessExpires,
		Me: Me{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Roles: user.Roles,
		},
	}, nil
}

// ValidateAccessToken checks the token against its live session and slides the
// session's idle expiry forward. A session untouched for the idle window lapses
// in redis on its own, which is what logs an inactive user out.
func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (AccessClaims, error) {
	claims, err := s.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return AccessClaims{}, ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return AccessClaims{}, ErrUnauthorized
		}
		return AccessClaims{}, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != claims.UserID {
		return AccessClaims{}, ErrUnauthorized
	}

	if err := s.sessions.Touch(ctx, claims.SID, s.idleTTL); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return AccessClaims{}, fmt.Errorf("touch session: %w", err)
	}

	// Roles come from the session, not the token, so a role change takes
	// effect without waiting for the token to expire.
	claims.Roles = session.Roles
	return claims, nil
}

func (s *Service) Logout(ctx context.Context, sid, userID string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return s.publishLogout(ctx, userID)
}

func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete all sessions: %w", err)
	}
	return s.publishLogout(ctx, userID)
}

func (s *Service) publishLogout(ctx context.Context, userID string) error {
	if s.broadcast == nil || strings.TrimSpace(userID) == "" {
		return nil
	}
	if err := s.broadcast.PublishLogout(ctx, userID); err != nil {
		return fmt.Errorf("publish logout: %w", err)
	}
	return nil
}
