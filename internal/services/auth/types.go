package auth

import (
	"errors"
	"time"

	"github.com/David-1512/LearnHub/internal/domain/enums"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionNotFound    = errors.New("session not found")
)

type SessionRecord struct {
	SID      string
	UserID   string
	Roles    []enums.Role
	IssuedAt time.Time
}

type AccessClaims struct {
	UserID    string
	SID       string
	Roles     []enums.Role
	ExpiresAt time.Time
}

type Me struct {
	ID    string
	Name  string
	Email string
	Roles []enums.Role
}

type AuthResult struct {
	AccessToken   string
	AccessExpires time.Time
	Me            Me
}
