package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	"github.com/David-1512/LearnHub/internal/domain/model"
	redrepo "github.com/David-1512/LearnHub/internal/repo/redis"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	ratesvc "github.com/David-1512/LearnHub/internal/services/rate"
)

type authUserStoreFake struct {
	user model.User
}

func (f *authUserStoreFake) GetByEmail(_ context.Context, email string) (model.User, error) {
	if email != f.user.Email {
		return model.User{}, errors.New("user not found")
	}
	return f.user, nil
}

func (f *authUserStoreFake) GetByID(_ context.Context, id string) (model.User, error) {
	if id != f.user.ID {
		return model.User{}, errors.New("user not found")
	}
	return f.user, nil
}

func newAuthHandlerForTest(t *testing.T, perBurst int) *AuthHandler {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-42"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users := &authUserStoreFake{user: model.User{
		ID:           "user-1",
		Name:         "Anna",
		Email:        "anna@example.com",
		PasswordHash: string(hash),
		Roles:        []enums.Role{enums.RoleStudent},
	}}

	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwtManager, users, redrepo.NewSessionRepo(client), redrepo.NewBroadcastRepo(client), time.Minute)
	limiter := ratesvc.NewLoginLimiter(redrepo.NewRateRepo(client), perBurst, 100)

	return NewAuthHandler(svc, nil, limiter)
}

func performLoginRequest(t *testing.T, h *AuthHandler, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLoginHandlerReturnsTokenAndUser(t *testing.T) {
	h := newAuthHandlerForTest(t, 100)

	resp := performLoginRequest(t, h, "anna@example.com", "correct-horse-42")
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d body=%s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Token        string `json:"token"`
		ExpiresInSec int64  `json:"expiresInSec"`
		User         struct {
			ID    string   `json:"id"`
			Email string   `json:"email"`
			Roles []string `json:"roles"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Token == "" || payload.ExpiresInSec <= 0 {
		t.Fatalf("unexpected token payload: %+v", payload)
	}
	if payload.User.ID != "user-1" || len(payload.User.Roles) != 1 || payload.User.Roles[0] != "student" {
		t.Fatalf("unexpected user payload: %+v", payload.User)
	}
}

func TestLoginHandlerRejectsWrongPassword(t *testing.T) {
	h := newAuthHandlerForTest(t, 100)

	resp := performLoginRequest(t, h, "anna@example.com", "wrong-password")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusUnauthorized)
	}
}

func TestLoginHandlerThrottlesBurst(t *testing.T) {
	h := newAuthHandlerForTest(t, 2)

	for i := 0; i < 2; i++ {
		resp := performLoginRequest(t, h, "anna@example.com", "wrong-password")
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("attempt #%d: got %d want %d", i+1, resp.Code, http.StatusUnauthorized)
		}
	}

	resp := performLoginRequest(t, h, "anna@example.com", "wrong-password")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected status on third attempt: got %d want %d", resp.Code, http.StatusTooManyRequests)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on throttled login")
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "TOO_MANY_ATTEMPTS" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}
