package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	ratesvc "github.com/David-1512/LearnHub/internal/services/rate"
	userssvc "github.com/David-1512/LearnHub/internal/services/users"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type AuthHandler struct {
	auth    *authsvc.Service
	users   *userssvc.Service
	limiter *ratesvc.LoginLimiter
}

func NewAuthHandler(auth *authsvc.Service, users *userssvc.Service, limiter *ratesvc.LoginLimiter) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, limiter: limiter}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "email and password are required")
		return
	}

	if h.limiter != nil {
		retryAfter, allowed, err := h.limiter.AllowAttempt(r.Context(), req.Email)
		// A broken limiter fails open: a redis outage must not lock everyone out.
		if err == nil && !allowed {
			w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.APIError{
				Code:    "TOO_MANY_ATTEMPTS",
				Message: "too many login attempts, try again later",
			})
			return
		}
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			writeUnauthorized(w, "INVALID_CREDENTIALS", "email or password is incorrect")
		case errors.Is(err, authsvc.ErrInvalidInput):
			writeBadRequest(w, "VALIDATION_ERROR", "email and password are required")
		default:
			writeInternal(w, "INTERNAL_ERROR", "login failed")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LoginResponse{
		Token:        res.AccessToken,
		ExpiresInSec: maxInt64(0, int64(time.Until(res.AccessExpires).Seconds())),
		User: dto.UserResponse{
			ID:    res.Me.ID,
			Name:  res.Me.Name,
			Email: res.Me.Email,
			Roles: enums.RolesToStrings(res.Me.Roles),
		},
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	role, _ := enums.ParseRole(req.Role)
	_, err := h.users.Register(r.Context(), userssvc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Age:      req.Age,
		City:     req.City,
	})
	if err != nil {
		var verr *userssvc.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidation(w, verr)
		case errors.Is(err, userssvc.ErrEmailTaken):
			writeConflict(w, "EMAIL_TAKEN", "email already registered")
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		default:
			writeInternal(w, "INTERNAL_ERROR", "registration failed")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.RegisterResponse{OK: true})
}

// Logout accepts beacon-style requests: an empty body and even a missing
// token get a 200, so a closing browser tab never sees an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	if identity, ok := authsvc.IdentityFromContext(r.Context()); ok {
		if err := h.auth.Logout(r.Context(), identity.SID, identity.UserID); err != nil {
			writeInternal(w, "INTERNAL_ERROR", "logout failed")
			return
		}
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.auth.LogoutAll(r.Context(), identity.UserID); err != nil {
		if errors.Is(err, authsvc.ErrInvalidInput) {
			writeBadRequest(w, "INVALID_REQUEST", "request validation failed")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "logout failed")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
