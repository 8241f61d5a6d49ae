package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
)

func TestRequireRoleRedirectsAnonymousToLogin(t *testing.T) {
	mw := RequireRole(enums.RoleStudent, enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called for anonymous caller")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusFound)
	}
	if got, want := rr.Header().Get("Location"), "/login?from=%2Fapi%2Ffeed"; got != want {
		t.Fatalf("unexpected redirect target: got %q want %q", got, want)
	}
}

func TestRequireRoleRedirectsWrongRoleToRoot(t *testing.T) {
	mw := RequireRole(enums.RoleStudent, enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: "user-2",
		SID:    "sid-2",
		Roles:  []enums.Role{enums.RoleTutor},
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called for a mismatched role")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/" {
		t.Fatalf("unexpected redirect target: got %q want %q", got, "/")
	}
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	mw := RequireRole(enums.RoleStudent, enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: "user-1",
		SID:    "sid-1",
		Roles:  []enums.Role{enums.RoleStudent},
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestAuthMiddlewareRejectsMissingAndInvalidTokens(t *testing.T) {
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwtManager, nil, nil, nil, time.Minute)
	mw := AuthMiddleware(svc, nil)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without a valid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d want %d", rr.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		token, ok := extractBearerToken(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Fatalf("header %q: got (%q, %v) want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
