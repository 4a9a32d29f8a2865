package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Troubladore/silent-auction-sub001/pkg/config"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
)

func testCredentials(t *testing.T, username, password string) *Credentials {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	creds, err := NewCredentials(&config.Config{AdminUsername: username, AdminPasswordHash: string(hash)})
	if err != nil {
		t.Fatalf("NewCredentials: %v", err)
	}
	return creds
}

func TestCredentials_Verify(t *testing.T) {
	creds := testCredentials(t, "admin", "s3cret")

	if err := creds.Verify("admin", "s3cret"); err != nil {
		t.Fatalf("expected valid credentials, got %v", err)
	}
	for _, pair := range [][2]string{{"admin", "wrong"}, {"root", "s3cret"}, {"", ""}} {
		if err := creds.Verify(pair[0], pair[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Verify(%q, %q): expected ErrInvalidCredentials, got %v", pair[0], pair[1], err)
		}
	}
}

func TestNewCredentials(t *testing.T) {
	dev, err := NewCredentials(&config.Config{AdminUsername: "admin", Environment: config.EnvDevelopment})
	if err != nil {
		t.Fatalf("dev fallback: %v", err)
	}
	if err := dev.Verify("admin", DevPassword); err != nil {
		t.Fatalf("dev password rejected: %v", err)
	}

	if _, err := NewCredentials(&config.Config{AdminUsername: "admin", Environment: config.EnvProduction}); err == nil {
		t.Fatal("expected error for missing hash in production")
	}
	if _, err := NewCredentials(&config.Config{AdminUsername: "admin", AdminPasswordHash: "plaintext"}); err == nil {
		t.Fatal("expected error for a non-bcrypt hash")
	}
}

func TestLogin_ThenRequireAuth(t *testing.T) {
	store := newTestStore()
	h := NewHandlers(store, testCredentials(t, "admin", "s3cret"), logger.Discard())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`))
	h.Login(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Operator != "admin" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = OperatorFromCtx(r.Context())
	})
	rw := httptest.NewRecorder()
	RequireAuth(store, logger.Discard())(next).ServeHTTP(rw, requestWithCookies(w.Result().Cookies()))
	if captured != "admin" {
		t.Fatalf("session cookie from login not accepted (status %d)", rw.Code)
	}
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"wrong password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"admin"}`, http.StatusBadRequest},
		{"malformed", `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(newTestStore(), testCredentials(t, "admin", "s3cret"), logger.Discard())
			w := httptest.NewRecorder()
			h.Login(w, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if len(w.Result().Cookies()) != 0 {
				t.Fatal("rejected login must not set a session cookie")
			}
		})
	}
}

func TestLogout_ExpiresCookie(t *testing.T) {
	store := newTestStore()
	h := NewHandlers(store, testCredentials(t, "admin", "s3cret"), logger.Discard())

	w := httptest.NewRecorder()
	h.Logout(w, requestWithCookies(sessionCookies(t, store, map[any]any{sessionOperatorKey: "admin"})))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expired session cookie, got %+v", cookies)
	}
}
