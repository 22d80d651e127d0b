package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAuthFlow(t *testing.T) {
	h := newRouter(t)

	token := registerToken(t, h, "alice@example.com")

	status, body := doRequest(t, h, http.MethodGet, "/v1/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("me: expected 200 got %d", status)
	}
	user, _ := body["user"].(map[string]any)
	if user["email"] != "alice@example.com" {
		t.Fatalf("me: unexpected user %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("me: password hash exposed")
	}

	status, body = doRequest(t, h, http.MethodPost, "/v1/auth/logout", token, nil)
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("logout: expected 200 success got %d %v", status, body)
	}

	if status, _ := doRequest(t, h, http.MethodGet, "/v1/me", token, nil); status != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401 got %d", status)
	}

	status, body = doRequest(t, h, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "alice@example.com", "password": "s3cret-pass"})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200 got %d (%v)", status, body)
	}
	token, _ = body["token"].(string)
	if status, _ := doRequest(t, h, http.MethodGet, "/v1/me", token, nil); status != http.StatusOK {
		t.Fatalf("me after login: expected 200 got %d", status)
	}
}

func TestAuthHandlers(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{
			name:       "Register_InvalidRequest",
			path:       "/v1/auth/register",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Register_MissingFields",
			path:       "/v1/auth/register",
			body:       map[string]string{"email": "bob@example.com", "password": "s3cret-pass"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Register_ShortPassword",
			path: "/v1/auth/register",
			body: func() map[string]any {
				b := registrationBody("bob@example.com")
				b["password"], b["confirmPassword"] = "short", "short"
				return b
			}(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Register_PasswordMismatch",
			path: "/v1/auth/register",
			body: func() map[string]any {
				b := registrationBody("bob@example.com")
				b["confirmPassword"] = "different-pass"
				return b
			}(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Register_NoOfficeLocations",
			path: "/v1/auth/register",
			body: func() map[string]any {
				b := registrationBody("bob@example.com")
				b["officeLocations"] = []string{}
				return b
			}(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Register_DuplicateEmail",
			path:       "/v1/auth/register",
			body:       registrationBody("alice@example.com"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Login_InvalidRequest",
			path:       "/v1/auth/login",
			body:       map[string]string{"email": "alice@example.com"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Login_WrongPassword",
			path:       "/v1/auth/login",
			body:       map[string]string{"email": "alice@example.com", "password": "wrong-pass"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Login_UnknownEmail",
			path:       "/v1/auth/login",
			body:       map[string]string{"email": "nobody@example.com", "password": "s3cret-pass"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(t)
			registerToken(t, h, "alice@example.com")

			status, body := doRequest(t, h, http.MethodPost, tt.path, "", tt.body)
			if status != tt.wantStatus {
				t.Fatalf("expected %d got %d (%v)", tt.wantStatus, status, body)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body)
			}
			if msg, _ := body["error"].(string); msg == "" {
				t.Fatalf("expected error message, got %v", body)
			}
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	h := newRouter(t)
	first := registerToken(t, h, "alice@example.com")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredStr, _ := expired.SignedString([]byte(testSecret))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	foreignStr, _ := foreign.SignedString([]byte("othersecret"))

	tests := []struct {
		name   string
		header string
	}{
		{name: "MissingHeader", header: ""},
		{name: "NotBearer", header: "Token abc"},
		{name: "Garbage", header: "Bearer not-a-jwt"},
		{name: "Expired", header: "Bearer " + expiredStr},
		{name: "WrongSecret", header: "Bearer " + foreignStr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRawRequest(http.MethodGet, "/v1/positions", tt.header)
			status := serve(h, req)
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401 got %d", status)
			}
		})
	}

	// A second sign-in replaces the portal session; the first token is stale.
	second := registerToken(t, h, "bob@example.com")
	if status, _ := doRequest(t, h, http.MethodGet, "/v1/positions", first, nil); status != http.StatusUnauthorized {
		t.Fatalf("stale token: expected 401 got %d", status)
	}
	if status, _ := doRequest(t, h, http.MethodGet, "/v1/positions", second, nil); status != http.StatusOK {
		t.Fatalf("current token: expected 200 got %d", status)
	}
}

func TestUpdateProfile(t *testing.T) {
	h := newRouter(t)
	token := registerToken(t, h, "alice@example.com")

	status, body := doRequest(t, h, http.MethodPatch, "/v1/me", token, map[string]any{
		"hirerName":       "Alice Smith",
		"officeLocations": []string{"Boston", "Boston", "Remote"},
	})
	if status != http.StatusOK {
		t.Fatalf("update: expected 200 got %d (%v)", status, body)
	}
	user, _ := body["user"].(map[string]any)
	if user["hirerName"] != "Alice Smith" || user["companyName"] != "Acme" {
		t.Fatalf("update: unexpected user %v", user)
	}
	if locs, _ := user["officeLocations"].([]any); len(locs) != 2 {
		t.Fatalf("update: office locations %v", user["officeLocations"])
	}

	if status, _ := doRequest(t, h, http.MethodPatch, "/v1/me", token, map[string]any{"hirerName": "  "}); status != http.StatusBadRequest {
		t.Fatalf("blank name: expected 400 got %d", status)
	}
}

func TestRegister_LargeLogo(t *testing.T) {
	h := newRouter(t)

	// A 2 MB image encodes to roughly 2.7 MB of base64.
	logo := "data:image/png;base64," + strings.Repeat("A", 2_800_000)
	body := registrationBody("logo@example.com")
	body["companyLogo"] = logo

	status, resp := doRequest(t, h, http.MethodPost, "/v1/auth/register", "", body)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%v)", status, resp["error"])
	}
	user, _ := resp["user"].(map[string]any)
	if got, _ := user["companyLogo"].(string); len(got) != len(logo) {
		t.Fatalf("logo truncated: got %d bytes want %d", len(got), len(logo))
	}
}

func TestRegister_BodyTooLarge(t *testing.T) {
	h := newRouter(t)

	body := registrationBody("huge@example.com")
	body["companyLogo"] = "data:image/png;base64," + strings.Repeat("A", 5<<20)

	status, resp := doRequest(t, h, http.MethodPost, "/v1/auth/register", "", body)
	if status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d (%v)", status, resp["error"])
	}
	if resp["success"] != false {
		t.Fatalf("expected success=false, got %v", resp["success"])
	}
}
