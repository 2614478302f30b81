package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingomate/api/internal/logging"
)

// newTestRouter wires the handlers and session middleware the way the real
// router does, backed by in-memory fakes
func newTestRouter(t *testing.T) (*chi.Mux, *fakeUserRepo, *fakePresence) {
	t.Helper()

	repo := newFakeUserRepo()
	presence := &fakePresence{}

	tokens, err := NewJWTService([]byte(testSecret))
	require.NoError(t, err)

	logger := logging.NewLogger(true)
	service := NewService(repo, tokens, presence, logger, 7*24*time.Hour)
	handler := NewHandler(service, false, 7*24*time.Hour)
	middleware := NewMiddleware(tokens, repo)

	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", handler.Signup)
		r.Post("/login", handler.Login)
		r.Post("/logout", handler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/onboard", handler.Onboard)
			r.Get("/me", handler.Me)
		})
	})

	return r, repo, presence
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %q cookie in response", SessionCookieName)
	return nil
}

func TestSignupEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["success"])

	userPayload, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Mia Torres", userPayload["fullName"])
	assert.Equal(t, "mia@example.com", userPayload["email"])
	assert.NotContains(t, userPayload, "password")
	assert.NotContains(t, rec.Body.String(), "secret123")
}

func TestSignupEndpoint_DuplicateEmail(t *testing.T) {
	router, _, _ := newTestRouter(t)

	first := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Someone Else","email":"mia@example.com","password":"another-password"}`)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "EMAIL_ALREADY_EXISTS")
}

func TestSignupEndpoint_Validation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"email":"mia@example.com"}`},
		{"short password", `{"fullName":"Mia","email":"mia@example.com","password":"five5"}`},
		{"bad email", `{"fullName":"Mia","email":"mia@example","password":"secret123"}`},
		{"malformed json", `{"fullName":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSignupEndpoint_PresenceFailure(t *testing.T) {
	router, repo, presence := newTestRouter(t)
	presence.err = errors.New("stream unavailable")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)

	// Upstream failure surfaces as a generic 500; the client learns nothing
	// about the collaborator
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.NotContains(t, rec.Body.String(), "stream unavailable")

	// The record was persisted before the sync failed
	_, err := repo.GetByEmail(context.Background(), "mia@example.com")
	assert.NoError(t, err)
}

func TestLoginEndpoint_StoreFailure(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	signup := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, signup.Code)

	repo.err = errors.New("connection reset")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"mia@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestLoginEndpoint_EnumerationResistance(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknownEmail := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"secret123"}`)
	wrongPassword := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"mia@example.com","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestLoginEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	signup := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, signup.Code)

	login := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"mia@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(t, login)
	assert.NotEmpty(t, cookie.Value)
	assert.NotContains(t, login.Body.String(), "secret123")
}

func TestLogoutEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	// No authentication required, idempotent
	rec := doJSON(t, router, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)

	again := doJSON(t, router, http.MethodPost, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestMeEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	// Without a cookie
	rec := doJSON(t, router, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// With the cookie from signup
	signup := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, signup.Code)
	cookie := sessionCookie(t, signup)

	me := doJSON(t, router, http.MethodGet, "/api/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, me.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &payload))
	userPayload, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mia@example.com", userPayload["email"])
	assert.NotContains(t, userPayload, "password")
}

func TestOnboardEndpoint(t *testing.T) {
	router, _, presence := newTestRouter(t)

	signup := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"fullName":"Mia Torres","email":"mia@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, signup.Code)
	cookie := sessionCookie(t, signup)
	presence.calls = nil

	// Missing languages
	rec := doJSON(t, router, http.MethodPost, "/api/auth/onboard",
		`{"bio":"learning for travel"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "LANGUAGES_REQUIRED")

	// Flag untouched after the rejected attempt
	me := doJSON(t, router, http.MethodGet, "/api/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"isOnboarded":false`)

	// Complete onboarding
	rec = doJSON(t, router, http.MethodPost, "/api/auth/onboard",
		`{"nativeLanguage":"Spanish","learningLanguage":"Japanese","location":"Valencia, Spain"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isOnboarded":true`)
	assert.Len(t, presence.calls, 1)

	// Without authentication
	rec = doJSON(t, router, http.MethodPost, "/api/auth/onboard",
		`{"nativeLanguage":"Spanish","learningLanguage":"Japanese"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
