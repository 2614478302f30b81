package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/lingomate/api/internal/httputil"
	"github.com/lingomate/api/internal/logging"
	"github.com/lingomate/api/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	// UserContextKey holds the authenticated *user.User for the request
	UserContextKey ContextKey = "current_user"
)

// Middleware gates protected routes: it reads the session cookie, verifies
// the token and resolves it to a live user record
type Middleware struct {
	tokenService TokenService
	users        UserRepository
}

func NewMiddleware(tokenService TokenService, users UserRepository) *Middleware {
	return &Middleware{tokenService: tokenService, users: users}
}

// RequireAuth validates the session cookie and attaches the resolved user
// to the request context
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := GetSessionTokenFromCookie(r)
		if err != nil || token == "" {
			httputil.RespondErrorWithCode(w, "not authorized, no token", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondErrorWithCode(w, "not authorized, token expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "not authorized, invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		// A valid token for a deleted user is still unauthorized
		currentUser, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				httputil.RespondErrorWithCode(w, "not authorized, user not found", httputil.CodeUserNotFound, http.StatusUnauthorized)
				return
			}
			logger := logging.GetLoggerFromContext(r.Context())
			logger.Error("failed to load user for session", "error", err.Error())
			httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, currentUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser extracts the authenticated user from the request context
func CurrentUser(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	return u, ok
}
