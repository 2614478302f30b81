package auth

import (
	"context"
	"time"

	"github.com/lingomate/api/internal/user"
)

// TokenService defines the interface for session token creation and validation
type TokenService interface {
	CreateToken(userID string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository defines the credential-store operations the auth layer needs
type UserRepository interface {
	Create(ctx context.Context, params user.CreateParams) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	UpdateProfile(ctx context.Context, id string, update user.ProfileUpdate) (*user.User, error)
}

// PresenceSyncer pushes user identity and display data to the external chat
// presence service
type PresenceSyncer interface {
	UpsertUser(ctx context.Context, id, name, image string) error
}
