package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/lingomate/api/internal/logging"
	"github.com/lingomate/api/internal/user"
)

var (
	ErrFieldsRequired      = errors.New("fullName, email and password are required")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrInvalidEmailFormat  = errors.New("please provide a valid email address")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrLanguagesRequired   = errors.New("native language and learning language are required for onboarding")
)

const minPasswordLength = 6

// avatarPoolSize is the number of placeholder avatars to pick from
const avatarPoolSize = 100

// Requires local@domain.tld; stricter than RFC address parsing, which
// accepts domains without a dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OnboardParams carries the onboarding request fields. Languages are
// required; the rest are optional.
type OnboardParams struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	ProfilePic       string
}

// Service handles signup, login and onboarding business logic
type Service struct {
	users           UserRepository
	tokens          TokenService
	presence        PresenceSyncer
	logger          *logging.Logger
	sessionDuration time.Duration
}

func NewService(
	users UserRepository,
	tokens TokenService,
	presence PresenceSyncer,
	logger *logging.Logger,
	sessionDuration time.Duration,
) *Service {
	return &Service{
		users:           users,
		tokens:          tokens,
		presence:        presence,
		logger:          logger,
		sessionDuration: sessionDuration,
	}
}

// Signup validates input, creates the user record with a placeholder
// avatar, syncs it to the presence service and issues a session token.
// A failed presence sync fails the signup, but the already-persisted user
// record is not rolled back.
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (*user.User, string, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, "", ErrFieldsRequired
	}
	if len(password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}
	if !emailPattern.MatchString(email) {
		return nil, "", ErrInvalidEmailFormat
	}

	newUser, err := s.users.Create(ctx, user.CreateParams{
		FullName:   fullName,
		Email:      email,
		Password:   password,
		ProfilePic: randomAvatarURL(),
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", user.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.presence.UpsertUser(ctx, newUser.ID.Hex(), newUser.FullName, newUser.ProfilePic); err != nil {
		// The record is already persisted; the signup still fails
		s.logger.Error("chat presence sync failed during signup", "user_id", newUser.ID.Hex(), "error", err.Error())
		return nil, "", fmt.Errorf("failed to sync user to chat presence: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID.Hex(), s.sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session token: %w", err)
	}

	return newUser, token, nil
}

// Login authenticates a user and issues a session token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrCredentialsRequired
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !existingUser.ComparePassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existingUser.ID.Hex(), s.sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session token: %w", err)
	}

	return existingUser, token, nil
}

// Onboard completes a user's profile, marks it onboarded and syncs the
// updated identity to the presence service
func (s *Service) Onboard(ctx context.Context, userID string, params OnboardParams) (*user.User, error) {
	if params.NativeLanguage == "" || params.LearningLanguage == "" {
		return nil, ErrLanguagesRequired
	}

	updatedUser, err := s.users.UpdateProfile(ctx, userID, user.ProfileUpdate{
		FullName:         params.FullName,
		Bio:              params.Bio,
		NativeLanguage:   params.NativeLanguage,
		LearningLanguage: params.LearningLanguage,
		Location:         params.Location,
		ProfilePic:       params.ProfilePic,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	if err := s.presence.UpsertUser(ctx, updatedUser.ID.Hex(), updatedUser.FullName, updatedUser.ProfilePic); err != nil {
		s.logger.Error("chat presence sync failed during onboarding", "user_id", updatedUser.ID.Hex(), "error", err.Error())
		return nil, fmt.Errorf("failed to sync user to chat presence: %w", err)
	}

	return updatedUser, nil
}

// randomAvatarURL picks a placeholder profile picture from a fixed pool
func randomAvatarURL() string {
	idx := rand.IntN(avatarPoolSize) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}
