package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lingomate/api/internal/httputil"
	"github.com/lingomate/api/internal/logging"
	"github.com/lingomate/api/internal/user"
)

// Handler contains HTTP handlers for the account endpoints
type Handler struct {
	service         *Service
	isProduction    bool
	sessionDuration time.Duration
}

func NewHandler(service *Service, isProduction bool, sessionDuration time.Duration) *Handler {
	return &Handler{
		service:         service,
		isProduction:    isProduction,
		sessionDuration: sessionDuration,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardRequest represents the onboarding request body
type OnboardRequest struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profilePic"`
}

// UserResponse is the standard success envelope carrying a user projection.
// The password hash is excluded by the model's JSON tags.
type UserResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	User    *user.User `json:"user,omitempty"`
}

// Signup handles user registration
// @Summary      Sign up
// @Description  Create a new account. Sets the session cookie on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup fields"
// @Success      201 {object} UserResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error or duplicate email"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newUser, token, err := h.service.Signup(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrFieldsRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeFieldsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidEmailFormat, http.StatusBadRequest)
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("signup failed: email already exists", "email", req.Email)
			httputil.RespondErrorWithCode(w, "user with this email already exists", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
		default:
			logger.Error("signup failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user signed up", "user_id", newUser.ID.Hex())

	SetSessionCookie(w, token, h.isProduction, h.sessionDuration)
	httputil.RespondJSON(w, UserResponse{
		Success: true,
		Message: "user created successfully",
		User:    newUser,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      Log in
// @Description  Authenticate with email and password. Sets the session cookie on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} UserResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	existingUser, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialsRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeFieldsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials", "email", req.Email)
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidCredentials, http.StatusUnauthorized)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user logged in", "user_id", existingUser.ID.Hex())

	SetSessionCookie(w, token, h.isProduction, h.sessionDuration)
	httputil.RespondJSON(w, UserResponse{
		Success: true,
		Message: "login successful",
		User:    existingUser,
	}, http.StatusOK)
}

// Logout handles user logout
// @Summary      Log out
// @Description  Clear the session cookie. Idempotent; requires no authentication.
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserResponse
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w, h.isProduction)
	httputil.RespondJSON(w, UserResponse{
		Success: true,
		Message: "logout successful",
	}, http.StatusOK)
}

// Onboard handles one-time profile completion
// @Summary      Complete onboarding
// @Description  Fill in profile fields and mark the account onboarded.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body OnboardRequest true "Onboarding fields"
// @Success      200 {object} UserResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing languages"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "User no longer exists"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/onboard [post]
func (h *Handler) Onboard(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := CurrentUser(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "not authorized", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid onboarding request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updatedUser, err := h.service.Onboard(r.Context(), currentUser.ID.Hex(), OnboardParams{
		FullName:         req.FullName,
		Bio:              req.Bio,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Location:         req.Location,
		ProfilePic:       req.ProfilePic,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrLanguagesRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeLanguagesRequired, http.StatusBadRequest)
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("onboarding failed: user not found", "user_id", currentUser.ID.Hex())
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
		default:
			logger.Error("onboarding failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user onboarded", "user_id", updatedUser.ID.Hex())

	httputil.RespondJSON(w, UserResponse{
		Success: true,
		Message: "onboarding completed successfully",
		User:    updatedUser,
	}, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Current user
// @Description  Return the profile of the authenticated user.
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := CurrentUser(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "not authorized", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	httputil.RespondJSON(w, UserResponse{
		Success: true,
		User:    currentUser,
	}, http.StatusOK)
}
