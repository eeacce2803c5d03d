package handlers

import (
	"net/http"

	"github.com/foodgram/backend/internal/infrastructure/security"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthAPI serves registration, login and account endpoints.
type AuthAPI struct {
	users  inbound.UserService
	tokens *security.TokenService
	logger *zap.Logger
}

// NewAuthAPI creates the auth handler group.
func NewAuthAPI(users inbound.UserService, tokens *security.TokenService, logger *zap.Logger) *AuthAPI {
	return &AuthAPI{
		users:  users,
		tokens: tokens,
		logger: logger.Named("auth-api"),
	}
}

// Routes mounts the public auth endpoints.
func (a *AuthAPI) Routes(r chi.Router) {
	r.Post("/auth/register", a.register)
	r.Post("/auth/login", a.login)
	r.Post("/auth/refresh", a.refresh)
}

// ProtectedRoutes mounts the endpoints that need an authenticated user.
func (a *AuthAPI) ProtectedRoutes(r chi.Router) {
	r.Get("/users/me", a.me)
	r.Post("/users/set_password", a.setPassword)
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"required,min=8"`
}

func (a *AuthAPI) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.users.Register(r.Context(), inbound.RegisterCommand{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User   *inbound.UserDTO    `json:"user"`
	Tokens *security.TokenPair `json:"tokens"`
}

func (a *AuthAPI) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.users.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}

	tokens, err := a.tokens.IssueTokens(dto.ID, dto.Username)
	if err != nil {
		writeAppError(w, r, a.logger, errors.NewInternalError("Failed to issue tokens").WithCause(err))
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: dto, Tokens: tokens})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (a *AuthAPI) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	claims, err := a.tokens.ValidateToken(req.RefreshToken, security.TokenKindRefresh)
	if err != nil {
		writeAppError(w, r, a.logger, errors.NewUnauthorizedError("Invalid or expired refresh token"))
		return
	}

	tokens, err := a.tokens.IssueTokens(claims.UserID, claims.Username)
	if err != nil {
		writeAppError(w, r, a.logger, errors.NewInternalError("Failed to issue tokens").WithCause(err))
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (a *AuthAPI) me(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type setPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (a *AuthAPI) setPassword(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	var req setPasswordRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	if err := a.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
