// Package user provides the application layer for account management.
package user

import (
	"context"

	"github.com/foodgram/backend/internal/domain/user"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the account use cases.
type Service struct {
	users  outbound.UserRepository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(users outbound.UserRepository, logger *zap.Logger) inbound.UserService {
	return &Service{
		users:  users,
		logger: logger.Named("user-service"),
	}
}

// Register creates a new account. Email and username must both be unused.
func (s *Service) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.UserDTO, error) {
	existing, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("check email", err)
	}
	if existing != nil {
		return nil, errors.NewEmailAlreadyExistsError(cmd.Email)
	}

	existing, err = s.users.FindByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, errors.NewDatabaseError("check username", err)
	}
	if existing != nil {
		return nil, errors.NewUsernameAlreadyExistsError(cmd.Username)
	}

	entity, err := user.NewUser(cmd.Username, cmd.Email, cmd.FirstName, cmd.LastName, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.users.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", entity.ID().String()),
		zap.String("username", entity.Username()),
	)

	return entityToDTO(entity), nil
}

// VerifyCredentials checks an email and password pair. The unknown-email
// and wrong-password cases return the same error.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*inbound.UserDTO, error) {
	entity, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if entity == nil || !entity.CheckPassword(password) {
		return nil, errors.NewInvalidCredentialsError()
	}
	return entityToDTO(entity), nil
}

// ChangePassword replaces the user's password after verifying the current
// one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	entity, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return errors.NewDatabaseError("find user", err)
	}
	if entity == nil {
		return errors.NewUserNotFoundError(userID.String())
	}
	if !entity.CheckPassword(current) {
		return errors.NewInvalidCredentialsError()
	}

	if err := entity.ChangePassword(next); err != nil {
		return errors.NewFieldValidationError("new_password", err.Error())
	}

	if err := s.users.Update(ctx, entity); err != nil {
		return errors.NewDatabaseError("update user", err)
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// GetProfile returns the account view for the given user.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	entity, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if entity == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}
	return entityToDTO(entity), nil
}

func entityToDTO(entity *user.User) *inbound.UserDTO {
	return &inbound.UserDTO{
		ID:        entity.ID(),
		Email:     entity.Email(),
		Username:  entity.Username(),
		FirstName: entity.FirstName(),
		LastName:  entity.LastName(),
	}
}
