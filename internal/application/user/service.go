// Package user provides the application layer for user management
package user

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/domain/user"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
	"github.com/alchemorsel/catalog/pkg/errors"
)

// UserService implements user management use cases
type UserService struct {
	userRepo   outbound.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

var _ inbound.UserService = (*UserService)(nil)

// NewUserService creates a new user service
func NewUserService(userRepo outbound.UserRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     logger.Named("user-service"),
	}
}

// Register creates a new user account
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.UserDTO, error) {
	s.logger.Info("Registering new user", zap.String("username", cmd.Username))

	newUser, err := user.NewUser(cmd.Username, cmd.Password, s.bcryptCost)
	if err != nil {
		return nil, domainError(err)
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if stderrors.Is(err, user.ErrUserExists) {
			return nil, errors.NewUsernameAlreadyExistsError(cmd.Username)
		}
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered successfully",
		zap.Uint("user_id", newUser.ID()),
		zap.String("username", newUser.Username()),
	)

	return toDTO(newUser), nil
}

// Authenticate checks a username and password pair and records the login.
// Unknown users, inactive users and wrong passwords all produce the same error.
func (s *UserService) Authenticate(ctx context.Context, cmd inbound.LoginCommand) (*inbound.UserDTO, error) {
	u, err := s.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			s.logger.Info("Login for unknown user", zap.String("username", cmd.Username))
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, errors.NewDatabaseError("find user", err)
	}

	if !u.IsActive() {
		s.logger.Info("Login for inactive user", zap.String("username", cmd.Username))
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := u.CheckPassword(cmd.Password); err != nil {
		s.logger.Info("Invalid password", zap.String("username", cmd.Username))
		return nil, errors.NewInvalidCredentialsError()
	}

	u.RecordLogin()
	if err := s.userRepo.Update(ctx, u); err != nil {
		// a failed bookkeeping write must not block the login
		s.logger.Warn("Failed to record login", zap.Uint("user_id", u.ID()), zap.Error(err))
	}

	return toDTO(u), nil
}

// GetUser returns an account by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*inbound.UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewUserNotFoundError(id)
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	return toDTO(u), nil
}

func toDTO(u *user.User) *inbound.UserDTO {
	return &inbound.UserDTO{
		ID:          u.ID(),
		Username:    u.Username(),
		IsActive:    u.IsActive(),
		CreatedAt:   u.CreatedAt(),
		LastLoginAt: u.LastLoginAt(),
	}
}

func domainError(err error) error {
	switch {
	case stderrors.Is(err, user.ErrUsernameRequired), stderrors.Is(err, user.ErrUsernameTooLong):
		return errors.NewValidationErrors([]errors.ValidationError{{Field: "username", Message: err.Error()}})
	case stderrors.Is(err, user.ErrPasswordTooShort):
		return errors.NewValidationErrors([]errors.ValidationError{{Field: "password", Message: err.Error()}})
	default:
		return errors.Wrap(err, "create user")
	}
}
