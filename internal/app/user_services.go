package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// userService implements the UserService interface for account management
// and password authentication.
type userService struct {
	userRepo    users.UserRepository
	detailsRepo users.UserDetailsRepository
	logger      logger.Logger
}

// NewUserService creates a new userService instance
func NewUserService(
	userRepo users.UserRepository,
	detailsRepo users.UserDetailsRepository,
	logger logger.Logger,
) (users.UserService, error) {
	return &userService{
		userRepo:    userRepo,
		detailsRepo: detailsRepo,
		logger:      logger,
	}, nil
}

// Register creates a new active account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, loginName, displayName, email, password string) (*users.User, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", common.ErrInvalidParameter)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		ID:             uuid.New().String(),
		LoginName:      loginName,
		DisplayName:    displayName,
		Email:          email,
		HashedPassword: string(hashed),
		IsActive:       true,
		DateJoined:     time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.Details(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to initialize user details: %w", err)
	}

	return user, nil
}

// EnsureAdmin creates the account with admin rights when it is missing and
// promotes it when it exists without them. The password only applies on
// creation; an existing account keeps its password.
func (s *userService) EnsureAdmin(ctx context.Context, loginName, password string) (*users.User, error) {
	user, err := s.userRepo.GetByLogin(ctx, loginName)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up admin account %s: %w", loginName, err)
		}

		user, err = s.Register(ctx, loginName, loginName, "", password)
		if err != nil {
			return nil, fmt.Errorf("failed to create admin account %s: %w", loginName, err)
		}
	}

	if !user.IsAdmin {
		user.IsAdmin = true
		if err := s.userRepo.UpdateByID(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to promote %s to admin: %w", loginName, err)
		}
		s.logger.Info("Ensured admin account ", loginName)
	}

	return user, nil
}

// Authenticate checks credentials. Unknown logins, inactive accounts and
// wrong passwords are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, loginName, password string) (*users.User, error) {
	user, err := s.userRepo.GetByLogin(ctx, loginName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", loginName, common.ErrAuthFailed)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("user %s: %w", loginName, common.ErrAuthFailed)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("user %s: %w", loginName, common.ErrAuthFailed)
	}

	return user, nil
}

func (s *userService) GetByLogin(ctx context.Context, loginName string) (*users.User, error) {
	user, err := s.userRepo.GetByLogin(ctx, loginName)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*users.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*users.User, error) {
	userList, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return userList, nil
}

// Details returns the user's details row, creating it with a fresh feed
// token on first access.
func (s *userService) Details(ctx context.Context, userID string) (*users.UserDetails, error) {
	details, err := s.detailsRepo.Get(ctx, userID)
	if err == nil {
		return details, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	token, err := newFeedToken()
	if err != nil {
		return nil, err
	}

	details = &users.UserDetails{
		UserID:    userID,
		FeedToken: token,
	}
	if err := s.detailsRepo.Save(ctx, details); err != nil {
		return nil, err
	}

	s.logger.Info("Initialized details for user ", userID)
	return details, nil
}

func newFeedToken() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate feed token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
