package app

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/config"
	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// tokenService implements the TokenService interface with HMAC-signed JWTs.
type tokenService struct {
	secret   []byte
	lifetime time.Duration
	logger   logger.Logger
}

// NewTokenService creates a new tokenService instance
func NewTokenService(settings *config.AuthSettings, logger logger.Logger) (users.TokenService, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth settings: %w", err)
	}

	return &tokenService{
		secret:   []byte(settings.TokenSecret),
		lifetime: time.Duration(settings.TokenLifetime) * time.Minute,
		logger:   logger,
	}, nil
}

// Issue returns a signed token for the user and its Unix expiry time.
func (s *tokenService) Issue(user *users.User) (string, int64, error) {
	now := time.Now().UTC()
	expiry := now.Add(s.lifetime)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"login": user.LoginName,
		"iat":   now.Unix(),
		"exp":   expiry.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiry.Unix(), nil
}

// Verify checks signature and expiry and returns the user ID.
func (s *tokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("token rejected: %w", common.ErrAuthFailed)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("token claims unreadable: %w", common.ErrAuthFailed)
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("token without subject: %w", common.ErrAuthFailed)
	}

	return userID, nil
}
