package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/auth"
	"github.com/fzaki/crowdlib/internal/model"
	"github.com/fzaki/crowdlib/internal/repository"
)

// AuthService checks credentials against the registered accounts and issues
// access tokens.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, passwords *auth.PasswordService, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login verifies the username/password pair and returns a signed access token
// together with the account. Unknown usernames and wrong passwords produce
// the same unauthorized error, so the response does not reveal which half was
// wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, apperror.ValidationFailed("username", "username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, apperror.Unauthorized("invalid username or password")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Warn("failed login attempt", slog.String("username", username))
		return "", nil, apperror.Unauthorized("invalid username or password")
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", slog.String("username", username))
	return token, user, nil
}
