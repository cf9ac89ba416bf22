package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/auth"
	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

// AuthService handles admin login and the startup bootstrap of the default
// admin account.
type AuthService struct {
	users   *repository.UserRepository
	tokens  *auth.Manager
	timeout time.Duration
}

func NewAuthService(gdb *gorm.DB, tokens *auth.Manager, timeout time.Duration) *AuthService {
	return &AuthService{users: repository.NewUserRepository(gdb), tokens: tokens, timeout: timeout}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login verifies the credentials and issues a bearer token. Wrong username
// and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.IssueToken(user.Username)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// CurrentUser resolves the account behind a verified token subject.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the default admin account when it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, &models.User{Username: username, PasswordHash: hash, IsActive: true}); err != nil {
		return err
	}
	log.Printf("created default admin account %q", username)
	return nil
}
