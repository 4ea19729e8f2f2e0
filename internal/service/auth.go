package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository"
)

var (
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrUsernameExists      = repository.ErrUsernameExists
	ErrWrongPassword       = errors.New("wrong password")
	ErrRefreshTokenInvalid = repository.ErrRefreshTokenInvalid
)

const refreshTokenTTL = 7 * 24 * time.Hour

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type TokenRepository interface {
	Store(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (uint, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint) error
}

type AuthService struct {
	repo   AuthUserRepository
	tokens TokenRepository
}

func NewAuthService(repo AuthUserRepository, tokens TokenRepository) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

// Signup creates a visitor account. The role is fixed here, not taken
// from the request; staff accounts are provisioned out of band.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)
	user.Role = domain.RoleVisitor

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// IssueRefreshToken stores the hash of a fresh random token and returns
// the raw value for the client.
func (s *AuthService) IssueRefreshToken(ctx context.Context, userID uint) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	raw := hex.EncodeToString(buf)

	expiresAt := time.Now().UTC().Add(refreshTokenTTL)
	if err := s.tokens.Store(ctx, userID, hashToken(raw), expiresAt); err != nil {
		return "", fmt.Errorf("s.tokens.Store -> %w", err)
	}

	return raw, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new one issued alongside the user it belongs to.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (domain.User, string, error) {
	tokenHash := hashToken(rawToken)

	userID, err := s.tokens.Validate(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenInvalid) {
			return domain.User{}, "", ErrRefreshTokenInvalid
		}

		return domain.User{}, "", fmt.Errorf("s.tokens.Validate -> %w", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.tokens.Revoke(ctx, tokenHash); err != nil {
		return domain.User{}, "", fmt.Errorf("s.tokens.Revoke -> %w", err)
	}

	newToken, err := s.IssueRefreshToken(ctx, userID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.IssueRefreshToken -> %w", err)
	}

	return user, newToken, nil
}

// Logout revokes the presented refresh token. A token that is already
// invalid is not an error; logout is best effort.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	if err := s.tokens.Revoke(ctx, hashToken(rawToken)); err != nil {
		return fmt.Errorf("s.tokens.Revoke -> %w", err)
	}

	return nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
