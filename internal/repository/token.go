package repository

import (
	"context"
	"fmt"
	"time"

	"artgallery-api/internal/repository/dao"
)

var ErrRefreshTokenInvalid = dao.ErrRefreshTokenInvalid

type TokenDAO interface {
	Insert(ctx context.Context, token dao.RefreshToken) (dao.RefreshToken, error)
	FindValid(ctx context.Context, tokenHash string) (dao.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint) error
}

type TokenRepository struct {
	dao TokenDAO
}

func NewTokenRepository(dao TokenDAO) *TokenRepository {
	return &TokenRepository{
		dao: dao,
	}
}

func (r *TokenRepository) Store(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error {
	_, err := r.dao.Insert(ctx, dao.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}

// Validate returns the owning user ID for a valid (unexpired, unrevoked)
// token hash.
func (r *TokenRepository) Validate(ctx context.Context, tokenHash string) (uint, error) {
	token, err := r.dao.FindValid(ctx, tokenHash)
	if err != nil {
		return 0, fmt.Errorf("r.dao.FindValid -> %w", err)
	}

	return token.UserID, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	if err := r.dao.Revoke(ctx, tokenHash); err != nil {
		return fmt.Errorf("r.dao.Revoke -> %w", err)
	}

	return nil
}

func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	if err := r.dao.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.RevokeAllForUser -> %w", err)
	}

	return nil
}
