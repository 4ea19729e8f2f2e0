package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRefreshTokenInvalid = errors.New("refresh token invalid")

// RefreshToken stores only the SHA-256 hash of the raw token handed to
// the client.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	TokenHash string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

type TokenDAO struct {
	db *gorm.DB
}

func NewTokenDAO(db *gorm.DB) *TokenDAO {
	return &TokenDAO{
		db: db,
	}
}

func (d *TokenDAO) Insert(ctx context.Context, token RefreshToken) (RefreshToken, error) {
	result := d.db.WithContext(ctx).Create(&token)
	if result.Error != nil {
		return RefreshToken{}, result.Error
	}

	return token, nil
}

// FindValid returns the token row for a hash if it is neither revoked
// nor expired.
func (d *TokenDAO) FindValid(ctx context.Context, tokenHash string) (RefreshToken, error) {
	var token RefreshToken

	result := d.db.WithContext(ctx).First(&token, "token_hash = ?", tokenHash)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RefreshToken{}, ErrRefreshTokenInvalid
		}

		return RefreshToken{}, result.Error
	}

	if token.RevokedAt != nil || time.Now().UTC().After(token.ExpiresAt) {
		return RefreshToken{}, ErrRefreshTokenInvalid
	}

	return token, nil
}

func (d *TokenDAO) Revoke(ctx context.Context, tokenHash string) error {
	now := time.Now().UTC()

	return d.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", &now).Error
}

func (d *TokenDAO) RevokeAllForUser(ctx context.Context, userID uint) error {
	now := time.Now().UTC()

	return d.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}
