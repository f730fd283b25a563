package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, accountID int, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteExpiredTokens(ctx context.Context) error
	DeleteAllAccountTokens(ctx context.Context, accountID int) error
}

type tokenRepository struct {
	db *bun.DB
}

func NewTokenRepository(db *bun.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// CreateRefreshToken stores a new refresh token
func (r *tokenRepository) CreateRefreshToken(ctx context.Context, accountID int, token string, expiresAt time.Time) error {
	refreshToken := &RefreshToken{
		AccountID: accountID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	_, err := r.db.NewInsert().Model(refreshToken).Exec(ctx)
	return err
}

// GetRefreshToken retrieves a still-valid refresh token by token string
func (r *tokenRepository) GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	refreshToken := &RefreshToken{}
	err := r.db.NewSelect().
		Model(refreshToken).
		Where("token = ?", token).
		Where("expires_at > ?", time.Now()).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return refreshToken, nil
}

// DeleteRefreshToken removes a refresh token (for logout)
func (r *tokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.NewDelete().
		Model((*RefreshToken)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	return err
}

// DeleteExpiredTokens removes all expired refresh tokens (cleanup)
func (r *tokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*RefreshToken)(nil)).
		Where("expires_at < ?", time.Now()).
		Exec(ctx)
	return err
}

// DeleteAllAccountTokens removes all refresh tokens for an account
func (r *tokenRepository) DeleteAllAccountTokens(ctx context.Context, accountID int) error {
	_, err := r.db.NewDelete().
		Model((*RefreshToken)(nil)).
		Where("account_id = ?", accountID).
		Exec(ctx)
	return err
}
