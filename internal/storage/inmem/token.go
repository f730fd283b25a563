package inmem

import (
	"context"
	"time"

	"github.com/Tkay6677/lunchpay/internal/auth"
)

type tokenRepository struct {
	store *Store
}

func NewTokenRepository(store *Store) auth.TokenRepository {
	return &tokenRepository{store: store}
}

func (r *tokenRepository) CreateRefreshToken(ctx context.Context, accountID int, token string, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextTokenID++
	r.store.tokens[token] = &auth.RefreshToken{
		ID:        r.store.nextTokenID,
		AccountID: accountID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *tokenRepository) GetRefreshToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rt, ok := r.store.tokens[token]
	if !ok || rt.ExpiresAt.Before(time.Now()) {
		return nil, auth.ErrInvalidRefreshToken
	}
	cp := *rt
	return &cp, nil
}

func (r *tokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.tokens, token)
	return nil
}

func (r *tokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for token, rt := range r.store.tokens {
		if rt.ExpiresAt.Before(now) {
			delete(r.store.tokens, token)
		}
	}
	return nil
}

func (r *tokenRepository) DeleteAllAccountTokens(ctx context.Context, accountID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for token, rt := range r.store.tokens {
		if rt.AccountID == accountID {
			delete(r.store.tokens, token)
		}
	}
	return nil
}
