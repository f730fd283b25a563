package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tkay6677/lunchpay/internal/account"
	"github.com/Tkay6677/lunchpay/internal/auth"
	"github.com/Tkay6677/lunchpay/internal/storage/inmem"
)

// failingAccounts wraps a real repository and fails reads with a given error,
// standing in for a database outage.
type failingAccounts struct {
	account.Repository
	readErr error
}

func (f *failingAccounts) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return nil, f.readErr
}

func TestRegister_AccountLookupFailure(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	store := inmem.New()
	readErr := errors.New("connection refused")
	accounts := &failingAccounts{Repository: inmem.NewAccountRepository(store), readErr: readErr}
	service := auth.NewService(inmem.NewTokenRepository(store), accounts)

	_, err := service.Register(context.Background(), auth.RegisterRequest{
		Name:     "Taylor Johnson",
		Email:    "taylor@example.com",
		Password: "password123",
		Role:     "parent",
	})

	// A transient lookup failure must not read as "email free".
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.NotErrorIs(t, err, auth.ErrEmailExists)

	existing, err := inmem.NewAccountRepository(store).GetByEmail(context.Background(), "taylor@example.com")
	assert.Nil(t, existing)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}
