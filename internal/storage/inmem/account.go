package inmem

import (
	"context"
	"time"

	"github.com/Tkay6677/lunchpay/internal/account"
)

type accountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) account.Repository {
	return &accountRepository{store: store}
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextAccountID++
	a.ID = r.store.nextAccountID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	cp := *a
	r.store.accounts[a.ID] = &cp
	return a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *accountRepository) GetByID(ctx context.Context, id int) (*account.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if a, ok := r.store.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, account.ErrAccountNotFound
}
