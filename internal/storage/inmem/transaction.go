package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/Tkay6677/lunchpay/internal/transaction"
)

type transactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) transaction.Repository {
	return &transactionRepository{store: store}
}

func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *t
	r.store.transactions[t.ID] = &cp
	r.store.txOrder = append(r.store.txOrder, t.ID)
	return t, nil
}

// guardianOwns reports whether the transaction's student belongs to the
// guardian. Callers hold the store lock.
func (r *transactionRepository) guardianOwns(guardianID int, t *transaction.Transaction) bool {
	s, ok := r.store.students[t.StudentID]
	return ok && s.GuardianID == guardianID
}

func (r *transactionRepository) ListRecent(ctx context.Context, guardianID int, limit int) ([]transaction.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]transaction.Transaction, 0, limit)
	for _, id := range r.store.txOrder {
		t := r.store.transactions[id]
		if r.guardianOwns(guardianID, t) {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *transactionRepository) ListCompletedInMonth(ctx context.Context, guardianID int, year int, month time.Month) ([]transaction.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var out []transaction.Transaction
	for _, id := range r.store.txOrder {
		t := r.store.transactions[id]
		if !r.guardianOwns(guardianID, t) || t.Status != transaction.StatusCompleted {
			continue
		}
		if t.Date.Before(from) || !t.Date.Before(to) {
			continue
		}
		out = append(out, *t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, status transaction.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.transactions[id]
	if !ok {
		return transaction.ErrTransactionNotFound
	}
	t.Status = status
	return nil
}
