package transaction

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) (*Transaction, error)
	ListRecent(ctx context.Context, guardianID int, limit int) ([]Transaction, error)
	ListCompletedInMonth(ctx context.Context, guardianID int, year int, month time.Month) ([]Transaction, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Transaction) (*Transaction, error) {
	_, err := r.db.NewInsert().Model(t).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repository) ListRecent(ctx context.Context, guardianID int, limit int) ([]Transaction, error) {
	var txs []Transaction
	err := r.db.NewSelect().
		Model(&txs).
		Join("JOIN students AS s ON s.id = t.student_id").
		Where("s.guardian_id = ?", guardianID).
		Order("t.date DESC").
		Limit(limit).
		Scan(ctx)
	return txs, err
}

func (r *repository) ListCompletedInMonth(ctx context.Context, guardianID int, year int, month time.Month) ([]Transaction, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var txs []Transaction
	err := r.db.NewSelect().
		Model(&txs).
		Join("JOIN students AS s ON s.id = t.student_id").
		Where("s.guardian_id = ?", guardianID).
		Where("t.status = ?", StatusCompleted).
		Where("t.date >= ?", from).
		Where("t.date < ?", to).
		Order("t.date ASC").
		Scan(ctx)
	return txs, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	result, err := r.db.NewUpdate().
		Model((*Transaction)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
