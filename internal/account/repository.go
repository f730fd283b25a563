package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

var ErrAccountNotFound = errors.New("account not found")

type Repository interface {
	Create(ctx context.Context, a *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int) (*Account, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Account) (*Account, error) {
	_, err := r.db.NewInsert().Model(a).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	a := new(Account)
	err := r.db.NewSelect().Model(a).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Account, error) {
	a := new(Account)
	err := r.db.NewSelect().Model(a).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}
