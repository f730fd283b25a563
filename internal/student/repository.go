package student

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/Tkay6677/lunchpay/internal/money"
)

type Repository interface {
	Create(ctx context.Context, s *Student) (*Student, error)
	GetAllByGuardian(ctx context.Context, guardianID int) ([]Student, error)
	GetByID(ctx context.Context, guardianID int, id string) (*Student, error)
	Update(ctx context.Context, s *Student) error
	SetBalance(ctx context.Context, id string, balance money.Cents) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Student) (*Student, error) {
	_, err := r.db.NewInsert().Model(s).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repository) GetAllByGuardian(ctx context.Context, guardianID int) ([]Student, error) {
	var students []Student
	err := r.db.NewSelect().
		Model(&students).
		Where("guardian_id = ?", guardianID).
		Order("created_at ASC").
		Scan(ctx)
	return students, err
}

func (r *repository) GetByID(ctx context.Context, guardianID int, id string) (*Student, error) {
	s := new(Student)
	err := r.db.NewSelect().
		Model(s).
		Where("id = ?", id).
		Where("guardian_id = ?", guardianID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, s *Student) error {
	result, err := r.db.NewUpdate().Model(s).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *repository) SetBalance(ctx context.Context, id string, balance money.Cents) error {
	result, err := r.db.NewUpdate().
		Model((*Student)(nil)).
		Set("balance = ?", balance).
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
		return ErrStudentNotFound
	}
	return nil
}
