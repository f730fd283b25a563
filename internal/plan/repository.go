package plan

import (
	"context"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, p *Plan) (*Plan, error)
	GetAllByGuardian(ctx context.Context, guardianID int) ([]Plan, error)
	GetByStudent(ctx context.Context, studentID string) ([]Plan, error)
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Plan) (*Plan, error) {
	_, err := r.db.NewInsert().Model(p).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetAllByGuardian(ctx context.Context, guardianID int) ([]Plan, error) {
	var plans []Plan
	err := r.db.NewSelect().
		Model(&plans).
		Join("JOIN students AS s ON s.id = p.student_id").
		Where("s.guardian_id = ?", guardianID).
		Order("p.created_at ASC").
		Scan(ctx)
	return plans, err
}

func (r *repository) GetByStudent(ctx context.Context, studentID string) ([]Plan, error) {
	var plans []Plan
	err := r.db.NewSelect().
		Model(&plans).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Scan(ctx)
	return plans, err
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	_, err := r.db.NewUpdate().
		Model((*Plan)(nil)).
		Set("active = FALSE").
		Where("id = ?", id).
		Exec(ctx)
	return err
}
