package inmem

import (
	"context"

	"github.com/Tkay6677/lunchpay/internal/plan"
)

type planRepository struct {
	store *Store
}

func NewPlanRepository(store *Store) plan.Repository {
	return &planRepository{store: store}
}

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) (*plan.Plan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *p
	r.store.plans[p.ID] = &cp
	r.store.planOrder = append(r.store.planOrder, p.ID)
	return p, nil
}

func (r *planRepository) GetAllByGuardian(ctx context.Context, guardianID int) ([]plan.Plan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []plan.Plan
	for _, id := range r.store.planOrder {
		p := r.store.plans[id]
		if s, ok := r.store.students[p.StudentID]; ok && s.GuardianID == guardianID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *planRepository) GetByStudent(ctx context.Context, studentID string) ([]plan.Plan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []plan.Plan
	for _, id := range r.store.planOrder {
		if p := r.store.plans[id]; p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *planRepository) Deactivate(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.plans[id]
	if !ok {
		return plan.ErrPlanNotFound
	}
	p.Active = false
	return nil
}
