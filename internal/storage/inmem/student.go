package inmem

import (
	"context"

	"github.com/Tkay6677/lunchpay/internal/money"
	"github.com/Tkay6677/lunchpay/internal/student"
)

type studentRepository struct {
	store *Store
}

func NewStudentRepository(store *Store) student.Repository {
	return &studentRepository{store: store}
}

func (r *studentRepository) Create(ctx context.Context, s *student.Student) (*student.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *s
	r.store.students[s.ID] = &cp
	r.store.studentOrder = append(r.store.studentOrder, s.ID)
	return s, nil
}

func (r *studentRepository) GetAllByGuardian(ctx context.Context, guardianID int) ([]student.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]student.Student, 0, len(r.store.studentOrder))
	for _, id := range r.store.studentOrder {
		if s, ok := r.store.students[id]; ok && s.GuardianID == guardianID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *studentRepository) GetByID(ctx context.Context, guardianID int, id string) (*student.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if s, ok := r.store.students[id]; ok && s.GuardianID == guardianID {
		cp := *s
		return &cp, nil
	}
	return nil, student.ErrStudentNotFound
}

func (r *studentRepository) Update(ctx context.Context, s *student.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.students[s.ID]; !ok {
		return student.ErrStudentNotFound
	}
	cp := *s
	r.store.students[s.ID] = &cp
	return nil
}

func (r *studentRepository) SetBalance(ctx context.Context, id string, balance money.Cents) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.students[id]
	if !ok {
		return student.ErrStudentNotFound
	}
	s.Balance = balance
	return nil
}
