package student

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNegativeBalance = errors.New("balance must not be negative")
)

type Service interface {
	ListStudents(ctx context.Context, guardianID int, query string) ([]Student, error)
	GetStudent(ctx context.Context, guardianID int, id string) (*Student, error)
	LinkStudent(ctx context.Context, guardianID int, s *Student) (*Student, error)
	UpdateStudent(ctx context.Context, guardianID int, s *Student) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListStudents returns the guardian's students, narrowed by the search query
// when one is given.
func (s *service) ListStudents(ctx context.Context, guardianID int, query string) ([]Student, error) {
	students, err := s.repo.GetAllByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}
	return Filter(students, query), nil
}

func (s *service) GetStudent(ctx context.Context, guardianID int, id string) (*Student, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, guardianID, id)
}

func (s *service) LinkStudent(ctx context.Context, guardianID int, stu *Student) (*Student, error) {
	if stu.Balance < 0 {
		return nil, ErrNegativeBalance
	}
	stu.ID = uuid.NewString()
	stu.GuardianID = guardianID
	if stu.Status == "" {
		stu.Status = StatusActive
	}
	if stu.Dietary == nil {
		stu.Dietary = []string{}
	}
	if stu.CreatedAt.IsZero() {
		stu.CreatedAt = time.Now()
	}
	return s.repo.Create(ctx, stu)
}

func (s *service) UpdateStudent(ctx context.Context, guardianID int, stu *Student) error {
	if stu.ID == "" {
		return ErrInvalidInput
	}
	// Re-read under the guardian scope so one parent cannot update another
	// parent's student.
	existing, err := s.repo.GetByID(ctx, guardianID, stu.ID)
	if err != nil {
		return err
	}
	stu.GuardianID = existing.GuardianID
	stu.CreatedAt = existing.CreatedAt
	// Profile updates never move money; balance changes go through SetBalance.
	stu.Balance = existing.Balance
	stu.LastPayment = existing.LastPayment
	if stu.Dietary == nil {
		stu.Dietary = existing.Dietary
	}
	return s.repo.Update(ctx, stu)
}
