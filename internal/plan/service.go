package plan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Tkay6677/lunchpay/internal/student"
)

// DefaultHorizon bounds how far ahead the schedule is projected.
const DefaultHorizon = 30 * 24 * time.Hour

type Service interface {
	UpcomingPayments(ctx context.Context, guardianID int, now time.Time) ([]Upcoming, error)
	Subscribe(ctx context.Context, guardianID int, studentID string, t Type, now time.Time) (*Plan, error)
	Cancel(ctx context.Context, guardianID int, planID string) error
}

type service struct {
	plans    Repository
	students student.Repository
	horizon  time.Duration
}

func NewService(plans Repository, students student.Repository) Service {
	return &service{
		plans:    plans,
		students: students,
		horizon:  DefaultHorizon,
	}
}

// UpcomingPayments projects the guardian's not-yet-charged obligations from
// each active plan's cadence and last charge date.
func (s *service) UpcomingPayments(ctx context.Context, guardianID int, now time.Time) ([]Upcoming, error) {
	plans, err := s.plans.GetAllByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}

	students, err := s.students.GetAllByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(students))
	for _, stu := range students {
		names[stu.ID] = stu.Name
	}

	return Project(plans, names, now, s.horizon), nil
}

// Subscribe starts a recurring plan for one of the guardian's students. The
// first charge comes due one cadence interval from now.
func (s *service) Subscribe(ctx context.Context, guardianID int, studentID string, t Type, now time.Time) (*Plan, error) {
	stu, err := s.students.GetByID(ctx, guardianID, studentID)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		ID:          uuid.NewString(),
		StudentID:   stu.ID,
		Type:        t,
		LastCharged: now,
		Active:      true,
		CreatedAt:   now,
	}
	return s.plans.Create(ctx, p)
}

// Cancel deactivates a plan; future projections stop immediately.
func (s *service) Cancel(ctx context.Context, guardianID int, planID string) error {
	plans, err := s.plans.GetAllByGuardian(ctx, guardianID)
	if err != nil {
		return err
	}
	for _, p := range plans {
		if p.ID == planID {
			return s.plans.Deactivate(ctx, planID)
		}
	}
	return ErrPlanNotFound
}
