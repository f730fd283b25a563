package summary

import (
	"context"
	"time"

	"github.com/Tkay6677/lunchpay/internal/student"
	"github.com/Tkay6677/lunchpay/internal/transaction"
)

type Service interface {
	Summarize(ctx context.Context, guardianID int, now time.Time) (*Summary, error)
}

type service struct {
	students     student.Repository
	transactions transaction.Repository
}

func NewService(students student.Repository, transactions transaction.Repository) Service {
	return &service{
		students:     students,
		transactions: transactions,
	}
}

// Summarize aggregates the guardian's dashboard numbers for the calendar
// month containing now.
func (s *service) Summarize(ctx context.Context, guardianID int, now time.Time) (*Summary, error) {
	students, err := s.students.GetAllByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}

	current, err := s.transactions.ListCompletedInMonth(ctx, guardianID, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	// Anchor on the first of the month so date normalization (e.g. Mar 31
	// minus one month) cannot skip February.
	priorMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prior, err := s.transactions.ListCompletedInMonth(ctx, guardianID, priorMonth.Year(), priorMonth.Month())
	if err != nil {
		return nil, err
	}

	agg := Aggregate(students, current, prior)
	return &agg, nil
}
