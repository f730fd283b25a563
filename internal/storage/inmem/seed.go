package inmem

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tkay6677/lunchpay/internal/account"
	"github.com/Tkay6677/lunchpay/internal/money"
	"github.com/Tkay6677/lunchpay/internal/plan"
	"github.com/Tkay6677/lunchpay/internal/student"
	"github.com/Tkay6677/lunchpay/internal/transaction"
)

// Seed loads the demo guardian with two students, their recent transactions
// and active plans. Used when running with the memory storage driver so the
// app is browsable without a database.
func Seed(ctx context.Context, s *Store) error {
	accounts := NewAccountRepository(s)
	students := NewStudentRepository(s)
	transactions := NewTransactionRepository(s)
	plans := NewPlanRepository(s)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	guardian, err := accounts.Create(ctx, &account.Account{
		Name:     "Taylor Johnson",
		Email:    "parent@example.com",
		Password: string(hashed),
		Role:     account.RoleParent,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	lastMonth := now.AddDate(0, -1, 0)

	demoStudents := []student.Student{
		{
			ID:          "st-alex",
			GuardianID:  guardian.ID,
			Name:        "Alex Johnson",
			Grade:       "5",
			School:      "Lincoln Elementary",
			StudentID:   "S12345",
			Balance:     money.FromDollars(45, 0),
			LastPayment: now.AddDate(0, 0, -12),
			Status:      student.StatusActive,
			Dietary:     []string{"Peanut Allergy", "Vegetarian"},
			CreatedAt:   now.AddDate(0, -2, 0),
		},
		{
			ID:          "st-sarah",
			GuardianID:  guardian.ID,
			Name:        "Sarah Johnson",
			Grade:       "3",
			School:      "Lincoln Elementary",
			StudentID:   "S12346",
			Balance:     money.FromDollars(15, 50),
			LastPayment: now.AddDate(0, 0, -8),
			Status:      student.StatusActive,
			Dietary:     []string{},
			CreatedAt:   now.AddDate(0, -2, 0),
		},
	}
	for i := range demoStudents {
		if _, err := students.Create(ctx, &demoStudents[i]); err != nil {
			return err
		}
	}

	demoTxs := []transaction.Transaction{
		{
			ID:        "tx-1",
			StudentID: "st-alex",
			Student:   "Alex Johnson",
			Date:      now.AddDate(0, 0, -12),
			Amount:    plan.Monthly.Rate(),
			Type:      plan.Monthly,
			Status:    transaction.StatusCompleted,
		},
		{
			ID:        "tx-2",
			StudentID: "st-sarah",
			Student:   "Sarah Johnson",
			Date:      now.AddDate(0, 0, -8),
			Amount:    plan.Weekly.Rate(),
			Type:      plan.Weekly,
			Status:    transaction.StatusCompleted,
		},
		{
			ID:        "tx-3",
			StudentID: "st-alex",
			Student:   "Alex Johnson",
			Date:      lastMonth,
			Amount:    plan.Monthly.Rate(),
			Type:      plan.Monthly,
			Status:    transaction.StatusCompleted,
		},
	}
	for i := range demoTxs {
		if _, err := transactions.Create(ctx, &demoTxs[i]); err != nil {
			return err
		}
	}

	demoPlans := []plan.Plan{
		{
			ID:          "pl-alex-monthly",
			StudentID:   "st-alex",
			Type:        plan.Monthly,
			LastCharged: now.AddDate(0, 0, -12),
			Active:      true,
			CreatedAt:   now.AddDate(0, -2, 0),
		},
		{
			ID:          "pl-sarah-weekly",
			StudentID:   "st-sarah",
			Type:        plan.Weekly,
			LastCharged: now.AddDate(0, 0, -8),
			Active:      true,
			CreatedAt:   now.AddDate(0, -2, 0),
		},
	}
	for i := range demoPlans {
		if _, err := plans.Create(ctx, &demoPlans[i]); err != nil {
			return err
		}
	}

	return nil
}
