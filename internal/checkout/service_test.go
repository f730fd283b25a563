package checkout_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tkay6677/lunchpay/internal/checkout"
	"github.com/Tkay6677/lunchpay/internal/money"
	"github.com/Tkay6677/lunchpay/internal/plan"
	"github.com/Tkay6677/lunchpay/internal/storage/inmem"
	"github.com/Tkay6677/lunchpay/internal/student"
	"github.com/Tkay6677/lunchpay/internal/transaction"
)

const guardianID = 1

type fixture struct {
	store        *inmem.Store
	students     student.Repository
	transactions transaction.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := inmem.New()
	students := inmem.NewStudentRepository(store)

	_, err := students.Create(context.Background(), &student.Student{
		ID:         "st-alex",
		GuardianID: guardianID,
		Name:       "Alex Johnson",
		StudentID:  "S12345",
		Balance:    money.FromDollars(45, 0),
		Status:     student.StatusActive,
	})
	require.NoError(t, err)

	_, err = students.Create(context.Background(), &student.Student{
		ID:         "st-idle",
		GuardianID: guardianID,
		Name:       "Idle Kid",
		StudentID:  "S99999",
		Status:     student.StatusInactive,
	})
	require.NoError(t, err)

	return &fixture{
		store:        store,
		students:     students,
		transactions: inmem.NewTransactionRepository(store),
	}
}

func newService(f *fixture, initiator checkout.Initiator, timeout time.Duration) checkout.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	txService := transaction.NewService(f.transactions, nil, logger)
	return checkout.NewService(f.students, txService, initiator, nil, timeout, logger)
}

type failingInitiator struct{ err error }

func (f *failingInitiator) Initiate(ctx context.Context, req checkout.InitiationRequest) (*checkout.Initiation, error) {
	return nil, f.err
}

type blockingInitiator struct{}

func (b *blockingInitiator) Initiate(ctx context.Context, req checkout.InitiationRequest) (*checkout.Initiation, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestQuickPay_Success(t *testing.T) {
	f := newFixture(t)
	svc := newService(f, checkout.NewHostedCheckout("https://pay.example/checkout"), time.Second)

	resp, err := svc.QuickPay(context.Background(), guardianID, checkout.QuickPayRequest{
		StudentID: "st-alex",
		PlanID:    "weekly",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.TransactionID)
	assert.Contains(t, resp.RedirectURL, "https://pay.example/checkout")
	assert.Contains(t, resp.RedirectURL, "student=st-alex")
	assert.Contains(t, resp.RedirectURL, "type=weekly")

	// The obligation is recorded as pending until the gateway confirms.
	recent, err := f.transactions.ListRecent(context.Background(), guardianID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, transaction.StatusPending, recent[0].Status)
	assert.Equal(t, plan.Weekly.Rate(), recent[0].Amount)
	assert.Equal(t, "Alex Johnson", recent[0].Student)
}

func TestQuickPay_MissingSelection(t *testing.T) {
	f := newFixture(t)
	svc := newService(f, checkout.NewHostedCheckout("https://pay.example/checkout"), time.Second)

	tests := []struct {
		name string
		req  checkout.QuickPayRequest
	}{
		{name: "no student", req: checkout.QuickPayRequest{PlanID: "weekly"}},
		{name: "no plan", req: checkout.QuickPayRequest{StudentID: "st-alex"}},
		{name: "neither", req: checkout.QuickPayRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.QuickPay(context.Background(), guardianID, tt.req)
			assert.ErrorIs(t, err, checkout.ErrMissingSelection)

			// No state mutation on validation failure.
			recent, repoErr := f.transactions.ListRecent(context.Background(), guardianID, 10)
			require.NoError(t, repoErr)
			assert.Empty(t, recent)
		})
	}
}

func TestQuickPay_UnknownPlan(t *testing.T) {
	f := newFixture(t)
	svc := newService(f, checkout.NewHostedCheckout("https://pay.example/checkout"), time.Second)

	_, err := svc.QuickPay(context.Background(), guardianID, checkout.QuickPayRequest{
		StudentID: "st-alex",
		PlanID:    "yearly",
	})
	assert.ErrorIs(t, err, plan.ErrUnknownType)
}

func TestQuickPay_StudentNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newService(f, checkout.NewHostedCheckout("https://pay.example/checkout"), time.Second)

	_, err := svc.QuickPay(context.Background(), guardianID, checkout.QuickPayRequest{
		StudentID: "st-ghost",
		PlanID:    "daily",
	})
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
}

func TestQuickPay_InactiveStudent(t *testing.T) {
	f := newFixture(t)
	svc := newService(f, checkout.NewHostedCheckout("https://pay.example/checkout"), time.Second)

	_, err := svc.QuickPay(context.Background(), guardianID, checkout.QuickPayRequest{
		StudentID: "st-idle",
		PlanID:    "daily",
	})
	assert.ErrorIs(t, err, checkout.ErrStudentInactive)
}

func TestQuickPay_GatewayFailureMarksTransactionFailed(t *testing.T) {
	f := newFixture(t)
	svc := newService(f, &failingInitiator{err: errors.New("gateway down")}, time.Second)

	_, err := svc.QuickPay(context.Background(), guardianID, checkout.QuickPayRequest{
		StudentID: "st-alex",
		PlanID:    "monthly",
	})
	assert.ErrorIs(t, err, checkout.ErrInitiationFailed)

	recent, repoErr := f.transactions.ListRecent(context.Background(), guardianID, 10)
	require.NoError(t, repoErr)
	require.Len(t, recent, 1)
	assert.Equal(t, transaction.StatusFailed, recent[0].Status)
}

func TestQuickPay_GatewayTimeoutIsDistinctFromFailure(t *testing.T) {
	f := newFixture(t)
	svc := newService(f, &blockingInitiator{}, 20*time.Millisecond)

	_, err := svc.QuickPay(context.Background(), guardianID, checkout.QuickPayRequest{
		StudentID: "st-alex",
		PlanID:    "daily",
	})
	assert.ErrorIs(t, err, checkout.ErrInitiationTimeout)
	assert.NotErrorIs(t, err, checkout.ErrInitiationFailed)
}
