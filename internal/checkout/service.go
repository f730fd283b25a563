package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tkay6677/lunchpay/internal/plan"
	"github.com/Tkay6677/lunchpay/internal/student"
	"github.com/Tkay6677/lunchpay/internal/transaction"
)

var (
	ErrMissingSelection  = errors.New("missing selection: student and payment type are both required")
	ErrStudentInactive   = errors.New("student account is inactive")
	ErrInitiationTimeout = errors.New("payment initiation timed out")
	ErrInitiationFailed  = errors.New("payment initiation failed")
)

// DefaultInitiationTimeout bounds the wait on the payment gateway. A slow
// gateway surfaces as a timeout, distinct from an outright failure.
const DefaultInitiationTimeout = 10 * time.Second

// QuickPayRequest selects a student and one of the fixed payment plans.
type QuickPayRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	PlanID    string `json:"planId" validate:"required"`
}

// QuickPayResponse carries the pending transaction and the hosted checkout
// redirect the client navigates to.
type QuickPayResponse struct {
	TransactionID string `json:"transactionId"`
	RedirectURL   string `json:"redirectUrl"`
}

// Notifier mirrors the NATS producer surface; payment events are
// best-effort.
type Notifier interface {
	SendMessage(value interface{}) error
}

// PaymentEvent is published when a checkout is handed off to the gateway.
type PaymentEvent struct {
	TransactionID string `json:"transactionId"`
	StudentID     string `json:"studentId"`
	Plan          string `json:"plan"`
	Amount        string `json:"amount"`
	InitiatedAt   string `json:"initiatedAt"`
}

type Service interface {
	QuickPay(ctx context.Context, guardianID int, req QuickPayRequest) (*QuickPayResponse, error)
}

type service struct {
	students     student.Repository
	transactions transaction.Service
	initiator    Initiator
	notifier     Notifier
	timeout      time.Duration
	logger       *slog.Logger
}

func NewService(
	students student.Repository,
	transactions transaction.Service,
	initiator Initiator,
	notifier Notifier,
	timeout time.Duration,
	logger *slog.Logger,
) Service {
	if timeout <= 0 {
		timeout = DefaultInitiationTimeout
	}
	return &service{
		students:     students,
		transactions: transactions,
		initiator:    initiator,
		notifier:     notifier,
		timeout:      timeout,
		logger:       logger,
	}
}

// QuickPay validates the selection, records a pending transaction and hands
// off to the payment gateway. On gateway failure the transaction is marked
// failed and nothing else changes; the caller may retry explicitly.
func (s *service) QuickPay(ctx context.Context, guardianID int, req QuickPayRequest) (*QuickPayResponse, error) {
	if req.StudentID == "" || req.PlanID == "" {
		return nil, ErrMissingSelection
	}

	planType, err := plan.ParseType(req.PlanID)
	if err != nil {
		return nil, err
	}

	stu, err := s.students.GetByID(ctx, guardianID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if stu.Status != student.StatusActive {
		return nil, ErrStudentInactive
	}

	now := time.Now().UTC()
	tx := &transaction.Transaction{
		ID:        uuid.NewString(),
		StudentID: stu.ID,
		Student:   stu.Name,
		Date:      now,
		Amount:    planType.Rate(),
		Type:      planType,
		Status:    transaction.StatusPending,
		CreatedAt: now,
	}
	if _, err := s.transactions.Record(ctx, tx); err != nil {
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	initiation, err := s.initiator.Initiate(initCtx, InitiationRequest{
		TransactionID: tx.ID,
		StudentID:     stu.ID,
		Plan:          planType,
		Amount:        tx.Amount,
	})
	if err != nil {
		if markErr := s.transactions.MarkFailed(ctx, tx.ID); markErr != nil {
			s.logger.Error("failed to mark transaction failed", "transactionId", tx.ID, "error", markErr)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrInitiationTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrInitiationFailed, err)
	}

	s.notify(tx, planType)

	return &QuickPayResponse{
		TransactionID: tx.ID,
		RedirectURL:   initiation.RedirectURL,
	}, nil
}

func (s *service) notify(tx *transaction.Transaction, planType plan.Type) {
	if s.notifier == nil {
		return
	}
	event := PaymentEvent{
		TransactionID: tx.ID,
		StudentID:     tx.StudentID,
		Plan:          string(planType),
		Amount:        tx.Amount.String(),
		InitiatedAt:   tx.Date.Format(time.RFC3339),
	}
	if err := s.notifier.SendMessage(event); err != nil {
		s.logger.Warn("failed to publish payment event", "transactionId", tx.ID, "error", err)
	}
}
