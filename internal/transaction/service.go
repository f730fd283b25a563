package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("transaction amount must be positive")
)

const defaultRecentLimit = 20

// LedgerPublisher mirrors the Kafka producer surface. Ledger events are
// best-effort: a broker outage never fails the payment path.
type LedgerPublisher interface {
	SendMessage(key string, value interface{}) error
}

// LedgerEvent is the record published for every recorded transaction.
type LedgerEvent struct {
	TransactionID string `json:"transactionId"`
	StudentID     string `json:"studentId"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurredAt"`
}

type Service interface {
	Record(ctx context.Context, t *Transaction) (*Transaction, error)
	ListRecent(ctx context.Context, guardianID int, limit int) ([]Transaction, error)
	ListCompletedInMonth(ctx context.Context, guardianID int, year int, month time.Month) ([]Transaction, error)
	MarkCompleted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	ledger LedgerPublisher
	logger *slog.Logger
}

func NewService(repo Repository, ledger LedgerPublisher, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		ledger: ledger,
		logger: logger,
	}
}

func (s *service) Record(ctx context.Context, t *Transaction) (*Transaction, error) {
	if t.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.publish(created)
	return created, nil
}

func (s *service) ListRecent(ctx context.Context, guardianID int, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.ListRecent(ctx, guardianID, limit)
}

func (s *service) ListCompletedInMonth(ctx context.Context, guardianID int, year int, month time.Month) ([]Transaction, error) {
	return s.repo.ListCompletedInMonth(ctx, guardianID, year, month)
}

func (s *service) MarkCompleted(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusCompleted)
}

func (s *service) MarkFailed(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusFailed)
}

func (s *service) publish(t *Transaction) {
	if s.ledger == nil {
		return
	}
	event := LedgerEvent{
		TransactionID: t.ID,
		StudentID:     t.StudentID,
		Amount:        t.Amount.String(),
		Type:          string(t.Type),
		Status:        string(t.Status),
		OccurredAt:    t.Date.Format(time.RFC3339),
	}
	if err := s.ledger.SendMessage(t.ID, event); err != nil {
		s.logger.Warn("failed to publish ledger event", "transactionId", t.ID, "error", err)
	}
}
