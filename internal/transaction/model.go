package transaction

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/Tkay6677/lunchpay/internal/money"
	"github.com/Tkay6677/lunchpay/internal/plan"
)

// Status of a payment transaction.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Transaction is one charge against a student's lunch account. Student holds
// the display name alongside the StudentID foreign key so transaction lists
// render without a join.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID        string      `bun:"id,pk" json:"id"`
	StudentID string      `bun:"student_id,notnull" json:"studentId"`
	Student   string      `bun:"student_name,notnull" json:"student"`
	Date      time.Time   `bun:"date,notnull" json:"date"`
	Amount    money.Cents `bun:"amount,notnull" json:"amount"`
	Type      plan.Type   `bun:"type,notnull" json:"type"`
	Status    Status      `bun:"status,notnull" json:"status"`
	CreatedAt time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"-"`
}
