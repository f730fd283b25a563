package student

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/Tkay6677/lunchpay/internal/money"
)

// Status of a student's lunch account.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Student is a child linked to a guardian account. ID is the opaque internal
// key; StudentID is the school-issued identifier shown to parents.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID          string      `bun:"id,pk" json:"id"`
	GuardianID  int         `bun:"guardian_id,notnull" json:"-"`
	Name        string      `bun:"name,notnull" json:"name" validate:"required"`
	Grade       string      `bun:"grade" json:"grade"`
	School      string      `bun:"school" json:"school"`
	StudentID   string      `bun:"student_id,notnull" json:"studentId" validate:"required"`
	Balance     money.Cents `bun:"balance,notnull" json:"balance"`
	LastPayment time.Time   `bun:"last_payment" json:"lastPayment"`
	Status      Status      `bun:"status,notnull" json:"status"`
	Dietary     []string    `bun:"dietary,array" json:"dietary"`
	CreatedAt   time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"-"`
}
