package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/Tkay6677/lunchpay/internal/money"
)

var ErrUnknownType = errors.New("unknown payment plan")

// Type is a recurring payment cadence. The set is closed: daily, weekly and
// monthly are the only plans the school offers.
type Type string

const (
	Daily   Type = "daily"
	Weekly  Type = "weekly"
	Monthly Type = "monthly"
)

// ParseType validates a plan identifier coming in from a request.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Valid reports whether t is one of the offered cadences.
func (t Type) Valid() bool {
	switch t {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Rate returns the fixed charge for one cadence period.
func (t Type) Rate() money.Cents {
	switch t {
	case Daily:
		return money.FromDollars(5, 0)
	case Weekly:
		return money.FromDollars(25, 0)
	case Monthly:
		return money.FromDollars(85, 0)
	}
	return 0
}

// Next advances a charge date by one cadence interval. Monthly plans follow
// the calendar month rather than a fixed number of days.
func (t Type) Next(from time.Time) time.Time {
	switch t {
	case Daily:
		return from.AddDate(0, 0, 1)
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Monthly:
		return from.AddDate(0, 1, 0)
	}
	return from
}

// Label renders the cadence for display ("Weekly").
func (t Type) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Plan is a student's recurring payment subscription.
type Plan struct {
	bun.BaseModel `bun:"table:plans,alias:p"`

	ID          string     `bun:"id,pk" json:"id"`
	StudentID   string     `bun:"student_id,notnull" json:"studentId"`
	Type        Type       `bun:"type,notnull" json:"type"`
	LastCharged time.Time  `bun:"last_charged,notnull" json:"lastCharged"`
	EndsAt      *time.Time `bun:"ends_at" json:"endsAt,omitempty"`
	Active      bool       `bun:"active,notnull" json:"active"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
