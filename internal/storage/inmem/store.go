// Package inmem is the in-process storage driver. It backs the same
// repository interfaces as the Postgres driver with maps guarded by a
// RWMutex, and is used by tests and by deployments running without a
// database (storage.driver: memory).
package inmem

import (
	"sync"

	"github.com/Tkay6677/lunchpay/internal/account"
	"github.com/Tkay6677/lunchpay/internal/auth"
	"github.com/Tkay6677/lunchpay/internal/plan"
	"github.com/Tkay6677/lunchpay/internal/student"
	"github.com/Tkay6677/lunchpay/internal/transaction"
)

type Store struct {
	mu sync.RWMutex

	nextAccountID int
	nextTokenID   int

	accounts     map[int]*account.Account
	tokens       map[string]*auth.RefreshToken
	students     map[string]*student.Student
	studentOrder []string
	transactions map[string]*transaction.Transaction
	txOrder      []string
	plans        map[string]*plan.Plan
	planOrder    []string
}

func New() *Store {
	return &Store{
		accounts:     make(map[int]*account.Account),
		tokens:       make(map[string]*auth.RefreshToken),
		students:     make(map[string]*student.Student),
		transactions: make(map[string]*transaction.Transaction),
		plans:        make(map[string]*plan.Plan),
	}
}
