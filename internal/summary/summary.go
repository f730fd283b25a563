package summary

import (
	"math"

	"github.com/Tkay6677/lunchpay/internal/money"
	"github.com/Tkay6677/lunchpay/internal/student"
	"github.com/Tkay6677/lunchpay/internal/transaction"
)

// Summary is the dashboard headline: total funds across the roster, spend so
// far this month and how that compares to the month before. HasPriorData is
// false when there was no prior-month spend to compare against; the client
// shows "no prior data" instead of a percentage then.
type Summary struct {
	TotalBalance  money.Cents `json:"totalBalance"`
	TotalSpent    money.Cents `json:"totalSpent"`
	PercentChange float64     `json:"percentChange"`
	HasPriorData  bool        `json:"hasPriorData"`
}

// TotalBalance sums the balances of all students. An empty roster yields 0.
func TotalBalance(students []student.Student) money.Cents {
	var total money.Cents
	for _, s := range students {
		total += s.Balance
	}
	return total
}

// SpendTotal sums the amounts of the given transactions. Callers pass the
// completed transactions of one calendar month.
func SpendTotal(txs []transaction.Transaction) money.Cents {
	var total money.Cents
	for _, t := range txs {
		total += t.Amount
	}
	return total
}

// PercentChange compares current spend against the prior period, as a signed
// percentage rounded to one decimal. A zero prior baseline reports 0 with
// ok=false rather than dividing by zero.
func PercentChange(current, prior money.Cents) (pct float64, ok bool) {
	if prior == 0 {
		return 0, false
	}
	raw := (float64(current) - float64(prior)) / float64(prior) * 100
	return math.Round(raw*10) / 10, true
}

// Aggregate derives the full summary from the roster and the two months of
// completed transactions. Pure function of its inputs.
func Aggregate(students []student.Student, currentMonth, priorMonth []transaction.Transaction) Summary {
	spent := SpendTotal(currentMonth)
	pct, ok := PercentChange(spent, SpendTotal(priorMonth))
	return Summary{
		TotalBalance:  TotalBalance(students),
		TotalSpent:    spent,
		PercentChange: pct,
		HasPriorData:  ok,
	}
}
