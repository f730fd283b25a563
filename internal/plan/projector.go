package plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/Tkay6677/lunchpay/internal/money"
)

// Upcoming is a projected, not-yet-charged obligation. It mirrors the
// transaction shape so the client renders both lists the same way; the
// status is always "upcoming".
type Upcoming struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Amount    money.Cents `json:"amount"`
	Type      string      `json:"type"`
	StudentID string      `json:"studentId"`
	Student   string      `json:"student"`
	Status    string      `json:"status"`
}

// StatusUpcoming is the fixed status of every projected entry.
const StatusUpcoming = "upcoming"

// Project derives the upcoming charges for a set of plans between now and
// now+horizon. Each active plan contributes one entry per cadence period,
// starting at its last charge date advanced by one interval, stopping at the
// plan's end date when one is set. Inactive plans contribute nothing.
//
// The result is sorted by date ascending with a stable student-name
// tie-break, and the function is pure: identical inputs yield an identical
// sequence.
func Project(plans []Plan, studentNames map[string]string, now time.Time, horizon time.Duration) []Upcoming {
	limit := now.Add(horizon)
	out := make([]Upcoming, 0, len(plans))

	for _, p := range plans {
		// An unrecognized cadence never advances, so it must be skipped or
		// the projection loop would not terminate.
		if !p.Active || !p.Type.Valid() {
			continue
		}
		for due := p.Type.Next(p.LastCharged); !due.After(limit); due = p.Type.Next(due) {
			if p.EndsAt != nil && due.After(*p.EndsAt) {
				break
			}
			// Overdue charges still surface, pinned at their original due date.
			out = append(out, projected(p, studentNames, due))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Student < out[j].Student
	})
	return out
}

func projected(p Plan, studentNames map[string]string, due time.Time) Upcoming {
	return Upcoming{
		ID:        fmt.Sprintf("%s:%s", p.ID, due.Format("2006-01-02")),
		Date:      due,
		Amount:    p.Type.Rate(),
		Type:      p.Type.Label(),
		StudentID: p.StudentID,
		Student:   studentNames[p.StudentID],
		Status:    StatusUpcoming,
	}
}
