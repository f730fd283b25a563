package plan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tkay6677/lunchpay/internal/money"
	"github.com/Tkay6677/lunchpay/internal/plan"
)

var names = map[string]string{
	"st-alex":  "Alex Johnson",
	"st-sarah": "Sarah Johnson",
}

func TestProject_WeeklyCadence(t *testing.T) {
	now := time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC)
	plans := []plan.Plan{
		{
			ID:          "pl-1",
			StudentID:   "st-sarah",
			Type:        plan.Weekly,
			LastCharged: time.Date(2023, 9, 5, 0, 0, 0, 0, time.UTC),
			Active:      true,
		},
	}

	got := plan.Project(plans, names, now, 21*24*time.Hour)

	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2023, 9, 12, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, time.Date(2023, 9, 19, 0, 0, 0, 0, time.UTC), got[1].Date)
	assert.Equal(t, time.Date(2023, 9, 26, 0, 0, 0, 0, time.UTC), got[2].Date)
	for _, u := range got {
		assert.Equal(t, money.FromDollars(25, 0), u.Amount)
		assert.Equal(t, "Weekly", u.Type)
		assert.Equal(t, "Sarah Johnson", u.Student)
		assert.Equal(t, plan.StatusUpcoming, u.Status)
	}
}

func TestProject_MonthlyFollowsCalendar(t *testing.T) {
	now := time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC)
	plans := []plan.Plan{
		{
			ID:          "pl-1",
			StudentID:   "st-alex",
			Type:        plan.Monthly,
			LastCharged: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			Active:      true,
		},
	}

	got := plan.Project(plans, names, now, 30*24*time.Hour)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, money.FromDollars(85, 0), got[0].Amount)
}

func TestProject_InactivePlanContributesNothing(t *testing.T) {
	now := time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC)
	plans := []plan.Plan{
		{
			ID:          "pl-1",
			StudentID:   "st-alex",
			Type:        plan.Daily,
			LastCharged: now.AddDate(0, 0, -1),
			Active:      false,
		},
	}

	assert.Empty(t, plan.Project(plans, names, now, 30*24*time.Hour))
}

func TestProject_StopsAtEndDate(t *testing.T) {
	now := time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC)
	endsAt := time.Date(2023, 9, 13, 0, 0, 0, 0, time.UTC)
	plans := []plan.Plan{
		{
			ID:          "pl-1",
			StudentID:   "st-alex",
			Type:        plan.Daily,
			LastCharged: now,
			EndsAt:      &endsAt,
			Active:      true,
		},
	}

	got := plan.Project(plans, names, now, 30*24*time.Hour)

	require.Len(t, got, 3)
	assert.Equal(t, endsAt, got[2].Date)
}

func TestProject_SortedByDateAscending(t *testing.T) {
	now := time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC)
	plans := []plan.Plan{
		{
			ID:          "pl-monthly",
			StudentID:   "st-alex",
			Type:        plan.Monthly,
			LastCharged: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			Active:      true,
		},
		{
			ID:          "pl-weekly",
			StudentID:   "st-sarah",
			Type:        plan.Weekly,
			LastCharged: time.Date(2023, 9, 8, 0, 0, 0, 0, time.UTC),
			Active:      true,
		},
	}

	got := plan.Project(plans, names, now, 30*24*time.Hour)

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date),
			"entries must be sorted by date ascending")
	}
}

func TestProject_Idempotent(t *testing.T) {
	now := time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC)
	plans := []plan.Plan{
		{
			ID:          "pl-1",
			StudentID:   "st-sarah",
			Type:        plan.Weekly,
			LastCharged: time.Date(2023, 9, 5, 0, 0, 0, 0, time.UTC),
			Active:      true,
		},
		{
			ID:          "pl-2",
			StudentID:   "st-alex",
			Type:        plan.Daily,
			LastCharged: time.Date(2023, 9, 9, 0, 0, 0, 0, time.UTC),
			Active:      true,
		},
	}

	first := plan.Project(plans, names, now, 14*24*time.Hour)
	second := plan.Project(plans, names, now, 14*24*time.Hour)

	assert.Equal(t, first, second)
}

func TestProject_UnknownCadenceContributesNothing(t *testing.T) {
	now := time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC)
	plans := []plan.Plan{
		{
			ID:          "pl-corrupt",
			StudentID:   "st-alex",
			Type:        plan.Type("yearly"),
			LastCharged: now.AddDate(0, 0, -1),
			Active:      true,
		},
		{
			ID:          "pl-zero",
			StudentID:   "st-alex",
			LastCharged: now.AddDate(0, 0, -1),
			Active:      true,
		},
		{
			ID:          "pl-ok",
			StudentID:   "st-sarah",
			Type:        plan.Weekly,
			LastCharged: now,
			Active:      true,
		},
	}

	got := plan.Project(plans, names, now, 14*24*time.Hour)

	require.Len(t, got, 2)
	for _, u := range got {
		assert.Equal(t, "st-sarah", u.StudentID)
	}
}

func TestType_Valid(t *testing.T) {
	assert.True(t, plan.Daily.Valid())
	assert.True(t, plan.Weekly.Valid())
	assert.True(t, plan.Monthly.Valid())
	assert.False(t, plan.Type("yearly").Valid())
	assert.False(t, plan.Type("").Valid())
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"daily", "Weekly", "MONTHLY"} {
		_, err := plan.ParseType(s)
		assert.NoError(t, err, s)
	}

	_, err := plan.ParseType("yearly")
	assert.ErrorIs(t, err, plan.ErrUnknownType)
}

func TestType_Rate(t *testing.T) {
	assert.Equal(t, money.FromDollars(5, 0), plan.Daily.Rate())
	assert.Equal(t, money.FromDollars(25, 0), plan.Weekly.Rate())
	assert.Equal(t, money.FromDollars(85, 0), plan.Monthly.Rate())
}
