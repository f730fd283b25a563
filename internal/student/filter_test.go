package student_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tkay6677/lunchpay/internal/student"
)

func fixtureStudents() []student.Student {
	return []student.Student{
		{ID: "1", Name: "Alex Johnson", StudentID: "S12345"},
		{ID: "2", Name: "Sarah Johnson", StudentID: "S12346"},
	}
}

func TestFilter_EmptyQueryReturnsAllInOrder(t *testing.T) {
	students := fixtureStudents()

	got := student.Filter(students, "")

	require.Len(t, got, 2)
	assert.Equal(t, "Alex Johnson", got[0].Name)
	assert.Equal(t, "Sarah Johnson", got[1].Name)
}

func TestFilter_CaseInsensitiveNameMatch(t *testing.T) {
	got := student.Filter(fixtureStudents(), "alex")

	require.Len(t, got, 1)
	assert.Equal(t, "Alex Johnson", got[0].Name)
}

func TestFilter_MatchesStudentID(t *testing.T) {
	got := student.Filter(fixtureStudents(), "S12346")

	require.Len(t, got, 1)
	assert.Equal(t, "Sarah Johnson", got[0].Name)
}

func TestFilter_NoMatchReturnsEmpty(t *testing.T) {
	got := student.Filter(fixtureStudents(), "zzz")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_Idempotent(t *testing.T) {
	once := student.Filter(fixtureStudents(), "johnson")
	twice := student.Filter(once, "johnson")

	assert.Equal(t, once, twice)
}
