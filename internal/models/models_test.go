package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

func TestStudentEnrollInCourse(t *testing.T) {
	student := NewStudent("Alice", 22)
	course := NewCourse("Mathematics", 100, date(1, 1), date(4, 1))

	require.NoError(t, student.EnrollInCourse(course))
	assert.Equal(t, []string{"Mathematics"}, student.Courses)
	assert.True(t, student.IsEnrolledIn("mathematics"))

	assert.ErrorIs(t, student.EnrollInCourse(course), ErrAlreadyEnrolled)
	assert.ErrorIs(t, student.EnrollInCourse(nil), ErrNilCourse)
	assert.Len(t, student.Courses, 1)
}

func TestStudentUnenrollIgnoresAbsentCourse(t *testing.T) {
	student := NewStudent("Alice", 22)
	course := NewCourse("Mathematics", 100, date(1, 1), date(4, 1))

	require.NoError(t, student.UnenrollFromCourse(course))
	assert.Empty(t, student.Courses)
	assert.ErrorIs(t, student.UnenrollFromCourse(nil), ErrNilCourse)
}

func TestCourseRoster(t *testing.T) {
	course := NewCourse("Biology", 100, date(1, 1), date(4, 1))
	alice := NewStudent("Alice", 22)
	bob := NewStudent("Bob", 24)

	require.NoError(t, course.AddStudent(alice))
	require.NoError(t, course.AddStudent(bob))
	assert.ErrorIs(t, course.AddStudent(NewStudent("ALICE", 30)), ErrAlreadyEnrolled)
	assert.ErrorIs(t, course.AddStudent(nil), ErrNilStudent)
	assert.Equal(t, []string{"Alice", "Bob"}, course.Students)

	require.NoError(t, course.RemoveStudent(alice))
	assert.Equal(t, []string{"Bob"}, course.Students)
	require.NoError(t, course.RemoveStudent(alice))
	assert.Equal(t, []string{"Bob"}, course.Students)
}

func TestCourseWithinIsContainment(t *testing.T) {
	a := NewCourse("A", 10, date(1, 1), date(2, 1))
	b := NewCourse("B", 10, date(1, 1), date(4, 1))

	assert.True(t, a.Within(date(1, 1), date(3, 1)))
	assert.False(t, b.Within(date(1, 1), date(3, 1)))
	assert.True(t, b.Overlaps(date(1, 1), date(3, 1)))
	assert.False(t, b.Overlaps(date(5, 1), date(6, 1)))
}

func TestCloneIsDeep(t *testing.T) {
	course := NewCourse("Biology", 100, date(1, 1), date(4, 1))
	require.NoError(t, course.AddStudent(NewStudent("Alice", 22)))

	cp := course.Clone()
	cp.Students[0] = "Mallory"
	cp.Students = append(cp.Students, "Eve")

	assert.Equal(t, []string{"Alice"}, course.Students)
	assert.Nil(t, (*Course)(nil).Clone())
	assert.Nil(t, (*Student)(nil).Clone())
}
