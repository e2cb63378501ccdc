package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/repository"
)

type directories struct {
	students *StudentDirectory
	courses  *CourseDirectory
	links    *repository.EnrollmentRepository
}

func newDirectories(t *testing.T, strict bool) directories {
	t.Helper()
	store := repository.NewStore()
	links := repository.NewEnrollmentRepository(store)
	validate := validator.New()
	metrics := NewMetricsService()
	return directories{
		students: NewStudentDirectory(repository.NewStudentRepository(store), links, metrics, DefaultMinStudentAge, validate, zap.NewNop()),
		courses:  NewCourseDirectory(repository.NewCourseRepository(store), links, metrics, strict, validate, zap.NewNop()),
		links:    links,
	}
}

func jan(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func month(m time.Month) time.Time {
	return time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC)
}

func (d directories) registerCourse(t *testing.T, name string, start, end time.Time) {
	t.Helper()
	_, err := d.courses.Register(context.Background(), RegisterCourseRequest{Name: name, EnrollmentFee: 100, StartDate: start, EndDate: end})
	require.NoError(t, err)
}

func (d directories) registerStudent(t *testing.T, name string, age int) {
	t.Helper()
	_, err := d.students.Register(context.Background(), RegisterStudentRequest{Name: name, Age: age})
	require.NoError(t, err)
}
