package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

// DefaultMinStudentAge is the youngest age accepted at registration.
const DefaultMinStudentAge = 18

type studentRepository interface {
	List(ctx context.Context) ([]*models.Student, error)
	FindByName(ctx context.Context, name string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, name string) error
}

type enrollmentLinker interface {
	Link(ctx context.Context, studentName, courseName string) error
	Unlink(ctx context.Context, studentName, courseName string) error
	CoursesOf(ctx context.Context, studentName string) ([]*models.Course, error)
	StudentsOf(ctx context.Context, courseName string) ([]*models.Student, error)
}

// RegisterStudentRequest holds payload for registering students.
type RegisterStudentRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"`
}

// StudentDirectory handles student use-cases and the student side of enrollment.
type StudentDirectory struct {
	repo      studentRepository
	links     enrollmentLinker
	metrics   *MetricsService
	minAge    int
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentDirectory constructs the student directory.
func NewStudentDirectory(repo studentRepository, links enrollmentLinker, metrics *MetricsService, minAge int, validate *validator.Validate, logger *zap.Logger) *StudentDirectory {
	if minAge <= 0 {
		minAge = DefaultMinStudentAge
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentDirectory{repo: repo, links: links, metrics: metrics, minAge: minAge, validator: validate, logger: logger}
}

// Register creates a student with an empty course list.
func (s *StudentDirectory) Register(ctx context.Context, req RegisterStudentRequest) (student *models.Student, err error) {
	defer func() { s.metrics.ObserveOperation("students", "register", err) }()

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if req.Age < s.minAge {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only adults can be registered")
	}
	student = models.NewStudent(req.Name, req.Age)
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, translate(err, "failed to register student")
	}
	s.logger.Info("student registered", zap.String("student", student.Name), zap.Int("age", student.Age))
	return student.Clone(), nil
}

// FindByName returns the student matching name case-insensitively. A miss
// reports false rather than an error.
func (s *StudentDirectory) FindByName(ctx context.Context, name string) (*models.Student, bool) {
	student, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if !errors.Is(err, repository.ErrNoRecord) {
			s.logger.Warn("student lookup failed", zap.String("student", name), zap.Error(err))
		}
		return nil, false
	}
	return student, true
}

// ListAll returns a copy of every registered student.
func (s *StudentDirectory) ListAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate(err, "failed to list students")
	}
	return students, nil
}

// EnrollInCourse enrolls the named student in course, updating both sides.
func (s *StudentDirectory) EnrollInCourse(ctx context.Context, studentName string, course *models.Course) (err error) {
	defer func() { s.metrics.ObserveOperation("students", "enroll", err) }()

	if err := s.requireStudent(ctx, studentName); err != nil {
		return err
	}
	if course == nil {
		return errNilCourse
	}
	if err := s.links.Link(ctx, studentName, course.Name); err != nil {
		return translate(err, "failed to enroll student")
	}
	s.logger.Info("student enrolled", zap.String("student", studentName), zap.String("course", course.Name))
	return nil
}

// UnenrollFromCourse removes the enrollment from both sides. Unknown courses
// and missing enrollments are ignored.
func (s *StudentDirectory) UnenrollFromCourse(ctx context.Context, studentName string, course *models.Course) (err error) {
	defer func() { s.metrics.ObserveOperation("students", "unenroll", err) }()

	if err := s.requireStudent(ctx, studentName); err != nil {
		return err
	}
	if course == nil {
		return errNilCourse
	}
	if err := s.links.Unlink(ctx, studentName, course.Name); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			s.logger.Debug("unenroll from unknown course ignored", zap.String("student", studentName), zap.String("course", course.Name))
			return nil
		}
		return translate(err, "failed to unenroll student")
	}
	s.logger.Info("student unenrolled", zap.String("student", studentName), zap.String("course", course.Name))
	return nil
}

// GetEnrolledCourses returns the student's courses in enrollment order.
func (s *StudentDirectory) GetEnrolledCourses(ctx context.Context, studentName string) ([]*models.Course, error) {
	courses, err := s.links.CoursesOf(ctx, studentName)
	if err != nil {
		return nil, translate(err, "failed to load enrolled courses")
	}
	return courses, nil
}

// Remove deletes the student and drops it from every roster.
func (s *StudentDirectory) Remove(ctx context.Context, name string) (err error) {
	defer func() { s.metrics.ObserveOperation("students", "remove", err) }()

	if err := s.repo.Delete(ctx, name); err != nil {
		return translate(err, "failed to remove student")
	}
	s.logger.Info("student removed", zap.String("student", name))
	return nil
}

// requireStudent fails with a not-found error unless studentName is registered.
func (s *StudentDirectory) requireStudent(ctx context.Context, studentName string) error {
	if _, err := s.repo.FindByName(ctx, studentName); err != nil {
		return translate(err, "failed to load student")
	}
	return nil
}
