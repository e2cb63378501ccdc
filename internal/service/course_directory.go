package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	ListWithin(ctx context.Context, start, end time.Time) ([]*models.Course, error)
	ListOverlapping(ctx context.Context, start, end time.Time) ([]*models.Course, error)
	FindByName(ctx context.Context, name string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, name string, fee float64, start, end time.Time) (*models.Course, error)
	Delete(ctx context.Context, name string) error
}

// RegisterCourseRequest holds payload for registering courses.
type RegisterCourseRequest struct {
	Name          string    `json:"name" validate:"required"`
	EnrollmentFee float64   `json:"enrollment_fee" validate:"gte=0"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
}

// UpdateCourseRequest holds the mutable course fields.
type UpdateCourseRequest struct {
	EnrollmentFee float64   `json:"enrollment_fee" validate:"gte=0"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
}

// CourseDirectory handles course use-cases and the roster side of enrollment.
//
// In strict mode, mutations addressed to an unknown course name fail with a
// not-found error. In lenient mode they return without effect.
type CourseDirectory struct {
	repo      courseRepository
	links     enrollmentLinker
	metrics   *MetricsService
	strict    bool
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseDirectory constructs the course directory.
func NewCourseDirectory(repo courseRepository, links enrollmentLinker, metrics *MetricsService, strict bool, validate *validator.Validate, logger *zap.Logger) *CourseDirectory {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseDirectory{repo: repo, links: links, metrics: metrics, strict: strict, validator: validate, logger: logger}
}

// Register creates a course with an empty roster.
func (s *CourseDirectory) Register(ctx context.Context, req RegisterCourseRequest) (course *models.Course, err error) {
	defer func() { s.metrics.ObserveOperation("courses", "register", err) }()

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course = models.NewCourse(req.Name, req.EnrollmentFee, req.StartDate, req.EndDate)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, translate(err, "failed to register course")
	}
	s.logger.Info("course registered", zap.String("course", course.Name), zap.Float64("fee", course.EnrollmentFee))
	return course.Clone(), nil
}

// EnrollStudent adds student to the named course, updating both sides.
func (s *CourseDirectory) EnrollStudent(ctx context.Context, courseName string, student *models.Student) (err error) {
	defer func() { s.metrics.ObserveOperation("courses", "enroll", err) }()

	if student == nil {
		return errNilStudent
	}
	if s.skipUnknown(ctx, courseName) {
		return nil
	}
	if err := s.links.Link(ctx, student.Name, courseName); err != nil {
		if s.ignorable(err) {
			return nil
		}
		return translate(err, "failed to enroll student")
	}
	s.logger.Info("student added to roster", zap.String("course", courseName), zap.String("student", student.Name))
	return nil
}

// GetCourses returns courses whose whole span lies inside [start, end].
// Courses that merely overlap the window are excluded; see GetOverlapping.
func (s *CourseDirectory) GetCourses(ctx context.Context, start, end time.Time) ([]*models.Course, error) {
	courses, err := s.repo.ListWithin(ctx, start, end)
	if err != nil {
		return nil, translate(err, "failed to list courses")
	}
	return courses, nil
}

// GetOverlapping returns courses sharing at least one day with [start, end].
func (s *CourseDirectory) GetOverlapping(ctx context.Context, start, end time.Time) ([]*models.Course, error) {
	courses, err := s.repo.ListOverlapping(ctx, start, end)
	if err != nil {
		return nil, translate(err, "failed to list courses")
	}
	return courses, nil
}

// GetStudentsInCourse returns the roster, or an empty list for an unknown course.
func (s *CourseDirectory) GetStudentsInCourse(ctx context.Context, courseName string) ([]*models.Student, error) {
	students, err := s.links.StudentsOf(ctx, courseName)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return []*models.Student{}, nil
		}
		return nil, translate(err, "failed to load roster")
	}
	return students, nil
}

// Update overwrites fee and dates of the named course.
func (s *CourseDirectory) Update(ctx context.Context, courseName string, req UpdateCourseRequest) (course *models.Course, err error) {
	defer func() { s.metrics.ObserveOperation("courses", "update", err) }()

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err = s.repo.Update(ctx, courseName, req.EnrollmentFee, req.StartDate, req.EndDate)
	if err != nil {
		if s.ignorable(err) {
			return nil, nil
		}
		return nil, translate(err, "failed to update course")
	}
	s.logger.Info("course updated", zap.String("course", course.Name), zap.Float64("fee", course.EnrollmentFee))
	return course, nil
}

// Delete removes the named course and drops it from every enrolled student.
func (s *CourseDirectory) Delete(ctx context.Context, courseName string) (err error) {
	defer func() { s.metrics.ObserveOperation("courses", "delete", err) }()

	if err := s.repo.Delete(ctx, courseName); err != nil {
		if s.ignorable(err) {
			return nil
		}
		return translate(err, "failed to delete course")
	}
	s.logger.Info("course deleted", zap.String("course", courseName))
	return nil
}

// FindByName returns the course matching name case-insensitively. A miss
// reports false rather than an error.
func (s *CourseDirectory) FindByName(ctx context.Context, courseName string) (*models.Course, bool) {
	course, err := s.repo.FindByName(ctx, courseName)
	if err != nil {
		if !errors.Is(err, repository.ErrNoRecord) {
			s.logger.Warn("course lookup failed", zap.String("course", courseName), zap.Error(err))
		}
		return nil, false
	}
	return course, true
}

// ListAll returns a copy of every registered course.
func (s *CourseDirectory) ListAll(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate(err, "failed to list courses")
	}
	return courses, nil
}

// UnenrollStudent removes student from the named course on both sides.
// A student who is not on the roster is ignored.
func (s *CourseDirectory) UnenrollStudent(ctx context.Context, courseName string, student *models.Student) (err error) {
	defer func() { s.metrics.ObserveOperation("courses", "unenroll", err) }()

	if student == nil {
		return errNilStudent
	}
	if s.skipUnknown(ctx, courseName) {
		return nil
	}
	if err := s.links.Unlink(ctx, student.Name, courseName); err != nil {
		if s.ignorable(err) {
			return nil
		}
		return translate(err, "failed to unenroll student")
	}
	s.logger.Info("student removed from roster", zap.String("course", courseName), zap.String("student", student.Name))
	return nil
}

// skipUnknown reports whether a lenient directory should silently ignore courseName.
func (s *CourseDirectory) skipUnknown(ctx context.Context, courseName string) bool {
	if s.strict {
		return false
	}
	if _, err := s.repo.FindByName(ctx, courseName); errors.Is(err, repository.ErrCourseNotFound) {
		s.logger.Debug("operation on unknown course ignored", zap.String("course", courseName))
		return true
	}
	return false
}

// ignorable reports whether err is a lenient miss, including a course deleted
// between the lookup and the mutation.
func (s *CourseDirectory) ignorable(err error) bool {
	return !s.strict && errors.Is(err, repository.ErrCourseNotFound)
}
