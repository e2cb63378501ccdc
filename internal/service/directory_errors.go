package service

import (
	"errors"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
)

var (
	errStudentNotFound  = appErrors.Clone(appErrors.ErrNotFound, "student not found")
	errCourseNotFound   = appErrors.Clone(appErrors.ErrNotFound, "course not found")
	errNilCourse        = appErrors.Clone(appErrors.ErrValidation, "course cannot be nil")
	errNilStudent       = appErrors.Clone(appErrors.ErrValidation, "student cannot be nil")
	errAlreadyEnrolled  = appErrors.Clone(appErrors.ErrDuplicateEnrollment, "student is already enrolled in this course")
	errDuplicateStudent = appErrors.Clone(appErrors.ErrConflict, "student name already registered")
	errDuplicateCourse  = appErrors.Clone(appErrors.ErrConflict, "course name already registered")
)

// translate maps repository and entity errors onto application errors.
func translate(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrStudentNotFound):
		return errStudentNotFound
	case errors.Is(err, repository.ErrCourseNotFound):
		return errCourseNotFound
	case errors.Is(err, repository.ErrDuplicateStudent):
		return errDuplicateStudent
	case errors.Is(err, repository.ErrDuplicateCourse):
		return errDuplicateCourse
	case errors.Is(err, models.ErrAlreadyEnrolled):
		return errAlreadyEnrolled
	case errors.Is(err, models.ErrNilCourse):
		return errNilCourse
	case errors.Is(err, models.ErrNilStudent):
		return errNilStudent
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
