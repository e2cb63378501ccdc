package repository

import (
	"context"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

// EnrollmentRepository owns the student/course link. Both sides change
// under the same write lock or not at all.
type EnrollmentRepository struct {
	store *Store
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(store *Store) *EnrollmentRepository {
	return &EnrollmentRepository{store: store}
}

// Link enrolls the student in the course on both sides.
func (r *EnrollmentRepository) Link(ctx context.Context, studentName, courseName string) error {
	return r.store.write(ctx, func() error {
		st := r.store.student(studentName)
		if st == nil {
			return ErrStudentNotFound
		}
		c := r.store.course(courseName)
		if c == nil {
			return ErrCourseNotFound
		}
		if st.IsEnrolledIn(c.Name) || c.HasStudent(st.Name) {
			return models.ErrAlreadyEnrolled
		}
		if err := st.EnrollInCourse(c); err != nil {
			return err
		}
		return c.AddStudent(st)
	})
}

// Unlink removes the enrollment from both sides. A missing link is not an error.
func (r *EnrollmentRepository) Unlink(ctx context.Context, studentName, courseName string) error {
	return r.store.write(ctx, func() error {
		st := r.store.student(studentName)
		if st == nil {
			return ErrStudentNotFound
		}
		c := r.store.course(courseName)
		if c == nil {
			return ErrCourseNotFound
		}
		if err := st.UnenrollFromCourse(c); err != nil {
			return err
		}
		return c.RemoveStudent(st)
	})
}

// CoursesOf returns copies of the student's courses in enrollment order.
func (r *EnrollmentRepository) CoursesOf(ctx context.Context, studentName string) ([]*models.Course, error) {
	var out []*models.Course
	err := r.store.read(ctx, func() error {
		st := r.store.student(studentName)
		if st == nil {
			return ErrStudentNotFound
		}
		out = make([]*models.Course, 0, len(st.Courses))
		for _, name := range st.Courses {
			if c := r.store.course(name); c != nil {
				out = append(out, c.Clone())
			}
		}
		return nil
	})
	return out, err
}

// StudentsOf returns copies of the course roster in enrollment order.
func (r *EnrollmentRepository) StudentsOf(ctx context.Context, courseName string) ([]*models.Student, error) {
	var out []*models.Student
	err := r.store.read(ctx, func() error {
		c := r.store.course(courseName)
		if c == nil {
			return ErrCourseNotFound
		}
		out = make([]*models.Student, 0, len(c.Students))
		for _, name := range c.Students {
			if st := r.store.student(name); st != nil {
				out = append(out, st.Clone())
			}
		}
		return nil
	})
	return out, err
}

// Stats counts students, courses and active enrollments.
func (r *EnrollmentRepository) Stats(ctx context.Context) (models.EnrollmentStats, error) {
	var stats models.EnrollmentStats
	err := r.store.read(ctx, func() error {
		stats.Students = len(r.store.students)
		stats.Courses = len(r.store.courses)
		for _, c := range r.store.courses {
			stats.Enrollments += len(c.Students)
		}
		return nil
	})
	return stats, err
}
