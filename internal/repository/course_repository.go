package repository

import (
	"context"
	"time"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

// CourseRepository stores courses in the shared in-memory store.
type CourseRepository struct {
	store *Store
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(store *Store) *CourseRepository {
	return &CourseRepository{store: store}
}

// List returns copies of all courses in registration order.
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	return r.filter(ctx, func(*models.Course) bool { return true })
}

// ListWithin returns courses whose whole span lies inside [start, end].
func (r *CourseRepository) ListWithin(ctx context.Context, start, end time.Time) ([]*models.Course, error) {
	return r.filter(ctx, func(c *models.Course) bool { return c.Within(start, end) })
}

// ListOverlapping returns courses sharing at least one instant with [start, end].
func (r *CourseRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]*models.Course, error) {
	return r.filter(ctx, func(c *models.Course) bool { return c.Overlaps(start, end) })
}

func (r *CourseRepository) filter(ctx context.Context, keep func(*models.Course) bool) ([]*models.Course, error) {
	var out []*models.Course
	err := r.store.read(ctx, func() error {
		out = make([]*models.Course, 0, len(r.store.courses))
		for _, c := range r.store.courses {
			if keep(c) {
				out = append(out, c.Clone())
			}
		}
		return nil
	})
	return out, err
}

// FindByName returns the first course matching name case-insensitively.
func (r *CourseRepository) FindByName(ctx context.Context, name string) (*models.Course, error) {
	var out *models.Course
	err := r.store.read(ctx, func() error {
		c := r.store.course(name)
		if c == nil {
			return ErrCourseNotFound
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// Create stores a copy of course. Names must be unique.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.store.write(ctx, func() error {
		if r.store.courseIndex(course.Name) >= 0 {
			return ErrDuplicateCourse
		}
		r.store.courses = append(r.store.courses, course.Clone())
		return nil
	})
}

// Update overwrites fee and dates in place, keeping the roster.
func (r *CourseRepository) Update(ctx context.Context, name string, fee float64, start, end time.Time) (*models.Course, error) {
	var out *models.Course
	err := r.store.write(ctx, func() error {
		c := r.store.course(name)
		if c == nil {
			return ErrCourseNotFound
		}
		c.EnrollmentFee = fee
		c.StartDate = start
		c.EndDate = end
		c.UpdatedAt = time.Now().UTC()
		out = c.Clone()
		return nil
	})
	return out, err
}

// Delete removes the course and drops it from every enrolled student's list.
func (r *CourseRepository) Delete(ctx context.Context, name string) error {
	return r.store.write(ctx, func() error {
		i := r.store.courseIndex(name)
		if i < 0 {
			return ErrCourseNotFound
		}
		c := r.store.courses[i]
		for _, studentName := range c.Students {
			if st := r.store.student(studentName); st != nil {
				_ = st.UnenrollFromCourse(c)
			}
		}
		r.store.courses = append(r.store.courses[:i:i], r.store.courses[i+1:]...)
		return nil
	})
}
