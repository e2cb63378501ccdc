package repository

import (
	"context"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

// StudentRepository stores students in the shared in-memory store.
type StudentRepository struct {
	store *Store
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// List returns copies of all students in registration order.
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	var out []*models.Student
	err := r.store.read(ctx, func() error {
		out = make([]*models.Student, 0, len(r.store.students))
		for _, st := range r.store.students {
			out = append(out, st.Clone())
		}
		return nil
	})
	return out, err
}

// FindByName returns the first student matching name case-insensitively.
func (r *StudentRepository) FindByName(ctx context.Context, name string) (*models.Student, error) {
	var out *models.Student
	err := r.store.read(ctx, func() error {
		st := r.store.student(name)
		if st == nil {
			return ErrStudentNotFound
		}
		out = st.Clone()
		return nil
	})
	return out, err
}

// Create stores a copy of student. Names must be unique.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.store.write(ctx, func() error {
		if r.store.studentIndex(student.Name) >= 0 {
			return ErrDuplicateStudent
		}
		r.store.students = append(r.store.students, student.Clone())
		return nil
	})
}

// Delete removes the student and drops it from every roster it appears on.
func (r *StudentRepository) Delete(ctx context.Context, name string) error {
	return r.store.write(ctx, func() error {
		i := r.store.studentIndex(name)
		if i < 0 {
			return ErrStudentNotFound
		}
		st := r.store.students[i]
		for _, courseName := range st.Courses {
			if c := r.store.course(courseName); c != nil {
				_ = c.RemoveStudent(st)
			}
		}
		r.store.students = append(r.store.students[:i:i], r.store.students[i+1:]...)
		return nil
	})
}
