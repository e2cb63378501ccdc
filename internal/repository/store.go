package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

// Repository errors. They play the role sql.ErrNoRows plays for SQL-backed repositories.
var (
	ErrNoRecord         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrStudentNotFound  = fmt.Errorf("student: %w", ErrNoRecord)
	ErrCourseNotFound   = fmt.Errorf("course: %w", ErrNoRecord)
	ErrDuplicateStudent = fmt.Errorf("student: %w", ErrDuplicate)
	ErrDuplicateCourse  = fmt.Errorf("course: %w", ErrDuplicate)
)

// Store is the process-wide in-memory state shared by every repository.
// A single lock guards both collections and the entities inside them, so a
// link touching a student and a course is one critical section.
type Store struct {
	mu       sync.RWMutex
	students []*models.Student
	courses  []*models.Course
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) studentIndex(name string) int {
	for i, st := range s.students {
		if st.Is(name) {
			return i
		}
	}
	return -1
}

func (s *Store) courseIndex(name string) int {
	for i, c := range s.courses {
		if c.Is(name) {
			return i
		}
	}
	return -1
}

func (s *Store) student(name string) *models.Student {
	if i := s.studentIndex(name); i >= 0 {
		return s.students[i]
	}
	return nil
}

func (s *Store) course(name string) *models.Course {
	if i := s.courseIndex(name); i >= 0 {
		return s.courses[i]
	}
	return nil
}

func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
