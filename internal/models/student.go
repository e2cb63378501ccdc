package models

import (
	"strings"
	"time"
)

// Student represents an adult learner registered in the directory.
type Student struct {
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Courses      []string  `json:"courses"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewStudent builds a student with an empty course list.
func NewStudent(name string, age int) *Student {
	return &Student{Name: name, Age: age, Courses: []string{}, RegisteredAt: time.Now().UTC()}
}

// Is reports whether the student is identified by name, ignoring case.
func (s *Student) Is(name string) bool {
	return s != nil && strings.EqualFold(s.Name, name)
}

// IsEnrolledIn reports whether courseName is in the student's course list.
func (s *Student) IsEnrolledIn(courseName string) bool {
	return indexFold(s.Courses, courseName) >= 0
}

// EnrollInCourse appends the course to the student's list.
func (s *Student) EnrollInCourse(course *Course) error {
	if course == nil {
		return ErrNilCourse
	}
	if s.IsEnrolledIn(course.Name) {
		return ErrAlreadyEnrolled
	}
	s.Courses = append(s.Courses, course.Name)
	return nil
}

// UnenrollFromCourse drops the course from the student's list. Absent courses are ignored.
func (s *Student) UnenrollFromCourse(course *Course) error {
	if course == nil {
		return ErrNilCourse
	}
	s.Courses = removeFold(s.Courses, course.Name)
	return nil
}

// Clone returns a deep copy safe to hand out of the directory.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Courses = append(make([]string, 0, len(s.Courses)), s.Courses...)
	return &cp
}
