package models

import (
	"strings"
	"time"
)

// Course is a paid offering with a fixed date span and an ordered roster.
type Course struct {
	Name          string    `json:"name"`
	EnrollmentFee float64   `json:"enrollment_fee"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Students      []string  `json:"students"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCourse builds a course with an empty roster.
func NewCourse(name string, fee float64, start, end time.Time) *Course {
	now := time.Now().UTC()
	return &Course{
		Name:          name,
		EnrollmentFee: fee,
		StartDate:     start,
		EndDate:       end,
		Students:      []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Is reports whether the course is identified by name, ignoring case.
func (c *Course) Is(name string) bool {
	return c != nil && strings.EqualFold(c.Name, name)
}

// HasStudent reports whether studentName is on the roster.
func (c *Course) HasStudent(studentName string) bool {
	return indexFold(c.Students, studentName) >= 0
}

// AddStudent appends the student to the roster.
func (c *Course) AddStudent(student *Student) error {
	if student == nil {
		return ErrNilStudent
	}
	if c.HasStudent(student.Name) {
		return ErrAlreadyEnrolled
	}
	c.Students = append(c.Students, student.Name)
	return nil
}

// RemoveStudent drops the student from the roster. Absent students are ignored.
func (c *Course) RemoveStudent(student *Student) error {
	if student == nil {
		return ErrNilStudent
	}
	c.Students = removeFold(c.Students, student.Name)
	return nil
}

// Within reports whether the course span lies entirely inside [start, end].
func (c *Course) Within(start, end time.Time) bool {
	return !c.StartDate.Before(start) && !c.EndDate.After(end)
}

// Overlaps reports whether the course span shares at least one instant with [start, end].
func (c *Course) Overlaps(start, end time.Time) bool {
	return !c.StartDate.After(end) && !c.EndDate.Before(start)
}

// Clone returns a deep copy safe to hand out of the directory.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Students = append(make([]string, 0, len(c.Students)), c.Students...)
	return &cp
}
