package models

import (
	"errors"
	"strings"
)

// Entity-level enrollment errors. Services translate them into application errors.
var (
	ErrNilCourse       = errors.New("course cannot be nil")
	ErrNilStudent      = errors.New("student cannot be nil")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

// EnrollmentStats summarises directory sizes and active links.
type EnrollmentStats struct {
	Students    int `json:"students"`
	Courses     int `json:"courses"`
	Enrollments int `json:"enrollments"`
}

func indexFold(names []string, name string) int {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

func removeFold(names []string, name string) []string {
	i := indexFold(names, name)
	if i < 0 {
		return names
	}
	out := make([]string, 0, len(names)-1)
	out = append(out, names[:i]...)
	return append(out, names[i+1:]...)
}
