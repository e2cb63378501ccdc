package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
	"github.com/noah-isme/sma-enrollment-api/pkg/response"
)

type studentDirectory interface {
	Register(ctx context.Context, req service.RegisterStudentRequest) (*models.Student, error)
	FindByName(ctx context.Context, name string) (*models.Student, bool)
	ListAll(ctx context.Context) ([]*models.Student, error)
	EnrollInCourse(ctx context.Context, studentName string, course *models.Course) error
	UnenrollFromCourse(ctx context.Context, studentName string, course *models.Course) error
	GetEnrolledCourses(ctx context.Context, studentName string) ([]*models.Course, error)
	Remove(ctx context.Context, name string) error
}

type courseLookup interface {
	FindByName(ctx context.Context, name string) (*models.Course, bool)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentDirectory
	courses  courseLookup
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentDirectory, courses courseLookup) *StudentHandler {
	return &StudentHandler{students: students, courses: courses}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, students)
}

// Get godoc
// @Summary Get student by name
// @Tags Students
// @Produce json
// @Param name path string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /students/{name} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, ok := h.students.FindByName(c.Request.Context(), c.Param("name"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "student not found"))
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Delete godoc
// @Summary Remove student
// @Tags Students
// @Param name path string true "Student name"
// @Success 204
// @Router /students/{name} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Remove(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Courses godoc
// @Summary List courses a student is enrolled in
// @Tags Students
// @Produce json
// @Param name path string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /students/{name}/courses [get]
func (h *StudentHandler) Courses(c *gin.Context) {
	courses, err := h.students.GetEnrolledCourses(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, courses)
}

// Enroll godoc
// @Summary Enroll student in course
// @Tags Students
// @Param name path string true "Student name"
// @Param course path string true "Course name"
// @Success 204
// @Router /students/{name}/courses/{course} [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	course := h.courseRef(c)
	if err := h.students.EnrollInCourse(c.Request.Context(), c.Param("name"), course); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unenroll godoc
// @Summary Unenroll student from course
// @Tags Students
// @Param name path string true "Student name"
// @Param course path string true "Course name"
// @Success 204
// @Router /students/{name}/courses/{course} [delete]
func (h *StudentHandler) Unenroll(c *gin.Context) {
	course := h.courseRef(c)
	if err := h.students.UnenrollFromCourse(c.Request.Context(), c.Param("name"), course); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// courseRef resolves the :course parameter. Unregistered names still yield a
// reference so the directory decides how to treat them.
func (h *StudentHandler) courseRef(c *gin.Context) *models.Course {
	name := c.Param("course")
	if course, ok := h.courses.FindByName(c.Request.Context(), name); ok {
		return course
	}
	return &models.Course{Name: name}
}
