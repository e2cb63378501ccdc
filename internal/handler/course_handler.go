package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-api/internal/dto"
	"github.com/noah-isme/sma-enrollment-api/internal/models"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
	"github.com/noah-isme/sma-enrollment-api/pkg/response"
)

type courseDirectory interface {
	Register(ctx context.Context, req service.RegisterCourseRequest) (*models.Course, error)
	EnrollStudent(ctx context.Context, courseName string, student *models.Student) error
	GetCourses(ctx context.Context, start, end time.Time) ([]*models.Course, error)
	GetOverlapping(ctx context.Context, start, end time.Time) ([]*models.Course, error)
	GetStudentsInCourse(ctx context.Context, courseName string) ([]*models.Student, error)
	Update(ctx context.Context, courseName string, req service.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, courseName string) error
	FindByName(ctx context.Context, courseName string) (*models.Course, bool)
	ListAll(ctx context.Context) ([]*models.Course, error)
	UnenrollStudent(ctx context.Context, courseName string, student *models.Student) error
}

type studentLookup interface {
	FindByName(ctx context.Context, name string) (*models.Student, bool)
}

type rosterExporter interface {
	Roster(ctx context.Context, courseName, format string) (*service.RosterExport, error)
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses  courseDirectory
	students studentLookup
	exports  rosterExporter
}

// NewCourseHandler constructs CourseHandler. exports may be nil when roster export is disabled.
func NewCourseHandler(courses courseDirectory, students studentLookup, exports rosterExporter) *CourseHandler {
	return &CourseHandler{courses: courses, students: students, exports: exports}
}

// List godoc
// @Summary List courses, optionally inside or overlapping a date window
// @Tags Courses
// @Produce json
// @Param start query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Param mode query string false "within (default) or overlap"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" && rawEnd == "" {
		courses, err := h.courses.ListAll(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.List(c, courses)
		return
	}
	if rawStart == "" || rawEnd == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start and end must be provided together"))
		return
	}
	start, err := dto.ParseDate(rawStart)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid start"))
		return
	}
	end, err := dto.ParseDate(rawEnd)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid end"))
		return
	}

	var courses []*models.Course
	switch strings.ToLower(c.DefaultQuery("mode", "within")) {
	case "within":
		courses, err = h.courses.GetCourses(c.Request.Context(), start, end)
	case "overlap":
		courses, err = h.courses.GetOverlapping(c.Request.Context(), start, end)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "mode must be within or overlap"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, courses)
}

// Get godoc
// @Summary Get course by name
// @Tags Courses
// @Produce json
// @Param name path string true "Course name"
// @Success 200 {object} response.Envelope
// @Router /courses/{name} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, ok := h.courses.FindByName(c.Request.Context(), c.Param("name"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "course not found"))
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Register course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Register(c.Request.Context(), req.Register())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course fee and dates
// @Tags Courses
// @Accept json
// @Produce json
// @Param name path string true "Course name"
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Success 204 "unknown course in lenient mode"
// @Router /courses/{name} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), c.Param("name"), req.Update())
	if err != nil {
		response.Error(c, err)
		return
	}
	if course == nil {
		response.NoContent(c)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Param name path string true "Course name"
// @Success 204
// @Router /courses/{name} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courses.Delete(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Students godoc
// @Summary List the course roster
// @Tags Courses
// @Produce json
// @Param name path string true "Course name"
// @Success 200 {object} response.Envelope
// @Router /courses/{name}/students [get]
func (h *CourseHandler) Students(c *gin.Context) {
	students, err := h.courses.GetStudentsInCourse(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, students)
}

// Enroll godoc
// @Summary Add student to course roster
// @Tags Courses
// @Param name path string true "Course name"
// @Param student path string true "Student name"
// @Success 204
// @Router /courses/{name}/students/{student} [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	if err := h.courses.EnrollStudent(c.Request.Context(), c.Param("name"), h.studentRef(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unenroll godoc
// @Summary Remove student from course roster
// @Tags Courses
// @Param name path string true "Course name"
// @Param student path string true "Student name"
// @Success 204
// @Router /courses/{name}/students/{student} [delete]
func (h *CourseHandler) Unenroll(c *gin.Context) {
	if err := h.courses.UnenrollStudent(c.Request.Context(), c.Param("name"), h.studentRef(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Roster godoc
// @Summary Download the course roster
// @Tags Courses
// @Produce text/csv,application/pdf
// @Param name path string true "Course name"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /courses/{name}/roster [get]
func (h *CourseHandler) Roster(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "roster export disabled"))
		return
	}
	out, err := h.exports.Roster(c.Request.Context(), c.Param("name"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, out.Filename, out.ContentType, out.Data)
}

func (h *CourseHandler) studentRef(c *gin.Context) *models.Student {
	name := c.Param("student")
	if student, ok := h.students.FindByName(c.Request.Context(), name); ok {
		return student
	}
	return &models.Student{Name: name}
}
