package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/repository"
	"github.com/noah-isme/sma-enrollment-api/internal/service"
	"github.com/noah-isme/sma-enrollment-api/pkg/export"
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct{ Code string } `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func newTestEngine(t *testing.T, strict bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore()
	courseRepo := repository.NewCourseRepository(store)
	links := repository.NewEnrollmentRepository(store)
	validate := validator.New()
	students := service.NewStudentDirectory(repository.NewStudentRepository(store), links, nil, service.DefaultMinStudentAge, validate, zap.NewNop())
	courses := service.NewCourseDirectory(courseRepo, links, nil, strict, validate, zap.NewNop())
	exports := service.NewExportService(courseRepo, links, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())

	sh := NewStudentHandler(students, courses)
	ch := NewCourseHandler(courses, students, exports)

	r := gin.New()
	r.POST("/students", sh.Create)
	r.GET("/students", sh.List)
	r.GET("/students/:name", sh.Get)
	r.DELETE("/students/:name", sh.Delete)
	r.GET("/students/:name/courses", sh.Courses)
	r.POST("/students/:name/courses/:course", sh.Enroll)
	r.DELETE("/students/:name/courses/:course", sh.Unenroll)
	r.POST("/courses", ch.Create)
	r.GET("/courses", ch.List)
	r.GET("/courses/:name", ch.Get)
	r.PUT("/courses/:name", ch.Update)
	r.DELETE("/courses/:name", ch.Delete)
	r.GET("/courses/:name/students", ch.Students)
	r.POST("/courses/:name/students/:student", ch.Enroll)
	r.DELETE("/courses/:name/students/:student", ch.Unenroll)
	r.GET("/courses/:name/roster", ch.Roster)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func seedCourse(t *testing.T, r *gin.Engine, name, start, end string) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/courses", map[string]interface{}{
		"name": name, "enrollment_fee": 150, "start_date": start, "end_date": end,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func seedStudent(t *testing.T, r *gin.Engine, name string, age int) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/students", map[string]interface{}{"name": name, "age": age})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
