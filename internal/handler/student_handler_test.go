package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
)

func TestStudentHandlerCreate(t *testing.T) {
	r := newTestEngine(t, true)

	w := do(t, r, http.MethodPost, "/students", map[string]interface{}{"name": "Alice", "age": 20})
	require.Equal(t, http.StatusCreated, w.Code)
	var student models.Student
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &student))
	assert.Equal(t, "Alice", student.Name)
	assert.Equal(t, 20, student.Age)

	w = do(t, r, http.MethodPost, "/students", map[string]interface{}{"name": "Young", "age": 17})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)

	w = do(t, r, http.MethodPost, "/students", map[string]interface{}{"name": "alice", "age": 30})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStudentHandlerGetAndList(t *testing.T) {
	r := newTestEngine(t, true)
	seedStudent(t, r, "Alice", 20)
	seedStudent(t, r, "Bob", 22)

	w := do(t, r, http.MethodGet, "/students/bob", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/students/Carol", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/students", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.EqualValues(t, 2, env.Meta["count"])
}

func TestStudentHandlerEnrollment(t *testing.T) {
	r := newTestEngine(t, true)
	seedStudent(t, r, "Alice", 20)
	seedCourse(t, r, "Go", "2025-01-01", "2025-03-31")

	w := do(t, r, http.MethodPost, "/students/Alice/courses/Go", nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/students/Alice/courses/Go", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/students/Alice/courses/Rust", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/students/Alice/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var courses []models.Course
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Go", courses[0].Name)
	assert.Equal(t, []string{"Alice"}, courses[0].Students)

	w = do(t, r, http.MethodDelete, "/students/Alice/courses/Rust", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/students/Alice/courses/Go", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/students/Alice/courses", nil)
	assert.EqualValues(t, 0, decode(t, w).Meta["count"])
}

func TestStudentHandlerDeleteCascades(t *testing.T) {
	r := newTestEngine(t, true)
	seedStudent(t, r, "Alice", 20)
	seedCourse(t, r, "Go", "2025-01-01", "2025-03-31")
	require.Equal(t, http.StatusNoContent, do(t, r, http.MethodPost, "/students/Alice/courses/Go", nil).Code)

	w := do(t, r, http.MethodDelete, "/students/Alice", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/courses/Go/students", nil)
	assert.EqualValues(t, 0, decode(t, w).Meta["count"])

	w = do(t, r, http.MethodDelete, "/students/Alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
