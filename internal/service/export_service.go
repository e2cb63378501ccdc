package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/sma-enrollment-api/pkg/errors"
	"github.com/noah-isme/sma-enrollment-api/pkg/export"
)

// Supported roster export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

type courseFinder interface {
	FindByName(ctx context.Context, name string) (*models.Course, error)
}

// RosterExport is a rendered roster ready to be served.
type RosterExport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders course rosters into downloadable documents.
type ExportService struct {
	courses   courseFinder
	links     enrollmentLinker
	renderers map[string]renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(courses courseFinder, links enrollmentLinker, logger *zap.Logger, csv, pdf renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		courses:   courses,
		links:     links,
		renderers: map[string]renderer{ExportFormatCSV: csv, ExportFormatPDF: pdf},
		logger:    logger,
	}
}

// Roster renders the roster of courseName in the requested format.
func (s *ExportService) Roster(ctx context.Context, courseName, format string) (*RosterExport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	course, err := s.courses.FindByName(ctx, courseName)
	if err != nil {
		return nil, translate(err, "failed to load course")
	}
	students, err := s.links.StudentsOf(ctx, course.Name)
	if err != nil {
		return nil, translate(err, "failed to load roster")
	}

	data := export.Dataset{
		Title: fmt.Sprintf("%s roster %s to %s", course.Name,
			course.StartDate.Format("2006-01-02"), course.EndDate.Format("2006-01-02")),
		Headers: []string{"No", "Student", "Age", "Courses"},
		Rows:    make([][]string, 0, len(students)),
	}
	for i, st := range students {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(i + 1),
			st.Name,
			strconv.Itoa(st.Age),
			strconv.Itoa(len(st.Courses)),
		})
	}

	out, err := r.Render(data)
	if err != nil {
		s.logger.Error("roster render failed", zap.String("course", course.Name), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}
	return &RosterExport{
		Filename:    fmt.Sprintf("%s-roster.%s", slug(course.Name), r.Extension()),
		ContentType: r.ContentType(),
		Data:        out,
	}, nil
}

func slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "course"
	}
	return strings.Join(fields, "-")
}
