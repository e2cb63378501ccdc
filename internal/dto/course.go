package dto

import "github.com/noah-isme/sma-enrollment-api/internal/service"

// CourseRequest is the wire payload for registering or updating a course.
type CourseRequest struct {
	Name          string  `json:"name"`
	EnrollmentFee float64 `json:"enrollment_fee"`
	StartDate     Date    `json:"start_date"`
	EndDate       Date    `json:"end_date"`
}

// Register converts the payload into a registration request.
func (r CourseRequest) Register() service.RegisterCourseRequest {
	return service.RegisterCourseRequest{
		Name:          r.Name,
		EnrollmentFee: r.EnrollmentFee,
		StartDate:     r.StartDate.Time,
		EndDate:       r.EndDate.Time,
	}
}

// Update converts the payload into an update request. The name is ignored.
func (r CourseRequest) Update() service.UpdateCourseRequest {
	return service.UpdateCourseRequest{
		EnrollmentFee: r.EnrollmentFee,
		StartDate:     r.StartDate.Time,
		EndDate:       r.EndDate.Time,
	}
}
