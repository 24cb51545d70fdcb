package models

// EnrollmentType is the role a user holds in a course.
type EnrollmentType string

const (
	EnrollmentStudent  EnrollmentType = "StudentEnrollment"
	EnrollmentTeacher  EnrollmentType = "TeacherEnrollment"
	EnrollmentTA       EnrollmentType = "TaEnrollment"
	EnrollmentObserver EnrollmentType = "ObserverEnrollment"
	EnrollmentDesigner EnrollmentType = "DesignerEnrollment"
)

const (
	// EnrollmentStateActive marks an accepted enrollment.
	EnrollmentStateActive = "active"
	// EnrollmentStateInvited marks an enrollment awaiting acceptance.
	EnrollmentStateInvited = "invited"
)

// Grades is the grade snapshot embedded in an enrollment.
type Grades struct {
	CurrentScore *float64 `json:"current_score"`
	CurrentGrade string   `json:"current_grade"`
}

// Enrollment links a user to a course with a role. ObservedUserID is only
// set for observer enrollments.
type Enrollment struct {
	ID                   int64          `json:"id"`
	Role                 EnrollmentType `json:"role"`
	Type                 EnrollmentType `json:"type"`
	CourseID             int64          `json:"course_id"`
	CourseSectionID      int64          `json:"course_section_id"`
	UserID               int64          `json:"user_id"`
	ObservedUserID       int64          `json:"observed_user_id,omitempty"`
	EnrollmentState      string         `json:"enrollment_state"`
	Grades               Grades         `json:"grades"`
	ComputedCurrentScore *float64       `json:"computed_current_score"`
	ComputedCurrentGrade string         `json:"computed_current_grade"`
}

// IsObserver reports whether the enrollment is an observer (parent) enrollment.
func (e Enrollment) IsObserver() bool {
	return e.Role == EnrollmentObserver
}
