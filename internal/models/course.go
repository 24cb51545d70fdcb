package models

import (
	"fmt"
	"time"
)

const (
	// TabAssignmentsID identifies the assignments navigation tab.
	TabAssignmentsID = "assignments"
	// TabQuizzesID identifies the quizzes navigation tab.
	TabQuizzesID = "quizzes"
)

// Term is an enrollment term.
type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Section is a subdivision of a course.
type Section struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CourseID      int64   `json:"course_id"`
	StudentIDs    []int64 `json:"student_ids"`
	TotalStudents int     `json:"total_students"`
}

// GradingPeriod is a named grading window within a course.
type GradingPeriod struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Tab is a course navigation entry.
type Tab struct {
	TabID      string `json:"id"`
	Label      string `json:"label"`
	Position   int    `json:"position"`
	Visibility string `json:"visibility"`
}

// CourseSettings holds the per-course feature switches.
type CourseSettings struct {
	RestrictQuantitativeData bool `json:"restrict_quantitative_data"`
}

// Course is a course snapshot. Enrollments is appended whenever an
// enrollment is added for the course.
type Course struct {
	ID                              int64              `json:"id"`
	Name                            string             `json:"name"`
	OriginalName                    string             `json:"original_name"`
	CourseCode                      string             `json:"course_code"`
	Term                            Term               `json:"term"`
	EndAt                           *time.Time         `json:"end_at,omitempty"`
	IsFavorite                      bool               `json:"is_favorite"`
	IsPublic                        bool               `json:"is_public"`
	HomeroomCourse                  bool               `json:"homeroom_course"`
	RestrictEnrollmentsToCourseDate bool               `json:"restrict_enrollments_to_course_dates"`
	Sections                        []Section          `json:"sections"`
	GradingPeriods                  []GradingPeriod    `json:"grading_periods"`
	CourseColor                     string             `json:"course_color"`
	Settings                        CourseSettings     `json:"settings"`
	Permissions                     *ContextPermission `json:"permissions,omitempty"`
	Enrollments                     []Enrollment       `json:"enrollments"`
}

// ContextID returns the context code used by conversations and calendar events.
func (c Course) ContextID() string {
	return fmt.Sprintf("course_%d", c.ID)
}

// IsConcluded reports whether the course ended before the reference time.
func (c Course) IsConcluded(reference time.Time) bool {
	return c.EndAt != nil && c.EndAt.Before(reference)
}
