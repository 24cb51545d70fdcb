package models

import "time"

// AlertType enumerates observer alert triggers.
type AlertType string

const (
	AlertCourseGradeHigh         AlertType = "course_grade_high"
	AlertCourseGradeLow          AlertType = "course_grade_low"
	AlertAssignmentGradeHigh     AlertType = "assignment_grade_high"
	AlertAssignmentGradeLow      AlertType = "assignment_grade_low"
	AlertAssignmentMissing       AlertType = "assignment_missing"
	AlertCourseAnnouncement      AlertType = "course_announcement"
	AlertInstitutionAnnouncement AlertType = "institution_announcement"
)

// AlertWorkflowState is the read state of an alert.
type AlertWorkflowState string

const (
	AlertUnread    AlertWorkflowState = "unread"
	AlertRead      AlertWorkflowState = "read"
	AlertDismissed AlertWorkflowState = "dismissed"
)

// ThresholdStateActive marks an active alert threshold.
const ThresholdStateActive = "active"

// Alert is raised for an observer about an observed student.
type Alert struct {
	ID                       int64              `json:"id"`
	ObserverID               int64              `json:"observer_id"`
	UserID                   int64              `json:"user_id"`
	ObserverAlertThresholdID int64              `json:"observer_alert_threshold_id"`
	ContextType              string             `json:"context_type"`
	ContextID                int64              `json:"context_id"`
	AlertType                AlertType          `json:"alert_type"`
	WorkflowState            AlertWorkflowState `json:"workflow_state"`
	ActionDate               time.Time          `json:"action_date"`
	Title                    string             `json:"title"`
	HTMLURL                  string             `json:"html_url,omitempty"`
	LockedForUser            bool               `json:"locked_for_user"`
}

// AlertThreshold configures when an alert fires.
type AlertThreshold struct {
	ID            int64     `json:"id"`
	ObserverID    int64     `json:"observer_id"`
	UserID        int64     `json:"user_id"`
	Threshold     string    `json:"threshold,omitempty"`
	AlertType     AlertType `json:"alert_type"`
	WorkflowState string    `json:"workflow_state"`
}
