package models

import "time"

// AccountNotificationIconQuestion is the default global announcement icon.
const AccountNotificationIconQuestion = "question"

// AccountNotification is an institution-wide announcement.
type AccountNotification struct {
	ID      int64     `json:"id"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Icon    string    `json:"icon"`
}

// StreamItem is an activity-stream entry, shown on the notifications list.
type StreamItem struct {
	ID           int64      `json:"id"`
	CourseID     int64      `json:"course_id"`
	AssignmentID int64      `json:"assignment_id"`
	UserID       int64      `json:"user_id"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Type         string     `json:"type"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	HTMLURL      string     `json:"html_url"`
	ContextType  string     `json:"context_type"`
	Score        float64    `json:"score"`
	Grade        *string    `json:"grade,omitempty"`
	Excused      bool       `json:"excused"`
}
