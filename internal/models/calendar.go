package models

import "time"

const (
	// ScheduleItemCalendar marks a plain calendar event.
	ScheduleItemCalendar = "event"
	// ScheduleItemAssignment marks an assignment shown on the calendar.
	ScheduleItemAssignment = "assignment"
)

// ScheduleItem is a calendar event.
type ScheduleItem struct {
	ID                    int64       `json:"id"`
	Title                 string      `json:"title"`
	Description           string      `json:"description"`
	Type                  string      `json:"type"`
	AllDay                bool        `json:"all_day"`
	AllDayAt              *time.Time  `json:"all_day_date,omitempty"`
	StartAt               time.Time   `json:"start_at"`
	EndAt                 *time.Time  `json:"end_at,omitempty"`
	ContextCode           string      `json:"context_code"`
	ContextName           string      `json:"context_name,omitempty"`
	ImportantDate         bool        `json:"important_dates"`
	RRule                 string      `json:"rrule,omitempty"`
	SeriesNaturalLanguage string      `json:"series_natural_language,omitempty"`
	LocationName          string      `json:"location_name,omitempty"`
	LocationAddress       string      `json:"location_address,omitempty"`
	WorkflowState         string      `json:"workflow_state,omitempty"`
	Assignment            *Assignment `json:"assignment,omitempty"`
}

// PlannableType is the kind of object a planner item refers to.
type PlannableType string

const (
	PlannableTodo          PlannableType = "planner_note"
	PlannableAssignment    PlannableType = "assignment"
	PlannableQuiz          PlannableType = "quiz"
	PlannableDiscussion    PlannableType = "discussion_topic"
	PlannableCalendarEvent PlannableType = "calendar_event"
)

// Plannable is the object wrapped by a planner item.
type Plannable struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	CourseID int64      `json:"course_id,omitempty"`
	UserID   int64      `json:"user_id"`
	TodoDate *time.Time `json:"todo_date,omitempty"`
	Details  string     `json:"details,omitempty"`
}

// PlannerItem is a to-do or plannable entry.
type PlannerItem struct {
	CourseID      int64         `json:"course_id,omitempty"`
	UserID        int64         `json:"user_id"`
	ContextType   string        `json:"context_type,omitempty"`
	ContextName   string        `json:"context_name,omitempty"`
	PlannableType PlannableType `json:"plannable_type"`
	Plannable     Plannable     `json:"plannable"`
	PlannableDate time.Time     `json:"plannable_date"`
}
