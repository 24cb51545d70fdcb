package models

import "time"

// SubmissionType enumerates the ways an assignment can be turned in.
type SubmissionType string

const (
	SubmissionTypeNone            SubmissionType = "none"
	SubmissionTypeOnPaper         SubmissionType = "on_paper"
	SubmissionTypeOnlineTextEntry SubmissionType = "online_text_entry"
	SubmissionTypeOnlineURL       SubmissionType = "online_url"
	SubmissionTypeOnlineUpload    SubmissionType = "online_upload"
	SubmissionTypeOnlineQuiz      SubmissionType = "online_quiz"
	SubmissionTypeDiscussionTopic SubmissionType = "discussion_topic"
	SubmissionTypeExternalTool    SubmissionType = "external_tool"
	SubmissionTypeMediaRecording  SubmissionType = "media_recording"
)

// AssignmentDueDate is one entry of an assignment's override dates.
type AssignmentDueDate struct {
	ID       int64      `json:"id"`
	DueAt    *time.Time `json:"due_at"`
	LockAt   *time.Time `json:"lock_at"`
	UnlockAt *time.Time `json:"unlock_at"`
}

// LockInfo explains why an item is locked for the current user.
type LockInfo struct {
	UnlockAt   *time.Time `json:"unlock_at,omitempty"`
	ModuleName string     `json:"context_module_name,omitempty"`
}

// RubricCriterion is a single rubric row.
type RubricCriterion struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

// Assignment represents an assignment definition. Submission mirrors the
// root submission last touched for this assignment.
type Assignment struct {
	ID                    int64                  `json:"id"`
	CourseID              int64                  `json:"course_id"`
	AssignmentGroupID     int64                  `json:"assignment_group_id"`
	Name                  string                 `json:"name"`
	Description           string                 `json:"description"`
	SubmissionTypes       []SubmissionType       `json:"submission_types"`
	DueAt                 *time.Time             `json:"due_at"`
	LockAt                *time.Time             `json:"lock_at"`
	UnlockAt              *time.Time             `json:"unlock_at"`
	AllDates              []AssignmentDueDate    `json:"all_dates"`
	PointsPossible        float64                `json:"points_possible"`
	GradingType           string                 `json:"grading_type"`
	Published             bool                   `json:"published"`
	UserSubmitted         bool                   `json:"user_submitted"`
	LockedForUser         bool                   `json:"locked_for_user"`
	LockInfo              *LockInfo              `json:"lock_info,omitempty"`
	QuizID                int64                  `json:"quiz_id,omitempty"`
	DiscussionTopicHeader *DiscussionTopicHeader `json:"discussion_topic,omitempty"`
	URL                   string                 `json:"url,omitempty"`
	HTMLURL               string                 `json:"html_url"`
	Rubric                []RubricCriterion      `json:"rubric,omitempty"`
	UseRubricForGrading   bool                   `json:"use_rubric_for_grading"`
	Submission            *Submission            `json:"submission,omitempty"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return a.DueAt != nil && reference.After(*a.DueAt)
}

// ModuleItemType implements ModuleContent.
func (a Assignment) ModuleItemType() ModuleItemType { return ModuleItemAssignment }

// ModuleItemTitle implements ModuleContent.
func (a Assignment) ModuleItemTitle() string { return a.Name }

// ModuleItemPath implements ModuleContent.
func (a Assignment) ModuleItemPath() string { return pathFor("assignments", a.ID) }

// AssignmentGroup embeds its assignments by value.
type AssignmentGroup struct {
	ID          int64        `json:"id"`
	CourseID    int64        `json:"course_id"`
	Name        string       `json:"name"`
	Assignments []Assignment `json:"assignments"`
}

// LTITool is an external tool installed in a course.
type LTITool struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContextID   int64  `json:"context_id"`
	ContextName string `json:"context_name"`
}

// ModuleItemType implements ModuleContent.
func (t LTITool) ModuleItemType() ModuleItemType { return ModuleItemExternalTool }

// ModuleItemTitle implements ModuleContent.
func (t LTITool) ModuleItemTitle() string { return t.Name }

// ModuleItemPath implements ModuleContent.
func (t LTITool) ModuleItemPath() string { return t.URL }
