package models

import "time"

const (
	// SubmissionStatusSubmitted indicates the submission has been uploaded but not graded.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusGraded indicates the submission has been evaluated.
	SubmissionStatusGraded = "graded"
	// SubmissionStatusUnsubmitted indicates nothing was turned in yet.
	SubmissionStatusUnsubmitted = "unsubmitted"
	// SubmissionStatusPendingReview indicates a submission waiting for manual review.
	SubmissionStatusPendingReview = "pending_review"
)

// Attachment is a file attached to a submission.
type Attachment struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	ContentType string `json:"content-type"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
}

// SubmissionComment is a comment left on a submission.
type SubmissionComment struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Submission represents one attempt at an assignment. For the root
// submission of an (assignment, user) pair, SubmissionHistory holds every
// attempt oldest first.
type Submission struct {
	ID                 int64               `json:"id"`
	AssignmentID       int64               `json:"assignment_id"`
	UserID             int64               `json:"user_id"`
	Attempt            int64               `json:"attempt"`
	WorkflowState      string              `json:"workflow_state"`
	SubmissionType     SubmissionType      `json:"submission_type"`
	Body               string              `json:"body,omitempty"`
	URL                string              `json:"url,omitempty"`
	PreviewURL         string              `json:"preview_url,omitempty"`
	Grade              *string             `json:"grade"`
	Score              float64             `json:"score"`
	EnteredScore       float64             `json:"entered_score"`
	Late               bool                `json:"late"`
	Excused            bool                `json:"excused"`
	MediaContentType   string              `json:"media_content_type,omitempty"`
	Attachments        []Attachment        `json:"attachments"`
	SubmissionComments []SubmissionComment `json:"submission_comments"`
	SubmittedAt        time.Time           `json:"submitted_at"`
	PostedAt           time.Time           `json:"posted_at"`
	SubmissionHistory  []Submission        `json:"submission_history"`
}

// IsGraded reports whether the submission has a final grade.
func (s Submission) IsGraded() bool {
	return s.WorkflowState == SubmissionStatusGraded || s.Grade != nil
}
