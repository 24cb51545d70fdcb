package models

import "time"

const (
	// QuizTypePractice is an ungraded practice quiz.
	QuizTypePractice = "practice_quiz"
	// QuizTypeAssignment is a graded quiz backed by an assignment.
	QuizTypeAssignment = "assignment"
	// QuizTypeGradedSurvey is a graded survey.
	QuizTypeGradedSurvey = "graded_survey"
	// QuizTypeSurvey is an ungraded survey.
	QuizTypeSurvey = "survey"
)

// Quiz is a classic quiz definition.
type Quiz struct {
	ID             int64               `json:"id"`
	CourseID       int64               `json:"course_id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	QuizType       string              `json:"quiz_type"`
	MobileURL      string              `json:"mobile_url"`
	HTMLURL        string              `json:"html_url"`
	TimeLimit      time.Duration       `json:"time_limit"`
	DueAt          *time.Time          `json:"due_at"`
	LockAt         *time.Time          `json:"lock_at"`
	UnlockAt       *time.Time          `json:"unlock_at"`
	AllDates       []AssignmentDueDate `json:"all_dates"`
	Published      bool                `json:"published"`
	AssignmentID   int64               `json:"assignment_id,omitempty"`
	PointsPossible int                 `json:"points_possible"`
	QuestionCount  int                 `json:"question_count"`
	QuestionTypes  []string            `json:"question_types"`
}

// ModuleItemType implements ModuleContent.
func (q Quiz) ModuleItemType() ModuleItemType { return ModuleItemQuiz }

// ModuleItemTitle implements ModuleContent.
func (q Quiz) ModuleItemTitle() string { return q.Title }

// ModuleItemPath implements ModuleContent.
func (q Quiz) ModuleItemPath() string { return pathFor("quizzes", q.ID) }

// QuizAnswer is a possible answer to a quiz question.
type QuizAnswer struct {
	ID           int64  `json:"id"`
	AnswerText   string `json:"text"`
	AnswerWeight int    `json:"weight"`
}

// QuizQuestion belongs to a quiz and is positioned by insertion order.
type QuizQuestion struct {
	ID             int64        `json:"id"`
	QuizID         int64        `json:"quiz_id"`
	Position       int          `json:"position"`
	QuestionName   string       `json:"question_name"`
	QuestionType   string       `json:"question_type"`
	QuestionText   string       `json:"question_text"`
	PointsPossible int          `json:"points_possible"`
	Answers        []QuizAnswer `json:"answers"`
}

// QuizSubmission is a user's attempt at a quiz.
type QuizSubmission struct {
	ID              int64     `json:"id"`
	QuizID          int64     `json:"quiz_id"`
	UserID          int64     `json:"user_id"`
	SubmissionID    int64     `json:"submission_id"`
	StartedAt       time.Time `json:"started_at"`
	EndAt           time.Time `json:"end_at"`
	WorkflowState   string    `json:"workflow_state"`
	ValidationToken string    `json:"validation_token"`
}

// QuizSubmissionAnswer is the answer option shown inside a quiz submission.
type QuizSubmissionAnswer struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// QuizSubmissionQuestion mirrors a quiz question for a specific submission.
type QuizSubmissionQuestion struct {
	ID           int64                  `json:"id"`
	QuizID       int64                  `json:"quiz_id"`
	QuestionName string                 `json:"question_name"`
	QuestionType string                 `json:"question_type"`
	QuestionText string                 `json:"question_text"`
	Answers      []QuizSubmissionAnswer `json:"answers"`
}
