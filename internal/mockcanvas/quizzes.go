package mockcanvas

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

const defaultQuizTimeLimit = 5 * time.Minute

// QuizParams controls AddQuizToCourse.
type QuizParams struct {
	CourseID    int64
	Title       string
	Description string
	// QuizType defaults to a practice quiz. Graded ("assignment") quizzes
	// get a backing assignment.
	QuizType       string
	TimeLimit      time.Duration
	DueAt          *time.Time
	LockAt         *time.Time
	UnlockAt       *time.Time
	Published      *bool
	PointsPossible int
	// AssignmentGroupID files the backing assignment of a graded quiz. A new
	// group is created when it is zero or unknown.
	AssignmentGroupID int64
}

// QuestionParams controls AddQuestionToQuiz.
type QuestionParams struct {
	QuizID int64
	Name   string
	Text   string
	// Type defaults to a multiple choice question worth 5 points.
	Type           string
	PointsPossible *int
	Answers        []models.QuizAnswer
}

// AddQuizToCourse creates a quiz in a course.
func (c *Canvas) AddQuizToCourse(params QuizParams) models.Quiz {
	var quiz models.Quiz
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(params.CourseID)
		title := params.Title
		if title == "" {
			title = c.randomTitle()
		}
		description := params.Description
		if description == "" {
			description = c.faker.Sentence(10)
		}
		limit := params.TimeLimit
		if limit == 0 {
			limit = defaultQuizTimeLimit
		}

		quizID := s.NextID()
		url := c.apiURL("courses/%d/quizzes/%d", course.ID, quizID)
		quizType := stringOr(params.QuizType, models.QuizTypePractice)

		var assignmentID int64
		if quizType == models.QuizTypeAssignment {
			var points *float64
			if params.PointsPossible > 0 {
				points = Float(float64(params.PointsPossible))
			}
			assignment := c.addAssignment(s, AssignmentParams{
				CourseID:          course.ID,
				SubmissionTypes:   []models.SubmissionType{models.SubmissionTypeOnlineQuiz},
				AssignmentGroupID: params.AssignmentGroupID,
				DueAt:             params.DueAt,
				LockAt:            params.LockAt,
				UnlockAt:          params.UnlockAt,
				Name:              title,
				PointsPossible:    points,
				Description:       description,
				HTMLURL:           c.webURL("courses/%d/quizzes/%d", course.ID, quizID),
				QuizID:            quizID,
			})
			assignmentID = assignment.ID
		}

		quiz = models.Quiz{
			ID:             quizID,
			CourseID:       course.ID,
			Title:          title,
			Description:    description,
			QuizType:       quizType,
			MobileURL:      url,
			HTMLURL:        url,
			TimeLimit:      limit,
			DueAt:          params.DueAt,
			LockAt:         params.LockAt,
			UnlockAt:       params.UnlockAt,
			AllDates:       []models.AssignmentDueDate{{ID: s.NextID(), DueAt: params.DueAt, LockAt: params.LockAt, UnlockAt: params.UnlockAt}},
			Published:      boolOr(params.Published, true),
			AssignmentID:   assignmentID,
			PointsPossible: params.PointsPossible,
			QuestionTypes:  []string{},
		}
		store.MustSucceed("add quiz", s.Quizzes.Insert(quiz.ID, quiz))
		s.QuizzesByCourse.Add(course.ID, quiz.ID)

		c.logger.Debug().Int64("quiz_id", quiz.ID).Int64("assignment_id", assignmentID).Msg("quiz added")
	})
	return quiz
}

// AddQuestionToQuiz appends a question and updates the quiz's points,
// question count and question types.
func (c *Canvas) AddQuestionToQuiz(params QuestionParams) models.QuizQuestion {
	var question models.QuizQuestion
	c.update(func(s *store.State) {
		quiz := s.Quizzes.MustGet(params.QuizID)
		points := 5
		if params.PointsPossible != nil {
			points = *params.PointsPossible
		}
		kind := stringOr(params.Type, "multiple_choice_question")
		answers := slices.Clone(params.Answers)
		if answers == nil {
			answers = []models.QuizAnswer{}
		}

		question = models.QuizQuestion{
			ID:             s.NextID(),
			QuizID:         quiz.ID,
			Position:       quiz.QuestionCount,
			QuestionName:   params.Name,
			QuestionType:   kind,
			QuestionText:   params.Text,
			PointsPossible: points,
			Answers:        answers,
		}
		store.MustSucceed("add quiz question", s.QuizQuestions.Insert(question.ID, question))
		s.QuestionsByQuiz.Add(quiz.ID, question.ID)

		quiz.PointsPossible += points
		quiz.QuestionCount++
		quiz.QuestionTypes = append(slices.Clone(quiz.QuestionTypes), kind)
		store.MustSucceed("update quiz", s.Quizzes.Replace(quiz.ID, quiz))
	})
	return question
}

// AddQuizSubmission records a quiz attempt. When the quiz is backed by an
// assignment an online_quiz submission is added to it as well. State
// defaults to "untaken".
func (c *Canvas) AddQuizSubmission(quizID, userID int64, state string, grade *string) models.QuizSubmission {
	var submission models.QuizSubmission
	c.update(func(s *store.State) {
		quiz := s.Quizzes.MustGet(quizID)
		s.Users.MustGet(userID)
		state = stringOr(state, "untaken")
		now := c.now()

		submission = models.QuizSubmission{
			ID:              s.NextID(),
			QuizID:          quiz.ID,
			UserID:          userID,
			StartedAt:       now,
			EndAt:           now.Add(quiz.TimeLimit),
			WorkflowState:   state,
			ValidationToken: uuid.NewString(),
		}
		if quiz.AssignmentID != 0 {
			root := c.addSubmission(s, SubmissionParams{
				AssignmentID: quiz.AssignmentID,
				UserID:       userID,
				Type:         models.SubmissionTypeOnlineQuiz,
				State:        state,
				Grade:        grade,
			})
			submission.SubmissionID = root.ID
		} else {
			submission.SubmissionID = s.NextID()
		}
		store.MustSucceed("add quiz submission", s.QuizSubmissions.Insert(submission.ID, submission))
		s.QuizSubmissionsByQuiz.Add(quiz.ID, submission.ID)

		questions := []models.QuizSubmissionQuestion{}
		for _, id := range s.QuestionsByQuiz.Lookup(quiz.ID) {
			question := s.QuizQuestions.MustGet(id)
			answers := make([]models.QuizSubmissionAnswer, 0, len(question.Answers))
			for _, answer := range question.Answers {
				answers = append(answers, models.QuizSubmissionAnswer{Text: answer.AnswerText, Weight: answer.AnswerWeight})
			}
			questions = append(questions, models.QuizSubmissionQuestion{
				ID:           question.ID,
				QuizID:       quiz.ID,
				QuestionName: question.QuestionName,
				QuestionType: question.QuestionType,
				QuestionText: question.QuestionText,
				Answers:      answers,
			})
		}
		s.QuizSubmissionQuestions[submission.ID] = questions
	})
	return submission
}
