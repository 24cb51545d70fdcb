package mockcanvas

import (
	"fmt"
	"slices"
	"time"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// AssignmentParams controls AddAssignment.
type AssignmentParams struct {
	CourseID int64
	// SubmissionTypes defaults to online text entry.
	SubmissionTypes []models.SubmissionType
	// AssignmentGroupID selects the group; a new group is created when it
	// is zero or unknown.
	AssignmentGroupID     int64
	IsQuizzesNext         bool
	LockInfo              *models.LockInfo
	UserSubmitted         bool
	DueAt                 *time.Time
	LockAt                *time.Time
	UnlockAt              *time.Time
	Name                  string
	PointsPossible        *float64
	Description           string
	GradingType           string
	DiscussionTopicHeader *models.DiscussionTopicHeader
	HTMLURL               string
	// QuizID links the assignment to the graded quiz it backs.
	QuizID int64
}

// SubmissionParams controls AddSubmissionForAssignment.
type SubmissionParams struct {
	AssignmentID int64
	UserID       int64
	Type         models.SubmissionType
	Body         string
	URL          string
	Attachment   *models.Attachment
	Comment      *models.SubmissionComment
	// State defaults to "submitted" and Attempt to 1.
	State   string
	Grade   *string
	Attempt int64
	Score   *float64
	Excused bool
}

// StreamItemParams controls AddSubmissionStreamItem.
type StreamItemParams struct {
	UserID       int64
	CourseID     int64
	AssignmentID int64
	SubmissionID int64
	SubmittedAt  *time.Time
	Message      string
	// Type defaults to "submission" and Score to -1.
	Type    string
	Score   *float64
	Grade   *string
	Excused bool
}

// Names of the standard groups created by AddAssignmentsToGroups.
const (
	GroupOverdue  = "overdue"
	GroupUpcoming = "upcoming"
	GroupUndated  = "undated"
	GroupPast     = "past"
)

// AddAssignment creates an assignment and files it into its assignment group.
func (c *Canvas) AddAssignment(params AssignmentParams) models.Assignment {
	var assignment models.Assignment
	c.update(func(s *store.State) {
		assignment = c.addAssignment(s, params)
	})
	return assignment
}

func (c *Canvas) addAssignment(s *store.State, params AssignmentParams) models.Assignment {
	course := s.Courses.MustGet(params.CourseID)

	types := slices.Clone(params.SubmissionTypes)
	if len(types) == 0 {
		types = []models.SubmissionType{models.SubmissionTypeOnlineTextEntry}
	}
	name := params.Name
	if name == "" {
		name = c.randomAssignmentName()
	}

	id := s.NextID()
	assignment := models.Assignment{
		ID:              id,
		CourseID:        course.ID,
		Name:            name,
		Description:     params.Description,
		SubmissionTypes: types,
		DueAt:           params.DueAt,
		LockAt:          params.LockAt,
		UnlockAt:        params.UnlockAt,
		AllDates: []models.AssignmentDueDate{{
			ID:       s.NextID(),
			DueAt:    params.DueAt,
			LockAt:   params.LockAt,
			UnlockAt: params.UnlockAt,
		}},
		PointsPossible:        floatOr(params.PointsPossible, 10),
		GradingType:           stringOr(params.GradingType, "percent"),
		Published:             true,
		UserSubmitted:         params.UserSubmitted,
		LockedForUser:         params.LockInfo != nil,
		LockInfo:              params.LockInfo,
		DiscussionTopicHeader: params.DiscussionTopicHeader,
		HTMLURL:               stringOr(params.HTMLURL, c.webURL("courses/%d/assignments/%d", course.ID, id)),
		QuizID:                params.QuizID,
	}
	if params.IsQuizzesNext {
		assignment.URL = c.apiURL("courses/%d/external_tools/sessionless_launch?assignment_id=%d&launch_type=assessment", course.ID, id)
	}

	group, ok := s.AssignmentGroups.Get(params.AssignmentGroupID)
	if !ok || group.CourseID != course.ID {
		groupID := params.AssignmentGroupID
		if groupID == 0 || ok {
			groupID = s.NextID()
		}
		group = models.AssignmentGroup{ID: groupID, CourseID: course.ID, Name: "Assignments", Assignments: []models.Assignment{}}
		store.MustSucceed("add assignment group", s.AssignmentGroups.Insert(group.ID, group))
		s.AssignmentGroupsByCourse.Add(course.ID, group.ID)
	}
	assignment.AssignmentGroupID = group.ID

	group.Assignments = append(slices.Clone(group.Assignments), assignment)
	store.MustSucceed("file assignment", s.AssignmentGroups.Replace(group.ID, group))
	store.MustSucceed("add assignment", s.Assignments.Insert(assignment.ID, assignment))

	c.logger.Debug().Int64("assignment_id", assignment.ID).Int64("group_id", group.ID).Msg("assignment added")
	return assignment
}

func (c *Canvas) addAssignmentGroup(s *store.State, courseID int64, name string) models.AssignmentGroup {
	group := models.AssignmentGroup{ID: s.NextID(), CourseID: courseID, Name: name, Assignments: []models.Assignment{}}
	store.MustSucceed("add assignment group", s.AssignmentGroups.Insert(group.ID, group))
	s.AssignmentGroupsByCourse.Add(courseID, group.ID)
	return group
}

// replaceAssignment stores a new snapshot of an assignment in the
// assignments table and inside its group.
func (c *Canvas) replaceAssignment(s *store.State, assignment models.Assignment) {
	store.MustSucceed("replace assignment", s.Assignments.Replace(assignment.ID, assignment))

	group, ok := s.AssignmentGroups.Get(assignment.AssignmentGroupID)
	if !ok {
		return
	}
	pos := slices.IndexFunc(group.Assignments, func(a models.Assignment) bool { return a.ID == assignment.ID })
	if pos < 0 {
		return
	}
	group.Assignments = slices.Clone(group.Assignments)
	group.Assignments[pos] = assignment
	store.MustSucceed("replace grouped assignment", s.AssignmentGroups.Replace(group.ID, group))
}

// AddAssignmentsToGroups creates the overdue, upcoming, undated and past
// groups for a course with perGroup assignments each. Every past
// assignment receives a submission from the first user.
func (c *Canvas) AddAssignmentsToGroups(courseID int64, perGroup int) []models.AssignmentGroup {
	var groups []models.AssignmentGroup
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(courseID)
		now := c.now()
		future := now.AddDate(0, 0, 7)
		past := now.AddDate(0, 0, -7)

		overdue := c.addAssignmentGroup(s, course.ID, GroupOverdue)
		upcoming := c.addAssignmentGroup(s, course.ID, GroupUpcoming)
		undated := c.addAssignmentGroup(s, course.ID, GroupUndated)
		pastGroup := c.addAssignmentGroup(s, course.ID, GroupPast)

		urlOnly := []models.SubmissionType{models.SubmissionTypeOnlineURL}
		for range perGroup {
			c.addAssignment(s, AssignmentParams{CourseID: course.ID, SubmissionTypes: urlOnly, DueAt: timePtr(past), AssignmentGroupID: overdue.ID})
			c.addAssignment(s, AssignmentParams{CourseID: course.ID, SubmissionTypes: urlOnly, DueAt: timePtr(future), AssignmentGroupID: upcoming.ID})
			c.addAssignment(s, AssignmentParams{CourseID: course.ID, SubmissionTypes: urlOnly, AssignmentGroupID: undated.ID})
			pastAssignment := c.addAssignment(s, AssignmentParams{CourseID: course.ID, SubmissionTypes: urlOnly, DueAt: timePtr(past), AssignmentGroupID: pastGroup.ID})

			users := s.Users.IDs()
			if len(users) == 0 {
				panic(fmt.Errorf("%w: user for past assignment %d", store.ErrMissingParent, pastAssignment.ID))
			}
			c.addSubmission(s, SubmissionParams{
				AssignmentID: pastAssignment.ID,
				UserID:       users[0],
				Type:         models.SubmissionTypeOnlineURL,
				URL:          "https://google.com",
			})
		}

		for _, id := range []int64{overdue.ID, upcoming.ID, undated.ID, pastGroup.ID} {
			groups = append(groups, s.AssignmentGroups.MustGet(id))
		}
	})
	return groups
}

// AddDiscussionTopicToAssignment links an existing discussion to an assignment.
func (c *Canvas) AddDiscussionTopicToAssignment(assignmentID, topicID int64) models.Assignment {
	var assignment models.Assignment
	c.update(func(s *store.State) {
		assignment = s.Assignments.MustGet(assignmentID)
		header := s.DiscussionHeaders.MustGet(topicID)
		assignment.DiscussionTopicHeader = &header
		c.replaceAssignment(s, assignment)
	})
	return assignment
}

// AddRubricToAssignment attaches rubric criteria and enables rubric grading.
func (c *Canvas) AddRubricToAssignment(assignmentID int64, criteria []models.RubricCriterion) models.Assignment {
	var assignment models.Assignment
	c.update(func(s *store.State) {
		assignment = s.Assignments.MustGet(assignmentID)
		assignment.Rubric = slices.Clone(criteria)
		assignment.UseRubricForGrading = true
		c.replaceAssignment(s, assignment)
	})
	return assignment
}

// AddSubmissionForAssignment records one submission attempt and returns the
// root submission of the (assignment, user) pair. The root keeps every
// attempt in SubmissionHistory and is mirrored into the assignment.
func (c *Canvas) AddSubmissionForAssignment(params SubmissionParams) models.Submission {
	var root models.Submission
	c.update(func(s *store.State) {
		root = c.addSubmission(s, params)
	})
	return root
}

// AddSubmissionsForAssignment records one submission per type and returns
// the root snapshot after each call.
func (c *Canvas) AddSubmissionsForAssignment(params SubmissionParams, types []models.SubmissionType) []models.Submission {
	roots := make([]models.Submission, 0, len(types))
	c.update(func(s *store.State) {
		for _, kind := range types {
			call := params
			call.Type = kind
			roots = append(roots, c.addSubmission(s, call))
		}
	})
	return roots
}

func (c *Canvas) newSubmission(id int64, params SubmissionParams, attempt int64, late bool, now time.Time) models.Submission {
	attachments := []models.Attachment{}
	mediaType := ""
	if params.Attachment != nil {
		attachments = append(attachments, *params.Attachment)
		mediaType = params.Attachment.ContentType
	}
	comments := []models.SubmissionComment{}
	if params.Comment != nil {
		comments = append(comments, *params.Comment)
	}
	score := floatOr(params.Score, 0)

	return models.Submission{
		ID:                 id,
		AssignmentID:       params.AssignmentID,
		UserID:             params.UserID,
		Attempt:            attempt,
		WorkflowState:      stringOr(params.State, models.SubmissionStatusSubmitted),
		SubmissionType:     params.Type,
		Body:               params.Body,
		URL:                params.URL,
		PreviewURL:         params.URL,
		Grade:              cloneString(params.Grade),
		Score:              score,
		EnteredScore:       score,
		Late:               late,
		Excused:            params.Excused,
		MediaContentType:   mediaType,
		Attachments:        attachments,
		SubmissionComments: comments,
		SubmittedAt:        now,
		PostedAt:           now,
		SubmissionHistory:  []models.Submission{},
	}
}

func (c *Canvas) addSubmission(s *store.State, params SubmissionParams) models.Submission {
	assignment := s.Assignments.MustGet(params.AssignmentID)
	s.Users.MustGet(params.UserID)

	now := c.now()
	late := assignment.DueAt != nil && assignment.DueAt.Before(now)
	attempt := params.Attempt
	if attempt == 0 {
		attempt = 1
	}

	submission := c.newSubmission(s.NextID(), params, attempt, late, now)

	var root models.Submission
	found := false
	for _, id := range s.SubmissionsByAssignment.Lookup(assignment.ID) {
		candidate := s.Submissions.MustGet(id)
		if candidate.UserID == params.UserID {
			root, found = candidate, true
			break
		}
	}

	switch {
	case !found:
		root = c.newSubmission(s.NextID(), params, 1, late, now)
		store.MustSucceed("add root submission", s.Submissions.Insert(root.ID, root))
		s.SubmissionsByAssignment.Add(assignment.ID, root.ID)
	case params.Grade != nil && (root.Grade == nil || *root.Grade != *params.Grade):
		root.Grade = cloneString(params.Grade)
		root.SubmissionType = params.Type
		root.WorkflowState = submission.WorkflowState
		s.SubmissionsByAssignment.MoveToEnd(assignment.ID, root.ID)
	}

	root.SubmissionHistory = append(slices.Clone(root.SubmissionHistory), submission)
	store.MustSucceed("update root submission", s.Submissions.Replace(root.ID, root))

	mirrored := root
	assignment.Submission = &mirrored
	c.replaceAssignment(s, assignment)

	c.logger.Debug().
		Int64("assignment_id", assignment.ID).
		Int64("user_id", params.UserID).
		Int64("root_id", root.ID).
		Int("attempts", len(root.SubmissionHistory)).
		Msg("submission added")
	return root
}

// AddSubmissionStreamItem adds a submission entry to a user's activity stream.
func (c *Canvas) AddSubmissionStreamItem(params StreamItemParams) models.StreamItem {
	var item models.StreamItem
	c.update(func(s *store.State) {
		s.Users.MustGet(params.UserID)
		course := s.Courses.MustGet(params.CourseID)
		assignment := s.Assignments.MustGet(params.AssignmentID)
		message := params.Message
		if message == "" {
			message = c.faker.Sentence(8)
		}
		item = models.StreamItem{
			ID:           s.NextID(),
			CourseID:     course.ID,
			AssignmentID: assignment.ID,
			UserID:       params.UserID,
			Title:        assignment.Name,
			Message:      message,
			Type:         stringOr(params.Type, "submission"),
			SubmittedAt:  params.SubmittedAt,
			HTMLURL:      c.webURL("courses/%d/assignments/%d/submissions/%d", course.ID, assignment.ID, params.SubmissionID),
			ContextType:  "user",
			Score:        floatOr(params.Score, -1),
			Grade:        cloneString(params.Grade),
			Excused:      params.Excused,
		}
		store.MustSucceed("add stream item", s.StreamItems.Insert(item.ID, item))
		s.StreamItemsByUser.Add(item.UserID, item.ID)
	})
	return item
}
