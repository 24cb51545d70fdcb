package mockcanvas

import (
	"slices"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

func collect[T store.Cloner[T]](table *store.Table[T], ids []int64) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if value, ok := table.Get(id); ok {
			out = append(out, value)
		}
	}
	return out
}

func get[T store.Cloner[T]](c *Canvas, pick func(*store.State) *store.Table[T], id int64) (T, bool) {
	var (
		value T
		ok    bool
	)
	c.view(func(s *store.State) {
		value, ok = pick(s).Get(id)
	})
	return value, ok
}

func (c *Canvas) usersWithRole(role models.EnrollmentType) []models.User {
	var users []models.User
	c.view(func(s *store.State) {
		seen := make(map[int64]struct{})
		users = []models.User{}
		for _, enrollment := range s.Enrollments.All() {
			if enrollment.Role != role {
				continue
			}
			if _, dup := seen[enrollment.UserID]; dup {
				continue
			}
			seen[enrollment.UserID] = struct{}{}
			users = append(users, s.Users.MustGet(enrollment.UserID))
		}
	})
	return users
}

// Counts returns the number of stored entities per kind.
func (c *Canvas) Counts() map[string]int {
	var counts map[string]int
	c.view(func(s *store.State) { counts = s.Counts() })
	return counts
}

// Students returns every user with at least one student enrollment, in the
// order of their first such enrollment.
func (c *Canvas) Students() []models.User {
	return c.usersWithRole(models.EnrollmentStudent)
}

// Teachers returns every user with at least one teacher enrollment.
func (c *Canvas) Teachers() []models.User {
	return c.usersWithRole(models.EnrollmentTeacher)
}

// Parents returns every user with at least one observer enrollment.
func (c *Canvas) Parents() []models.User {
	return c.usersWithRole(models.EnrollmentObserver)
}

// TokenFor returns the auth token issued to a user.
func (c *Canvas) TokenFor(userID int64) (string, bool) {
	var (
		token string
		ok    bool
	)
	c.view(func(s *store.State) {
		for candidate, owner := range s.Tokens {
			if owner == userID {
				token, ok = candidate, true
				return
			}
		}
	})
	return token, ok
}

// UserForToken resolves an auth token to its user.
func (c *Canvas) UserForToken(token string) (models.User, bool) {
	var (
		user models.User
		ok   bool
	)
	c.view(func(s *store.State) {
		if id, found := s.Tokens[token]; found {
			user, ok = s.Users.Get(id)
		}
	})
	return user, ok
}

// FileContents returns the stored text of a file.
func (c *Canvas) FileContents(fileID int64) (string, bool) {
	var (
		contents string
		ok       bool
	)
	c.view(func(s *store.State) {
		contents, ok = s.FileContents[fileID]
	})
	return contents, ok
}

// User returns a user snapshot.
func (c *Canvas) User(id int64) (models.User, bool) {
	return get(c, func(s *store.State) *store.Table[models.User] { return s.Users }, id)
}

// Users returns every user by ascending id.
func (c *Canvas) Users() []models.User {
	var out []models.User
	c.view(func(s *store.State) { out = s.Users.All() })
	return out
}

// UserSettings returns the settings of a user.
func (c *Canvas) UserSettings(userID int64) (models.UserSettings, bool) {
	var (
		settings models.UserSettings
		ok       bool
	)
	c.view(func(s *store.State) { settings, ok = s.UserSettings[userID] })
	return settings, ok
}

// Terms returns every term by ascending id.
func (c *Canvas) Terms() []models.Term {
	var out []models.Term
	c.view(func(s *store.State) { out = s.Terms.All() })
	return out
}

// Course returns a course snapshot.
func (c *Canvas) Course(id int64) (models.Course, bool) {
	return get(c, func(s *store.State) *store.Table[models.Course] { return s.Courses }, id)
}

// Courses returns every course by ascending id.
func (c *Canvas) Courses() []models.Course {
	var out []models.Course
	c.view(func(s *store.State) { out = s.Courses.All() })
	return out
}

// Tabs returns the navigation tabs of a course.
func (c *Canvas) Tabs(courseID int64) []models.Tab {
	var out []models.Tab
	c.view(func(s *store.State) { out = slices.Clone(s.CourseTabs[courseID]) })
	return out
}

// GradingPeriods returns the grading periods recorded for a course.
func (c *Canvas) GradingPeriods(courseID int64) []models.GradingPeriod {
	var out []models.GradingPeriod
	c.view(func(s *store.State) { out = slices.Clone(s.GradingPeriods[courseID]) })
	return out
}

// Enrollments returns every enrollment by ascending id.
func (c *Canvas) Enrollments() []models.Enrollment {
	var out []models.Enrollment
	c.view(func(s *store.State) { out = s.Enrollments.All() })
	return out
}

// Assignment returns an assignment snapshot.
func (c *Canvas) Assignment(id int64) (models.Assignment, bool) {
	return get(c, func(s *store.State) *store.Table[models.Assignment] { return s.Assignments }, id)
}

// AssignmentGroups returns the assignment groups of a course in creation order.
func (c *Canvas) AssignmentGroups(courseID int64) []models.AssignmentGroup {
	var out []models.AssignmentGroup
	c.view(func(s *store.State) { out = collect(s.AssignmentGroups, s.AssignmentGroupsByCourse.Lookup(courseID)) })
	return out
}

// Submissions returns the root submissions of an assignment. A root whose
// grade changed most recently comes last.
func (c *Canvas) Submissions(assignmentID int64) []models.Submission {
	var out []models.Submission
	c.view(func(s *store.State) { out = collect(s.Submissions, s.SubmissionsByAssignment.Lookup(assignmentID)) })
	return out
}

// RootSubmission returns the root submission of an (assignment, user) pair.
func (c *Canvas) RootSubmission(assignmentID, userID int64) (models.Submission, bool) {
	for _, submission := range c.Submissions(assignmentID) {
		if submission.UserID == userID {
			return submission, true
		}
	}
	return models.Submission{}, false
}

// LTITools returns the external tools installed in a course.
func (c *Canvas) LTITools(courseID int64) []models.LTITool {
	var out []models.LTITool
	c.view(func(s *store.State) { out = collect(s.LTITools, s.LTIToolsByCourse.Lookup(courseID)) })
	return out
}

// Quiz returns a quiz snapshot.
func (c *Canvas) Quiz(id int64) (models.Quiz, bool) {
	return get(c, func(s *store.State) *store.Table[models.Quiz] { return s.Quizzes }, id)
}

// Quizzes returns the quizzes of a course in creation order.
func (c *Canvas) Quizzes(courseID int64) []models.Quiz {
	var out []models.Quiz
	c.view(func(s *store.State) { out = collect(s.Quizzes, s.QuizzesByCourse.Lookup(courseID)) })
	return out
}

// QuizQuestions returns the questions of a quiz by position.
func (c *Canvas) QuizQuestions(quizID int64) []models.QuizQuestion {
	var out []models.QuizQuestion
	c.view(func(s *store.State) { out = collect(s.QuizQuestions, s.QuestionsByQuiz.Lookup(quizID)) })
	return out
}

// QuizSubmissions returns the attempts recorded for a quiz.
func (c *Canvas) QuizSubmissions(quizID int64) []models.QuizSubmission {
	var out []models.QuizSubmission
	c.view(func(s *store.State) { out = collect(s.QuizSubmissions, s.QuizSubmissionsByQuiz.Lookup(quizID)) })
	return out
}

// QuizSubmissionQuestions returns the questions shown in a quiz attempt.
func (c *Canvas) QuizSubmissionQuestions(quizSubmissionID int64) []models.QuizSubmissionQuestion {
	var out []models.QuizSubmissionQuestion
	c.view(func(s *store.State) { out = models.CloneEach(s.QuizSubmissionQuestions[quizSubmissionID]) })
	return out
}

// Module returns a module snapshot.
func (c *Canvas) Module(id int64) (models.ModuleObject, bool) {
	return get(c, func(s *store.State) *store.Table[models.ModuleObject] { return s.Modules }, id)
}

// Modules returns the modules of a course by position.
func (c *Canvas) Modules(courseID int64) []models.ModuleObject {
	var out []models.ModuleObject
	c.view(func(s *store.State) { out = collect(s.Modules, s.ModulesByCourse.Lookup(courseID)) })
	return out
}

// DiscussionTopicHeader returns a discussion header snapshot.
func (c *Canvas) DiscussionTopicHeader(id int64) (models.DiscussionTopicHeader, bool) {
	return get(c, func(s *store.State) *store.Table[models.DiscussionTopicHeader] { return s.DiscussionHeaders }, id)
}

// DiscussionTopic returns the entry tree of a discussion.
func (c *Canvas) DiscussionTopic(id int64) (models.DiscussionTopic, bool) {
	return get(c, func(s *store.State) *store.Table[models.DiscussionTopic] { return s.DiscussionTopics }, id)
}

// Discussions returns the course-level discussion headers, announcements included.
func (c *Canvas) Discussions(courseID int64) []models.DiscussionTopicHeader {
	var out []models.DiscussionTopicHeader
	c.view(func(s *store.State) { out = collect(s.DiscussionHeaders, s.DiscussionsByCourse.Lookup(courseID)) })
	return out
}

// GroupDiscussions returns the discussion headers of a group.
func (c *Canvas) GroupDiscussions(groupID int64) []models.DiscussionTopicHeader {
	var out []models.DiscussionTopicHeader
	c.view(func(s *store.State) { out = collect(s.DiscussionHeaders, s.DiscussionsByGroup.Lookup(groupID)) })
	return out
}

// Pages returns the pages of a course.
func (c *Canvas) Pages(courseID int64) []models.Page {
	var out []models.Page
	c.view(func(s *store.State) { out = collect(s.Pages, s.PagesByCourse.Lookup(courseID)) })
	return out
}

// GroupPages returns the pages of a group.
func (c *Canvas) GroupPages(groupID int64) []models.Page {
	var out []models.Page
	c.view(func(s *store.State) { out = collect(s.Pages, s.PagesByGroup.Lookup(groupID)) })
	return out
}

// File returns a file or folder snapshot.
func (c *Canvas) File(id int64) (models.FileFolder, bool) {
	return get(c, func(s *store.State) *store.Table[models.FileFolder] { return s.Files }, id)
}

// FolderChildren returns the files and subfolders of a folder.
func (c *Canvas) FolderChildren(folderID int64) []models.FileFolder {
	var out []models.FileFolder
	c.view(func(s *store.State) { out = collect(s.Files, s.FolderChildren.Lookup(folderID)) })
	return out
}

// RootFolder returns the root folder of a context such as "course_12".
func (c *Canvas) RootFolder(contextType string, contextID int64) (models.FileFolder, bool) {
	var (
		folder models.FileFolder
		ok     bool
	)
	c.view(func(s *store.State) {
		if id, found := s.RootFolders[contextKey(contextType, contextID)]; found {
			folder, ok = s.Files.Get(id)
		}
	})
	return folder, ok
}

// Conversation returns a conversation snapshot.
func (c *Canvas) Conversation(id int64) (models.Conversation, bool) {
	return get(c, func(s *store.State) *store.Table[models.Conversation] { return s.Conversations }, id)
}

// Conversations returns every stored conversation by ascending id.
func (c *Canvas) Conversations() []models.Conversation {
	var out []models.Conversation
	c.view(func(s *store.State) { out = s.Conversations.All() })
	return out
}

// CourseConversations returns the conversations attached to a course.
func (c *Canvas) CourseConversations(courseID int64) []models.Conversation {
	var out []models.Conversation
	c.view(func(s *store.State) { out = models.CloneEach(s.CourseConversations[courseID]) })
	return out
}

// Recipients returns the student, teacher and group recipients of a course.
func (c *Canvas) Recipients(courseID int64) (students, teachers, groups []models.Recipient) {
	c.view(func(s *store.State) {
		students = models.CloneEach(s.StudentRecipients[courseID])
		teachers = models.CloneEach(s.TeacherRecipients[courseID])
		groups = models.CloneEach(s.RecipientGroups[courseID])
	})
	return students, teachers, groups
}

// CalendarEvents returns the events of a context such as "course_12" or "user_3".
func (c *Canvas) CalendarEvents(contextCode string) []models.ScheduleItem {
	var out []models.ScheduleItem
	c.view(func(s *store.State) { out = collect(s.CalendarEvents, s.EventsByContext.Lookup(contextCode)) })
	return out
}

// PlannerItems returns the to-dos and plannables of a user.
func (c *Canvas) PlannerItems(userID int64) []models.PlannerItem {
	var out []models.PlannerItem
	c.view(func(s *store.State) { out = collect(s.PlannerItems, s.PlannerItemsByUser.Lookup(userID)) })
	return out
}

// AccountNotifications returns the active global announcements.
func (c *Canvas) AccountNotifications() []models.AccountNotification {
	var out []models.AccountNotification
	c.view(func(s *store.State) { out = s.AccountNotifications.All() })
	return out
}

// Group returns a group snapshot.
func (c *Canvas) Group(id int64) (models.Group, bool) {
	return get(c, func(s *store.State) *store.Table[models.Group] { return s.Groups }, id)
}

// Groups returns the groups of a course.
func (c *Canvas) Groups(courseID int64) []models.Group {
	var out []models.Group
	c.view(func(s *store.State) { out = collect(s.Groups, s.GroupsByCourse.Lookup(courseID)) })
	return out
}

// Bookmarks returns the bookmarks of a user by position.
func (c *Canvas) Bookmarks(userID int64) []models.Bookmark {
	var out []models.Bookmark
	c.view(func(s *store.State) { out = collect(s.Bookmarks, s.BookmarksByUser.Lookup(userID)) })
	return out
}

// StreamItems returns the activity stream of a user.
func (c *Canvas) StreamItems(userID int64) []models.StreamItem {
	var out []models.StreamItem
	c.view(func(s *store.State) { out = collect(s.StreamItems, s.StreamItemsByUser.Lookup(userID)) })
	return out
}

// Alerts returns the observer alerts raised about a student.
func (c *Canvas) Alerts(studentID int64) []models.Alert {
	var out []models.Alert
	c.view(func(s *store.State) { out = collect(s.Alerts, s.AlertsByStudent.Lookup(studentID)) })
	return out
}

// AlertThresholds returns the alert thresholds configured for a student.
func (c *Canvas) AlertThresholds(studentID int64) []models.AlertThreshold {
	var out []models.AlertThreshold
	c.view(func(s *store.State) { out = collect(s.AlertThresholds, s.ThresholdsByStudent.Lookup(studentID)) })
	return out
}

// PairedStudent resolves a pairing code to the student who issued it.
func (c *Canvas) PairedStudent(code string) (models.User, bool) {
	var (
		user models.User
		ok   bool
	)
	c.view(func(s *store.State) {
		if id, found := s.PairingCodes[code]; found {
			user, ok = s.Users.Get(id)
		}
	})
	return user, ok
}

// DocSession returns a doc viewer session with its annotations and the
// pending reply staged for it, if any.
func (c *Canvas) DocSession(id string) (models.DocSession, []models.Annotation, *models.Annotation, bool) {
	var (
		session     models.DocSession
		annotations []models.Annotation
		pending     *models.Annotation
		ok          bool
	)
	c.view(func(s *store.State) {
		session, ok = s.DocSessions[id]
		annotations = models.CloneEach(s.Annotations[id])
		if reply, staged := s.PendingAnnotations[id]; staged {
			reply = reply.Clone()
			pending = &reply
		}
	})
	return session, annotations, pending, ok
}
