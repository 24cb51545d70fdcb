package mockcanvas

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/models"
)

func TestDiscussionRepliesTrackUnreadCount(t *testing.T) {
	c := newTestCanvas(t)
	author := c.AddUser()
	replier := c.AddUser()
	course := c.AddCourse(CourseParams{})

	header := c.AddDiscussionTopicToCourse(DiscussionParams{
		CourseID: course.ID,
		UserID:   author.ID,
		Title:    "Week <b>one</b>",
		Message:  `<p onclick="steal()">Say hi</p><script>alert(1)</script>`,
	})
	require.Equal(t, 0, header.UnreadCount)
	require.Equal(t, "Week <b>one</b>", header.Title)
	require.NotContains(t, header.Message, "script")
	require.NotContains(t, header.Message, "onclick")
	require.Equal(t, author.ID, header.Author.ID)

	for i := range 3 {
		entry := c.AddReplyToDiscussion(header.ID, replier.ID, ReplyParams{Message: "reply"})
		require.True(t, entry.Unread)

		stored, ok := c.DiscussionTopicHeader(header.ID)
		require.True(t, ok)
		topic, ok := c.DiscussionTopic(header.ID)
		require.True(t, ok)
		require.Equal(t, i+1, stored.UnreadCount)
		require.Len(t, topic.View, stored.UnreadCount)
		require.Len(t, topic.UnreadEntries, stored.UnreadCount)
		require.Equal(t, entry.ID, topic.UnreadEntries[i])
	}

	require.Len(t, c.Discussions(course.ID), 1)
}

func TestFixtureTextKeepsPunctuation(t *testing.T) {
	c := newTestCanvas(t)
	author := c.AddUser()
	course := c.AddCourse(CourseParams{})

	header := c.AddDiscussionTopicToCourse(DiscussionParams{
		CourseID: course.ID,
		UserID:   author.ID,
		Title:    "Tom's Q&A",
		Message:  `<p>Bring "notes" & snacks</p>`,
	})
	require.Equal(t, "Tom's Q&A", header.Title)
	require.Equal(t, `<p>Bring "notes" & snacks</p>`, header.Message)

	entry := c.AddReplyToDiscussion(header.ID, author.ID, ReplyParams{Message: "Rock & roll, isn't it?"})
	require.Equal(t, "Rock & roll, isn't it?", entry.Message)

	page := c.AddPageToCourse(PageParams{CourseID: course.ID, Title: "Q&A", Body: "Rock & roll"})
	require.Equal(t, "Q&A", page.Title)
	require.Equal(t, "Rock & roll", page.Body)

	stored, ok := c.DiscussionTopicHeader(header.ID)
	require.True(t, ok)
	require.Equal(t, "Tom's Q&A", stored.Title)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestGroupDiscussionsAndPages(t *testing.T) {
	c := newTestCanvas(t)
	user := c.AddUser()
	course := c.AddCourse(CourseParams{})
	group := c.AddGroupToCourse(GroupParams{CourseID: course.ID, MemberIDs: []int64{user.ID}})
	require.NotEmpty(t, group.Name)
	require.True(t, group.Permissions.CanCreateAnnouncement)

	c.AddDiscussionTopicToCourse(DiscussionParams{CourseID: course.ID, UserID: user.ID, GroupID: group.ID, IsAnnouncement: true})
	require.Empty(t, c.Discussions(course.ID))
	announcements := c.GroupDiscussions(group.ID)
	require.Len(t, announcements, 1)
	require.True(t, announcements[0].Announcement)

	page := c.AddPageToCourse(PageParams{CourseID: course.ID, Title: "Course Syllabus Notes", FrontPage: true})
	require.Positive(t, page.ID)
	require.Equal(t, "course-syllabus-notes", page.URL)
	require.Len(t, c.Pages(course.ID), 1)

	c.AddPageToCourse(PageParams{CourseID: course.ID, GroupID: group.ID})
	require.Len(t, c.GroupPages(group.ID), 1)
	require.Len(t, c.Pages(course.ID), 1)
	require.Len(t, c.Groups(course.ID), 1)
}

func TestModuleItemsAreCopyOnWrite(t *testing.T) {
	c := newTestCanvas(t)
	course := c.AddCourse(CourseParams{})
	assignment := c.AddAssignment(AssignmentParams{CourseID: course.ID, Name: "Essay"})
	tool := c.AddLTITool(course.ID, "Studio", "https://studio.example.com/launch")

	first := c.AddModuleToCourse(ModuleParams{CourseID: course.ID, Name: "Week 1"})
	second := c.AddModuleToCourse(ModuleParams{CourseID: course.ID, Name: "Week 2"})
	require.Equal(t, 0, first.Position)
	require.Equal(t, 1, second.Position)

	before, ok := c.Module(first.ID)
	require.True(t, ok)

	item := c.AddItemToModule(course.ID, first.ID, assignment, ModuleItemParams{ContentID: assignment.ID})
	require.Equal(t, 0, item.Position)
	require.Equal(t, "Essay", item.Title)
	require.Equal(t, models.ModuleItemAssignment, item.Type)
	require.Equal(t, "https://"+DefaultDomain+"/api/v1/courses/"+itoa(course.ID)+"/assignments/"+itoa(assignment.ID), item.URL)

	external := c.AddItemToModule(course.ID, first.ID, tool, ModuleItemParams{})
	require.Equal(t, 1, external.Position)
	require.Equal(t, tool.URL, external.URL)

	require.Empty(t, before.Items, "earlier snapshots keep their items")
	after, _ := c.Module(first.ID)
	require.Len(t, after.Items, 2)
	require.Equal(t, 2, after.ItemCount)

	modules := c.Modules(course.ID)
	require.Len(t, modules, 2)
	require.Empty(t, modules[1].Items)
}

func TestFilesAreSniffedAndCounted(t *testing.T) {
	c := newTestCanvas(t)
	course := c.AddCourse(CourseParams{})

	file := c.AddFileToCourse(FileParams{CourseID: course.ID, DisplayName: "notes.txt", Content: "plain notes"})
	require.True(t, strings.HasPrefix(file.ContentType, "text/plain"), file.ContentType)
	require.Equal(t, int64(len("plain notes")), file.Size)
	require.Equal(t, models.VisibilityInherit, file.VisibilityLevel)

	contents, ok := c.FileContents(file.ID)
	require.True(t, ok)
	require.Equal(t, "plain notes", contents)

	folder := c.AddFolderToCourse(FolderParams{CourseID: course.ID, DisplayName: "Handouts"})
	nested := c.AddFileToFolder(FileParams{FolderID: folder.ID, DisplayName: "page.html", Content: "<html><body>hi</body></html>"})
	require.True(t, strings.HasPrefix(nested.ContentType, "text/html"), nested.ContentType)
	require.Equal(t, folder.ID, nested.FolderID)

	explicit := c.AddFileToFolder(FileParams{CourseID: course.ID, ContentType: "application/pdf", Content: "%PDF"})
	require.Equal(t, "application/pdf", explicit.ContentType)

	root, ok := c.RootFolder("course", course.ID)
	require.True(t, ok)
	require.Equal(t, 2, root.FilesCount)
	require.Equal(t, 1, root.FoldersCount)
	require.Len(t, c.FolderChildren(root.ID), 3)

	stored, _ := c.File(folder.ID)
	require.Equal(t, 1, stored.FilesCount)

	requireMissingParent(t, func() { c.AddFileToFolder(FileParams{FolderID: file.ID}) })
}

func TestGradedQuizSubmissionCascades(t *testing.T) {
	c := newTestCanvas(t)
	student := c.AddUser()
	course := c.AddCourse(CourseParams{})

	quiz := c.AddQuizToCourse(QuizParams{CourseID: course.ID, QuizType: models.QuizTypeAssignment})
	require.Positive(t, quiz.AssignmentID)
	require.Equal(t, defaultQuizTimeLimit, quiz.TimeLimit)
	backing, ok := c.Assignment(quiz.AssignmentID)
	require.True(t, ok)
	require.Equal(t, quiz.ID, backing.QuizID)
	require.Positive(t, backing.AssignmentGroupID)
	groups := c.AssignmentGroups(course.ID)
	require.Len(t, groups, 1)
	require.Equal(t, backing.AssignmentGroupID, groups[0].ID)
	require.Len(t, groups[0].Assignments, 1)
	require.Equal(t, quiz.AssignmentID, groups[0].Assignments[0].ID)

	c.AddQuestionToQuiz(QuestionParams{QuizID: quiz.ID, Name: "Q1", Answers: []models.QuizAnswer{{ID: 1, AnswerText: "yes", AnswerWeight: 100}}})
	c.AddQuestionToQuiz(QuestionParams{QuizID: quiz.ID, Name: "Q2", Type: "essay_question", PointsPossible: Int(3)})
	updated, _ := c.Quiz(quiz.ID)
	require.Equal(t, 8, updated.PointsPossible)
	require.Equal(t, 2, updated.QuestionCount)
	require.Equal(t, []string{"multiple_choice_question", "essay_question"}, updated.QuestionTypes)

	attempt := c.AddQuizSubmission(quiz.ID, student.ID, "complete", String("A"))
	require.Equal(t, fixedNow.Add(defaultQuizTimeLimit), attempt.EndAt)
	require.NotEmpty(t, attempt.ValidationToken)

	root, ok := c.RootSubmission(quiz.AssignmentID, student.ID)
	require.True(t, ok)
	require.Equal(t, root.ID, attempt.SubmissionID)
	require.Equal(t, models.SubmissionTypeOnlineQuiz, root.SubmissionType)
	require.Equal(t, "A", *root.Grade)

	filed := c.AssignmentGroups(course.ID)[0].Assignments[0]
	require.NotNil(t, filed.Submission)
	require.Equal(t, root.ID, filed.Submission.ID)

	questions := c.QuizSubmissionQuestions(attempt.ID)
	require.Len(t, questions, 2)
	require.Equal(t, "yes", questions[0].Answers[0].Text)
	require.Len(t, c.QuizSubmissions(quiz.ID), 1)
}

func TestPracticeQuizSubmissionHasNoAssignment(t *testing.T) {
	c := newTestCanvas(t)
	student := c.AddUser()
	course := c.AddCourse(CourseParams{})
	quiz := c.AddQuizToCourse(QuizParams{CourseID: course.ID})

	attempt := c.AddQuizSubmission(quiz.ID, student.ID, "", nil)
	require.Equal(t, "untaken", attempt.WorkflowState)
	require.Zero(t, quiz.AssignmentID)
	require.Positive(t, attempt.SubmissionID)
	require.Len(t, c.Quizzes(course.ID), 1)
}

func TestAssignmentsToGroups(t *testing.T) {
	c := newTestCanvas(t)
	student := c.AddUser()
	course := c.AddCourse(CourseParams{})

	groups := c.AddAssignmentsToGroups(course.ID, 2)
	require.Len(t, groups, 4)
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Name)
		require.Len(t, group.Assignments, 2)
	}
	require.Equal(t, []string{GroupOverdue, GroupUpcoming, GroupUndated, GroupPast}, names)

	past := groups[3].Assignments[0]
	require.NotNil(t, past.Submission)
	require.Equal(t, student.ID, past.Submission.UserID)
	require.True(t, groups[0].Assignments[0].IsPastDue(fixedNow))
	require.False(t, groups[1].Assignments[0].IsPastDue(fixedNow))
	require.Nil(t, groups[2].Assignments[0].DueAt)
}

func TestConversations(t *testing.T) {
	c := newTestCanvas(t)
	sender := c.AddUser()
	receiver := c.AddUser()
	course := c.AddCourse(CourseParams{})

	direct := c.AddConversation(ConversationParams{SenderID: sender.ID, ReceiverIDs: []int64{receiver.ID}, Subject: "Hello"})
	require.Equal(t, models.ConversationUnread, direct.WorkflowState)
	require.Len(t, direct.Participants, 2)
	require.Equal(t, sender.ID, direct.Messages[0].AuthorID)

	thread := c.AddConversationWithMultipleMessages(sender.ID, []int64{receiver.ID}, 3)
	require.Equal(t, 3, thread.MessageCount)
	require.Equal(t, thread.Messages[2].Body, thread.LastMessage)

	inbox := c.AddConversations(ConversationsParams{UserID: receiver.ID, Count: 2})
	require.Len(t, inbox, 8)
	var sent, archived, starred int
	for _, conversation := range inbox {
		if conversation.Messages[0].AuthorID == receiver.ID {
			sent++
		}
		if conversation.WorkflowState == models.ConversationArchived {
			archived++
		}
		if conversation.Starred {
			starred++
		}
	}
	require.Equal(t, 2, sent)
	require.Equal(t, 2, archived)
	require.Equal(t, 2, starred)
	require.Len(t, c.Conversations(), 10)

	require.True(t, c.RemoveConversation(direct.ID))
	require.False(t, c.RemoveConversation(direct.ID))
	_, ok := c.Conversation(direct.ID)
	require.False(t, ok)

	c.AddConversationsToCourseMap(receiver.ID, []int64{course.ID}, 2, "course body")
	scoped := c.CourseConversations(course.ID)
	require.Len(t, scoped, 2)
	require.Equal(t, course.ContextID(), scoped[0].ContextCode)
	require.Equal(t, "course body", scoped[0].LastMessage)

	c.AddRecipientsToCourse(course.ID, []int64{receiver.ID}, []int64{sender.ID})
	students, teachers, groups := c.Recipients(course.ID)
	require.Len(t, students, 1)
	require.Len(t, teachers, 1)
	require.Len(t, groups, 2)
	require.Equal(t, []string{string(models.EnrollmentStudent)}, students[0].CommonCourses[itoa(course.ID)])
}

func TestCalendarAndPlanner(t *testing.T) {
	c := newTestCanvas(t)
	user := c.AddUser()
	course := c.AddCourse(CourseParams{})
	assignment := c.AddAssignment(AssignmentParams{CourseID: course.ID})
	start := fixedNow.Add(24 * time.Hour)

	event := c.AddCourseCalendarEvent(course.ID, CalendarEventParams{Start: start, Title: "Field trip", ImportantDate: true})
	require.True(t, event.AllDay)
	require.Equal(t, start, *event.EndAt)
	c.AddAssignmentCalendarEvent(course.ID, assignment.ID, CalendarEventParams{Start: start})
	courseEvents := c.CalendarEvents(course.ContextID())
	require.Len(t, courseEvents, 2)
	require.Equal(t, models.ScheduleItemAssignment, courseEvents[1].Type)
	require.Equal(t, assignment.ID, courseEvents[1].Assignment.ID)

	c.AddUserCalendarEvent(user.ID, CalendarEventParams{Start: start, Title: "Dentist"})
	require.Len(t, c.CalendarEvents(contextKey("user", user.ID)), 1)

	todo := c.AddTodo(PlannerParams{Name: "Read chapter", UserID: user.ID})
	require.Equal(t, models.PlannableTodo, todo.PlannableType)
	c.AddPlannable(PlannerParams{Name: "Quiz", UserID: user.ID, CourseID: course.ID}, models.PlannableQuiz)
	require.Len(t, c.PlannerItems(user.ID), 2)
}

func TestNotificationsAndAlerts(t *testing.T) {
	c := newTestCanvas(t)
	parent := c.AddUser()
	student := c.AddUser()

	notification := c.AddAccountNotification()
	require.True(t, notification.StartAt.Before(fixedNow))
	require.True(t, notification.EndAt.After(fixedNow))
	require.Len(t, c.AccountNotifications(), 1)
	require.True(t, c.RemoveAccountNotification(notification.ID))
	require.Empty(t, c.AccountNotifications())

	alert := c.AddObserverAlert(AlertParams{
		ObserverID:    parent.ID,
		StudentID:     student.ID,
		AlertType:     models.AlertCourseGradeHigh,
		WorkflowState: models.AlertUnread,
		Threshold:     "90",
	})
	thresholds := c.AlertThresholds(student.ID)
	require.Len(t, thresholds, 1)
	require.Equal(t, alert.ObserverAlertThresholdID, thresholds[0].ID)
	require.Equal(t, models.ThresholdStateActive, thresholds[0].WorkflowState)

	again := c.AddObserverAlert(AlertParams{ObserverID: parent.ID, StudentID: student.ID, ThresholdID: alert.ObserverAlertThresholdID})
	require.Equal(t, alert.ObserverAlertThresholdID, again.ObserverAlertThresholdID)
	require.Len(t, c.AlertThresholds(student.ID), 1)
	require.Len(t, c.Alerts(student.ID), 2)
}

func TestUserExtras(t *testing.T) {
	c := newTestCanvas(t)
	student := c.AddUser()
	course := c.AddCourse(CourseParams{})
	assignment := c.AddAssignment(AssignmentParams{CourseID: course.ID})

	first := c.AddBookmark(student.ID, assignment.ID, "essay")
	second := c.AddBookmark(student.ID, assignment.ID, "essay again")
	require.Equal(t, 0, first.Position)
	require.Equal(t, 1, second.Position)
	require.Len(t, c.Bookmarks(student.ID), 2)

	code := c.AddPairingCode(student.ID)
	require.Len(t, code, 6)
	require.Equal(t, strings.ToUpper(code), code)
	paired, ok := c.PairedStudent(code)
	require.True(t, ok)
	require.Equal(t, student.ID, paired.ID)

	item := c.AddSubmissionStreamItem(StreamItemParams{UserID: student.ID, CourseID: course.ID, AssignmentID: assignment.ID})
	require.Equal(t, -1.0, item.Score)
	require.Equal(t, "submission", item.Type)
	require.Len(t, c.StreamItems(student.ID), 1)

	updated := c.AddUserPermissions(student.ID, true, false)
	require.True(t, updated.Permissions.CanUpdateName)
	require.False(t, updated.Permissions.CanUpdateAvatar)
}

func TestAnnotations(t *testing.T) {
	c := newTestCanvas(t)
	teacher := c.AddUser()
	student := c.AddUser()

	session := c.AddAnnotation(AnnotationParams{
		SignedInUserID:      student.ID,
		AuthorID:            teacher.ID,
		HasComment:          true,
		CommentContents:     "Looks good",
		HasSentComment:      true,
		SentCommentContents: "Thanks",
	})

	stored, annotations, pending, ok := c.DocSession(session.ID)
	require.True(t, ok)
	require.Equal(t, session, stored)
	require.Len(t, annotations, 2)
	require.Equal(t, models.AnnotationInk, annotations[0].Type)
	require.Len(t, annotations[0].InkList[0], len(inkColumns)*len(inkRows))
	require.Equal(t, models.AnnotationCommentReply, annotations[1].Type)
	require.Equal(t, annotations[0].AnnotationID, annotations[1].InReplyTo)
	require.NotNil(t, pending)
	require.Equal(t, "Thanks", pending.Contents)

	_, _, _, ok = c.DocSession("missing")
	require.False(t, ok)
}
