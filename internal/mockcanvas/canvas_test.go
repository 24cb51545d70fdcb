package mockcanvas

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

var fixedNow = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	return New(Options{Seed: 7, Now: func() time.Time { return fixedNow }, Logger: zerolog.Nop()})
}

func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		recovered := recover()
		require.NotNil(t, recovered, "expected a panic")
		err, ok := recovered.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, target)
	}()
	fn()
}

func requireMissingParent(t *testing.T, fn func()) {
	t.Helper()
	requirePanicIs(t, store.ErrMissingParent, fn)
}

func TestIdentifiersAreUniqueAcrossKinds(t *testing.T) {
	c := newTestCanvas(t)

	user := c.AddUser()
	course := c.AddCourse(CourseParams{WithGradingPeriod: true})
	enrollment := c.AddEnrollment(EnrollmentParams{UserID: user.ID, CourseID: course.ID, Type: models.EnrollmentStudent})
	assignment := c.AddAssignment(AssignmentParams{CourseID: course.ID})
	root := c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: assignment.ID, UserID: user.ID, Type: models.SubmissionTypeOnlineURL})
	quiz := c.AddQuizToCourse(QuizParams{CourseID: course.ID, QuizType: models.QuizTypeAssignment})
	module := c.AddModuleToCourse(ModuleParams{CourseID: course.ID, Name: "Week 1"})
	item := c.AddItemToModule(course.ID, module.ID, assignment, ModuleItemParams{})
	topic := c.AddDiscussionTopicToCourse(DiscussionParams{CourseID: course.ID, UserID: user.ID})
	file := c.AddFileToCourse(FileParams{CourseID: course.ID, Content: "hello"})
	notification := c.AddAccountNotification()

	ids := []int64{
		user.ID, course.ID, course.Term.ID, course.GradingPeriods[0].ID, enrollment.ID,
		assignment.ID, assignment.AssignmentGroupID, assignment.AllDates[0].ID, root.ID,
		root.SubmissionHistory[0].ID, quiz.ID, quiz.AssignmentID, module.ID, item.ID, topic.ID,
		file.ID, file.FolderID, notification.ID,
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		require.Positive(t, id)
		_, dup := seen[id]
		require.False(t, dup, "id %d issued twice", id)
		seen[id] = struct{}{}
	}
}

func TestSubmissionRootInvariant(t *testing.T) {
	c := newTestCanvas(t)
	first := c.AddUser()
	second := c.AddUser()
	course := c.AddCourse(CourseParams{})
	assignment := c.AddAssignment(AssignmentParams{CourseID: course.ID, DueAt: timePtr(fixedNow.Add(-time.Hour))})

	initial := c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: assignment.ID, UserID: first.ID, Type: models.SubmissionTypeOnlineURL, URL: "https://example.com"})
	require.Len(t, initial.SubmissionHistory, 1)
	require.True(t, initial.Late)
	require.Equal(t, int64(1), initial.Attempt)
	require.Equal(t, models.SubmissionStatusSubmitted, initial.WorkflowState)
	require.NotEqual(t, initial.ID, initial.SubmissionHistory[0].ID)

	c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: assignment.ID, UserID: second.ID, Type: models.SubmissionTypeOnlineURL})

	graded := c.AddSubmissionForAssignment(SubmissionParams{
		AssignmentID: assignment.ID,
		UserID:       first.ID,
		Type:         models.SubmissionTypeOnlineTextEntry,
		State:        models.SubmissionStatusGraded,
		Grade:        String("A"),
		Attempt:      2,
	})
	require.Equal(t, initial.ID, graded.ID)
	require.Equal(t, "A", *graded.Grade)
	require.Equal(t, models.SubmissionTypeOnlineTextEntry, graded.SubmissionType)
	require.Equal(t, models.SubmissionStatusGraded, graded.WorkflowState)
	require.Len(t, graded.SubmissionHistory, 2)
	require.Equal(t, int64(2), graded.SubmissionHistory[1].Attempt)

	require.Len(t, initial.SubmissionHistory, 1, "earlier snapshots keep their history")

	roots := c.Submissions(assignment.ID)
	require.Len(t, roots, 2)
	require.Equal(t, second.ID, roots[0].UserID)
	require.Equal(t, first.ID, roots[1].UserID, "grade change moves the root to the end")

	stored, ok := c.Assignment(assignment.ID)
	require.True(t, ok)
	require.NotNil(t, stored.Submission)
	require.Empty(t, cmp.Diff(graded, *stored.Submission))

	groups := c.AssignmentGroups(course.ID)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Assignments, 1)
	require.Empty(t, cmp.Diff(stored, groups[0].Assignments[0]))
}

func TestSameGradeLeavesRootInPlace(t *testing.T) {
	c := newTestCanvas(t)
	first := c.AddUser()
	second := c.AddUser()
	course := c.AddCourse(CourseParams{})
	assignment := c.AddAssignment(AssignmentParams{CourseID: course.ID})

	c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: assignment.ID, UserID: first.ID, Grade: String("B")})
	c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: assignment.ID, UserID: second.ID})
	root := c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: assignment.ID, UserID: first.ID, Grade: String("B"), Type: models.SubmissionTypeOnlineUpload})

	require.NotEqual(t, models.SubmissionTypeOnlineUpload, root.SubmissionType)
	roots := c.Submissions(assignment.ID)
	require.Equal(t, first.ID, roots[0].UserID)
	require.False(t, root.Late, "undated assignments are never late")
}

func TestUpdateUserEnrollmentsIsIdempotent(t *testing.T) {
	c := newTestCanvas(t)
	student := c.AddUser()
	loner := c.AddUser()
	course := c.AddCourse(CourseParams{})
	c.AddEnrollment(EnrollmentParams{UserID: student.ID, CourseID: course.ID, Type: models.EnrollmentStudent})

	c.UpdateUserEnrollments()
	first := c.Users()
	c.UpdateUserEnrollments()
	second := c.Users()

	require.Empty(t, cmp.Diff(first, second))
	lonely, ok := c.User(loner.ID)
	require.True(t, ok)
	require.NotNil(t, lonely.Enrollments)
	require.Empty(t, lonely.Enrollments)
}

func TestReturnedEntitiesDoNotShareMemoryWithStore(t *testing.T) {
	c := newTestCanvas(t)
	student := c.AddUser()
	course := c.AddCourse(CourseParams{})
	c.AddEnrollment(EnrollmentParams{UserID: student.ID, CourseID: course.ID, Type: models.EnrollmentStudent})
	c.UpdateUserEnrollments()

	user, ok := c.User(student.ID)
	require.True(t, ok)
	require.Len(t, user.Enrollments, 1)
	user.Enrollments[0].Role = models.EnrollmentTeacher
	*user.Enrollments[0].Grades.CurrentScore = -1

	stored, _ := c.User(student.ID)
	require.Equal(t, models.EnrollmentStudent, stored.Enrollments[0].Role)
	require.NotEqual(t, float64(-1), *stored.Enrollments[0].Grades.CurrentScore)

	courses := c.Courses()
	require.Len(t, courses[0].Enrollments, 1)
	courses[0].Enrollments[0].UserID = 0
	again, _ := c.Course(course.ID)
	require.Equal(t, student.ID, again.Enrollments[0].UserID)

	assignment := c.AddAssignment(AssignmentParams{CourseID: course.ID})
	root := c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: assignment.ID, UserID: student.ID, Type: models.SubmissionTypeOnlineURL})
	root.SubmissionHistory[0].Attempt = 99
	kept, ok := c.RootSubmission(assignment.ID, student.ID)
	require.True(t, ok)
	require.Equal(t, int64(1), kept.SubmissionHistory[0].Attempt)

	module := c.AddModuleToCourse(ModuleParams{CourseID: course.ID, Name: "Week 1"})
	c.AddItemToModule(course.ID, module.ID, assignment, ModuleItemParams{ContentID: assignment.ID})
	listed := c.Modules(course.ID)
	listed[0].Items[0].Title = "changed"
	fresh, _ := c.Module(module.ID)
	require.Equal(t, assignment.Name, fresh.Items[0].Title)
}

func TestCallerSuppliedIDsMustBeIssued(t *testing.T) {
	c := newTestCanvas(t)

	requirePanicIs(t, store.ErrUnissuedID, func() { c.AddCourse(CourseParams{ID: 1000}) })
	requirePanicIs(t, store.ErrUnissuedID, func() {
		c.AddCourse(CourseParams{Section: &models.Section{ID: 2000, Name: "Late"}})
	})
	require.Empty(t, c.Courses())

	id := c.NextID()
	course := c.AddCourse(CourseParams{ID: id})
	require.Equal(t, id, course.ID)
	require.Greater(t, c.NextID(), id)
	requirePanicIs(t, store.ErrDuplicateKey, func() { c.AddCourse(CourseParams{ID: id}) })

	sectionID := c.NextID()
	c.AddCourse(CourseParams{Section: &models.Section{ID: sectionID}})
	requirePanicIs(t, store.ErrDuplicateKey, func() {
		c.AddCourse(CourseParams{Section: &models.Section{ID: sectionID}})
	})
}

func TestStudentEndToEnd(t *testing.T) {
	c := newTestCanvas(t)
	user := c.AddUser()
	course := c.AddCourse(CourseParams{})
	require.Equal(t, defaultTermName, course.Term.Name, "a bare canvas gets a default term")

	enrollment := c.AddEnrollment(EnrollmentParams{UserID: user.ID, CourseID: course.ID, Type: models.EnrollmentStudent})
	require.Equal(t, 88.1, *enrollment.Grades.CurrentScore)
	require.Equal(t, "B+", enrollment.Grades.CurrentGrade)

	stale, _ := c.User(user.ID)
	require.Empty(t, stale.Enrollments, "users are refreshed explicitly")

	stored, _ := c.Course(course.ID)
	require.Len(t, stored.Enrollments, 1)
	require.Empty(t, course.Enrollments, "the returned course snapshot is not mutated")

	c.UpdateUserEnrollments()
	students := c.Students()
	require.Len(t, students, 1)
	require.Equal(t, user.ID, students[0].ID)
	require.Len(t, students[0].Enrollments, 1)
	require.True(t, students[0].HasRole(models.EnrollmentStudent))
	require.Empty(t, c.Teachers())

	token, ok := c.TokenFor(user.ID)
	require.True(t, ok)
	owner, ok := c.UserForToken(token)
	require.True(t, ok)
	require.Equal(t, user.ID, owner.ID)
}

func TestRoleViewsKeepFirstEnrollmentPerUser(t *testing.T) {
	c := newTestCanvas(t)
	teacher := c.AddUser()
	student := c.AddUser()
	parent := c.AddUser()
	first := c.AddCourse(CourseParams{})
	second := c.AddCourse(CourseParams{})

	for _, course := range []models.Course{first, second} {
		c.AddEnrollment(EnrollmentParams{UserID: student.ID, CourseID: course.ID, Type: models.EnrollmentStudent})
		c.AddEnrollment(EnrollmentParams{UserID: teacher.ID, CourseID: course.ID, Type: models.EnrollmentTeacher})
		c.AddEnrollment(EnrollmentParams{UserID: parent.ID, CourseID: course.ID, Type: models.EnrollmentObserver, ObservedUserID: student.ID})
	}

	require.Len(t, c.Students(), 1)
	require.Len(t, c.Teachers(), 1)
	parents := c.Parents()
	require.Len(t, parents, 1)
	require.Equal(t, parent.ID, parents[0].ID)
}

func TestObserverRequiresObservedUser(t *testing.T) {
	c := newTestCanvas(t)
	parent := c.AddUser()
	course := c.AddCourse(CourseParams{})

	requireMissingParent(t, func() {
		c.AddEnrollment(EnrollmentParams{UserID: parent.ID, CourseID: course.ID, Type: models.EnrollmentObserver})
	})
	requireMissingParent(t, func() {
		c.AddEnrollment(EnrollmentParams{UserID: parent.ID, CourseID: course.ID, Type: models.EnrollmentObserver, ObservedUserID: 9999})
	})
	require.Empty(t, c.Enrollments())
}

func TestMissingParentsPanic(t *testing.T) {
	c := newTestCanvas(t)
	user := c.AddUser()

	requireMissingParent(t, func() { c.AddAssignment(AssignmentParams{CourseID: 404}) })
	requireMissingParent(t, func() { c.AddSubmissionForAssignment(SubmissionParams{AssignmentID: 404, UserID: user.ID}) })
	requireMissingParent(t, func() { c.AddReplyToDiscussion(404, user.ID, ReplyParams{}) })
	requireMissingParent(t, func() { c.AddFileToFolder(FileParams{DisplayName: "orphan"}) })

	course := c.AddCourse(CourseParams{})
	other := c.AddCourse(CourseParams{})
	module := c.AddModuleToCourse(ModuleParams{CourseID: course.ID})
	requireMissingParent(t, func() { c.AddItemToModule(other.ID, module.ID, models.ExternalURL("https://example.com"), ModuleItemParams{}) })
}

func TestCourseDefaults(t *testing.T) {
	c := newTestCanvas(t)
	concluded := c.AddCourse(CourseParams{Concluded: true, IsHomeroom: true})

	require.NotNil(t, concluded.EndAt)
	require.Equal(t, fixedNow.AddDate(0, 0, -7), *concluded.EndAt)
	require.True(t, concluded.IsConcluded(fixedNow))
	require.True(t, concluded.RestrictEnrollmentsToCourseDate)
	require.True(t, concluded.IsPublic)
	require.Len(t, concluded.CourseCode, 2)

	tabs := c.Tabs(concluded.ID)
	require.Len(t, tabs, 2)
	require.Equal(t, models.TabAssignmentsID, tabs[0].TabID)
	require.Equal(t, 0, tabs[0].Position)
	require.Equal(t, models.TabQuizzesID, tabs[1].TabID)
	require.Equal(t, 1, tabs[1].Position)

	hidden := c.AddCourse(CourseParams{IsPublic: Bool(false)})
	require.False(t, hidden.IsPublic)
	require.Len(t, c.Terms(), 1)
}

func TestCourseWithEnrollmentAndStudentHelpers(t *testing.T) {
	c := newTestCanvas(t)
	teacher := c.AddUser()
	course := c.AddCourseWithEnrollment(teacher.ID, models.EnrollmentTeacher, CourseWithEnrollmentParams{RestrictQuantitativeData: true})

	require.Len(t, course.Enrollments, 1)
	require.Equal(t, 0.0, *course.Enrollments[0].Grades.CurrentScore)
	require.Equal(t, "", course.Enrollments[0].Grades.CurrentGrade)
	require.True(t, course.Settings.RestrictQuantitativeData)

	student := c.AddStudent(course.ID)
	stored, _ := c.Course(course.ID)
	require.Len(t, stored.Enrollments, 2)
	require.Equal(t, student.ID, stored.Enrollments[1].UserID)
	require.Equal(t, models.EnrollmentStateActive, stored.Enrollments[1].EnrollmentState)
}

func TestNewUsesDefaults(t *testing.T) {
	c := New(Options{})
	require.Equal(t, DefaultDomain, c.Domain())
	user := c.AddUser()
	require.NotEmpty(t, user.Name)
	require.Contains(t, user.Email, "@")
	require.Equal(t, "en", user.Locale)

	root, ok := c.RootFolder("user", user.ID)
	require.True(t, ok)
	require.Equal(t, "Files", root.DisplayName)

	_, ok = c.UserSettings(user.ID)
	require.True(t, ok)
}

func TestSeededCanvasesAreReproducible(t *testing.T) {
	first := newTestCanvas(t)
	second := newTestCanvas(t)

	a := first.AddUser()
	b := second.AddUser()
	require.Equal(t, a.Name, b.Name)
	require.Equal(t, a.Email, b.Email)
	require.Equal(t, first.AddCourse(CourseParams{}).Name, second.AddCourse(CourseParams{}).Name)
}
