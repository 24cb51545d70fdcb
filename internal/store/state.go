package store

import (
	"fmt"
	"sync"

	"github.com/noah-isme/mockcanvas/internal/models"
)

// State holds every entity collection of a fake canvas together with the
// secondary indexes that relate them. It is only reachable through
// Store.Update and Store.View.
type State struct {
	ids *IDAllocator

	Users                *Table[models.User]
	Terms                *Table[models.Term]
	Courses              *Table[models.Course]
	Sections             *Table[models.Section]
	Enrollments          *Table[models.Enrollment]
	AssignmentGroups     *Table[models.AssignmentGroup]
	Assignments          *Table[models.Assignment]
	Submissions          *Table[models.Submission]
	LTITools             *Table[models.LTITool]
	Quizzes              *Table[models.Quiz]
	QuizQuestions        *Table[models.QuizQuestion]
	QuizSubmissions      *Table[models.QuizSubmission]
	Modules              *Table[models.ModuleObject]
	DiscussionHeaders    *Table[models.DiscussionTopicHeader]
	DiscussionTopics     *Table[models.DiscussionTopic]
	Pages                *Table[models.Page]
	Files                *Table[models.FileFolder]
	Conversations        *Table[models.Conversation]
	CalendarEvents       *Table[models.ScheduleItem]
	PlannerItems         *Table[models.PlannerItem]
	AccountNotifications *Table[models.AccountNotification]
	Groups               *Table[models.Group]
	Bookmarks            *Table[models.Bookmark]
	StreamItems          *Table[models.StreamItem]
	Alerts               *Table[models.Alert]
	AlertThresholds      *Table[models.AlertThreshold]

	Tokens                  map[string]int64
	UserSettings            map[int64]models.UserSettings
	CourseTabs              map[int64][]models.Tab
	GradingPeriods          map[int64][]models.GradingPeriod
	FileContents            map[int64]string
	RootFolders             map[string]int64
	QuizSubmissionQuestions map[int64][]models.QuizSubmissionQuestion
	DocSessions             map[string]models.DocSession
	Annotations             map[string][]models.Annotation
	PendingAnnotations      map[string]models.Annotation
	PairingCodes            map[string]int64
	StudentRecipients       map[int64][]models.Recipient
	TeacherRecipients       map[int64][]models.Recipient
	RecipientGroups         map[int64][]models.Recipient
	CourseConversations     map[int64][]models.Conversation

	SubmissionsByAssignment  *Index[int64]
	AssignmentGroupsByCourse *Index[int64]
	ModulesByCourse          *Index[int64]
	QuizzesByCourse          *Index[int64]
	QuestionsByQuiz          *Index[int64]
	QuizSubmissionsByQuiz    *Index[int64]
	DiscussionsByCourse      *Index[int64]
	DiscussionsByGroup       *Index[int64]
	PagesByCourse            *Index[int64]
	PagesByGroup             *Index[int64]
	FolderChildren           *Index[int64]
	EventsByContext          *Index[string]
	LTIToolsByCourse         *Index[int64]
	GroupsByCourse           *Index[int64]
	PlannerItemsByUser       *Index[int64]
	BookmarksByUser          *Index[int64]
	StreamItemsByUser        *Index[int64]
	AlertsByStudent          *Index[int64]
	ThresholdsByStudent      *Index[int64]
}

func newState(ids *IDAllocator) *State {
	return &State{
		ids: ids,

		Users:                NewTable[models.User]("user"),
		Terms:                NewTable[models.Term]("term"),
		Courses:              NewTable[models.Course]("course"),
		Sections:             NewTable[models.Section]("section"),
		Enrollments:          NewTable[models.Enrollment]("enrollment"),
		AssignmentGroups:     NewTable[models.AssignmentGroup]("assignment group"),
		Assignments:          NewTable[models.Assignment]("assignment"),
		Submissions:          NewTable[models.Submission]("submission"),
		LTITools:             NewTable[models.LTITool]("lti tool"),
		Quizzes:              NewTable[models.Quiz]("quiz"),
		QuizQuestions:        NewTable[models.QuizQuestion]("quiz question"),
		QuizSubmissions:      NewTable[models.QuizSubmission]("quiz submission"),
		Modules:              NewTable[models.ModuleObject]("module"),
		DiscussionHeaders:    NewTable[models.DiscussionTopicHeader]("discussion topic header"),
		DiscussionTopics:     NewTable[models.DiscussionTopic]("discussion topic"),
		Pages:                NewTable[models.Page]("page"),
		Files:                NewTable[models.FileFolder]("file"),
		Conversations:        NewTable[models.Conversation]("conversation"),
		CalendarEvents:       NewTable[models.ScheduleItem]("calendar event"),
		PlannerItems:         NewTable[models.PlannerItem]("planner item"),
		AccountNotifications: NewTable[models.AccountNotification]("account notification"),
		Groups:               NewTable[models.Group]("group"),
		Bookmarks:            NewTable[models.Bookmark]("bookmark"),
		StreamItems:          NewTable[models.StreamItem]("stream item"),
		Alerts:               NewTable[models.Alert]("alert"),
		AlertThresholds:      NewTable[models.AlertThreshold]("alert threshold"),

		Tokens:                  make(map[string]int64),
		UserSettings:            make(map[int64]models.UserSettings),
		CourseTabs:              make(map[int64][]models.Tab),
		GradingPeriods:          make(map[int64][]models.GradingPeriod),
		FileContents:            make(map[int64]string),
		RootFolders:             make(map[string]int64),
		QuizSubmissionQuestions: make(map[int64][]models.QuizSubmissionQuestion),
		DocSessions:             make(map[string]models.DocSession),
		Annotations:             make(map[string][]models.Annotation),
		PendingAnnotations:      make(map[string]models.Annotation),
		PairingCodes:            make(map[string]int64),
		StudentRecipients:       make(map[int64][]models.Recipient),
		TeacherRecipients:       make(map[int64][]models.Recipient),
		RecipientGroups:         make(map[int64][]models.Recipient),
		CourseConversations:     make(map[int64][]models.Conversation),

		SubmissionsByAssignment:  NewIndex[int64](),
		AssignmentGroupsByCourse: NewIndex[int64](),
		ModulesByCourse:          NewIndex[int64](),
		QuizzesByCourse:          NewIndex[int64](),
		QuestionsByQuiz:          NewIndex[int64](),
		QuizSubmissionsByQuiz:    NewIndex[int64](),
		DiscussionsByCourse:      NewIndex[int64](),
		DiscussionsByGroup:       NewIndex[int64](),
		PagesByCourse:            NewIndex[int64](),
		PagesByGroup:             NewIndex[int64](),
		FolderChildren:           NewIndex[int64](),
		EventsByContext:          NewIndex[string](),
		LTIToolsByCourse:         NewIndex[int64](),
		GroupsByCourse:           NewIndex[int64](),
		PlannerItemsByUser:       NewIndex[int64](),
		BookmarksByUser:          NewIndex[int64](),
		StreamItemsByUser:        NewIndex[int64](),
		AlertsByStudent:          NewIndex[int64](),
		ThresholdsByStudent:      NewIndex[int64](),
	}
}

// NextID allocates a fresh identifier from the shared allocator.
func (s *State) NextID() int64 {
	return s.ids.Next()
}

// ClaimID returns id when the caller supplied one, or a fresh identifier
// when id is zero. A supplied id must have come from NextID.
func (s *State) ClaimID(kind string, id int64) (int64, error) {
	if id == 0 {
		return s.ids.Next(), nil
	}
	if !s.ids.Issued(id) {
		return 0, fmt.Errorf("%s %d: %w", kind, id, ErrUnissuedID)
	}
	return id, nil
}

// Counts returns the number of stored entities per kind.
func (s *State) Counts() map[string]int {
	return map[string]int{
		s.Users.Kind():                s.Users.Len(),
		s.Terms.Kind():                s.Terms.Len(),
		s.Courses.Kind():              s.Courses.Len(),
		s.Sections.Kind():             s.Sections.Len(),
		s.Enrollments.Kind():          s.Enrollments.Len(),
		s.AssignmentGroups.Kind():     s.AssignmentGroups.Len(),
		s.Assignments.Kind():          s.Assignments.Len(),
		s.Submissions.Kind():          s.Submissions.Len(),
		s.LTITools.Kind():             s.LTITools.Len(),
		s.Quizzes.Kind():              s.Quizzes.Len(),
		s.QuizQuestions.Kind():        s.QuizQuestions.Len(),
		s.QuizSubmissions.Kind():      s.QuizSubmissions.Len(),
		s.Modules.Kind():              s.Modules.Len(),
		s.DiscussionHeaders.Kind():    s.DiscussionHeaders.Len(),
		s.Pages.Kind():                s.Pages.Len(),
		s.Files.Kind():                s.Files.Len(),
		s.Conversations.Kind():        s.Conversations.Len(),
		s.CalendarEvents.Kind():       s.CalendarEvents.Len(),
		s.PlannerItems.Kind():         s.PlannerItems.Len(),
		s.AccountNotifications.Kind(): s.AccountNotifications.Len(),
		s.Groups.Kind():               s.Groups.Len(),
		s.Bookmarks.Kind():            s.Bookmarks.Len(),
		s.StreamItems.Kind():          s.StreamItems.Len(),
		s.Alerts.Kind():               s.Alerts.Len(),
		s.AlertThresholds.Kind():      s.AlertThresholds.Len(),
	}
}

// Store guards a State with a read/write lock.
type Store struct {
	mu    sync.RWMutex
	ids   IDAllocator
	state *State
}

// New constructs an empty store.
func New() *Store {
	s := &Store{}
	s.state = newState(&s.ids)
	return s
}

// NextID allocates an identifier without taking the lock.
func (s *Store) NextID() int64 {
	return s.ids.Next()
}

// Update runs fn with exclusive access to the state. A panic inside fn
// releases the lock before propagating.
func (s *Store) Update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// View runs fn with shared read access to the state. fn must not mutate it.
func (s *Store) View(fn func(*State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}
