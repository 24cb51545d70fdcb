package mockcanvas

import (
	"fmt"
	"slices"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

const (
	defaultTermName    = "Default Term"
	defaultCourseColor = "#008EE2"
)

// CourseParams controls AddCourse. The zero value creates a public,
// unconcluded course with a fresh id.
type CourseParams struct {
	// ID is used as the course id when non-zero. It must come from NextID;
	// any other value panics with store.ErrUnissuedID.
	ID                       int64
	IsFavorite               bool
	Concluded                bool
	Section                  *models.Section
	IsPublic                 *bool
	WithGradingPeriod        bool
	IsHomeroom               bool
	RestrictQuantitativeData bool
}

// EnrollmentParams controls AddEnrollment.
type EnrollmentParams struct {
	UserID   int64
	CourseID int64
	Type     models.EnrollmentType
	// ObservedUserID is required for observer enrollments.
	ObservedUserID  int64
	CourseSectionID int64
	// CurrentScore defaults to 88.1 and CurrentGrade to "B+".
	CurrentScore *float64
	CurrentGrade *string
	State        string
}

// CourseWithEnrollmentParams controls AddCourseWithEnrollment.
type CourseWithEnrollmentParams struct {
	Score                    *float64
	Grade                    *string
	IsHomeroom               bool
	RestrictQuantitativeData bool
}

// GroupParams controls AddGroupToCourse.
type GroupParams struct {
	CourseID    int64
	Name        string
	Description string
	MemberIDs   []int64
	IsFavorite  bool
}

// NextID reserves an identifier, e.g. to build a section before its course.
func (c *Canvas) NextID() int64 {
	return c.store.NextID()
}

// AddTerm creates an enrollment term.
func (c *Canvas) AddTerm(name string) models.Term {
	var term models.Term
	c.update(func(s *store.State) {
		term = c.addTerm(s, name)
	})
	return term
}

func (c *Canvas) addTerm(s *store.State, name string) models.Term {
	if name == "" {
		name = fmt.Sprintf("%s %d", capitalize(c.faker.Word()), c.now().Year())
	}
	term := models.Term{ID: s.NextID(), Name: name}
	store.MustSucceed("add term", s.Terms.Insert(term.ID, term))
	return term
}

// AddCourse creates a course with the standard assignments and quizzes tabs.
// The course belongs to the first term; a default term is created when none
// exists yet.
func (c *Canvas) AddCourse(params CourseParams) models.Course {
	var course models.Course
	c.update(func(s *store.State) {
		course = c.addCourse(s, params)
	})
	return course
}

func (c *Canvas) addCourse(s *store.State, params CourseParams) models.Course {
	id := claimID(s, s.Courses.Kind(), params.ID)
	if s.Courses.Has(id) {
		store.MustSucceed("add course", fmt.Errorf("course %d: %w", id, store.ErrDuplicateKey))
	}

	name := c.randomCourseName()
	terms := s.Terms.All()
	var term models.Term
	if len(terms) == 0 {
		term = c.addTerm(s, defaultTermName)
	} else {
		term = terms[0]
	}

	periods := []models.GradingPeriod{}
	if params.WithGradingPeriod {
		periodID := s.NextID()
		periods = c.addGradingPeriod(s, id, models.GradingPeriod{ID: periodID, Title: fmt.Sprintf("Grading Period %d", periodID)})
	}

	sections := []models.Section{}
	if params.Section != nil {
		section := *params.Section
		section.ID = claimID(s, s.Sections.Kind(), section.ID)
		section.CourseID = id
		section.StudentIDs = slices.Clone(section.StudentIDs)
		store.MustSucceed("add section", s.Sections.Insert(section.ID, section))
		sections = append(sections, section)
	}

	course := models.Course{
		ID:                              id,
		Name:                            name,
		OriginalName:                    name,
		CourseCode:                      name[:2],
		Term:                            term,
		IsFavorite:                      params.IsFavorite,
		IsPublic:                        boolOr(params.IsPublic, true),
		HomeroomCourse:                  params.IsHomeroom,
		RestrictEnrollmentsToCourseDate: params.Concluded,
		Sections:                        sections,
		GradingPeriods:                  periods,
		CourseColor:                     defaultCourseColor,
		Settings:                        models.CourseSettings{RestrictQuantitativeData: params.RestrictQuantitativeData},
		Enrollments:                     []models.Enrollment{},
	}
	if params.Concluded {
		course.EndAt = timePtr(c.now().AddDate(0, 0, -7))
	}
	store.MustSucceed("add course", s.Courses.Insert(course.ID, course))

	s.CourseTabs[course.ID] = []models.Tab{
		{TabID: models.TabAssignmentsID, Label: "Assignments", Position: 0, Visibility: "public"},
		{TabID: models.TabQuizzesID, Label: "Quizzes", Position: 1, Visibility: "public"},
	}

	c.logger.Debug().Int64("course_id", course.ID).Bool("concluded", params.Concluded).Msg("course added")
	return course
}

// AddGradingPeriod records a grading period for a course and returns the
// course's full list. The course may be created afterwards.
func (c *Canvas) AddGradingPeriod(courseID int64, period models.GradingPeriod) []models.GradingPeriod {
	var periods []models.GradingPeriod
	c.update(func(s *store.State) {
		period.ID = claimID(s, "grading period", period.ID)
		periods = c.addGradingPeriod(s, courseID, period)
	})
	return periods
}

func (c *Canvas) addGradingPeriod(s *store.State, courseID int64, period models.GradingPeriod) []models.GradingPeriod {
	periods := append(slices.Clone(s.GradingPeriods[courseID]), period)
	s.GradingPeriods[courseID] = periods
	if course, ok := s.Courses.Get(courseID); ok {
		course.GradingPeriods = periods
		store.MustSucceed("add grading period", s.Courses.Replace(course.ID, course))
	}
	return periods
}

// AddCoursePermissions attaches permissions to a course.
func (c *Canvas) AddCoursePermissions(courseID int64, permissions models.ContextPermission) models.Course {
	var course models.Course
	c.update(func(s *store.State) {
		course = s.Courses.MustGet(courseID)
		course.Permissions = &permissions
		store.MustSucceed("add course permissions", s.Courses.Replace(course.ID, course))
	})
	return course
}

// AddCourseSettings replaces the settings of a course.
func (c *Canvas) AddCourseSettings(courseID int64, settings models.CourseSettings) models.Course {
	var course models.Course
	c.update(func(s *store.State) {
		course = s.Courses.MustGet(courseID)
		course.Settings = settings
		store.MustSucceed("add course settings", s.Courses.Replace(course.ID, course))
	})
	return course
}

// AddEnrollment enrolls a user in a course and appends the enrollment to
// the course. Users keep their old enrollment list until
// UpdateUserEnrollments runs.
func (c *Canvas) AddEnrollment(params EnrollmentParams) models.Enrollment {
	var enrollment models.Enrollment
	c.update(func(s *store.State) {
		enrollment = c.addEnrollment(s, params)
	})
	return enrollment
}

func (c *Canvas) addEnrollment(s *store.State, params EnrollmentParams) models.Enrollment {
	s.Users.MustGet(params.UserID)
	course := s.Courses.MustGet(params.CourseID)
	if params.Type == models.EnrollmentObserver || params.ObservedUserID != 0 {
		s.Users.MustGet(params.ObservedUserID)
	}

	score := Float(floatOr(params.CurrentScore, 88.1))
	grade := "B+"
	if params.CurrentGrade != nil {
		grade = *params.CurrentGrade
	}

	enrollment := models.Enrollment{
		ID:                   s.NextID(),
		Role:                 params.Type,
		Type:                 params.Type,
		CourseID:             course.ID,
		CourseSectionID:      params.CourseSectionID,
		UserID:               params.UserID,
		ObservedUserID:       params.ObservedUserID,
		EnrollmentState:      stringOr(params.State, models.EnrollmentStateActive),
		Grades:               models.Grades{CurrentScore: score, CurrentGrade: grade},
		ComputedCurrentScore: Float(*score),
		ComputedCurrentGrade: grade,
	}
	store.MustSucceed("add enrollment", s.Enrollments.Insert(enrollment.ID, enrollment))

	course.Enrollments = appendEnrollment(course.Enrollments, enrollment)
	store.MustSucceed("append course enrollment", s.Courses.Replace(course.ID, course))

	c.logger.Debug().
		Int64("enrollment_id", enrollment.ID).
		Int64("user_id", enrollment.UserID).
		Int64("course_id", enrollment.CourseID).
		Str("role", string(enrollment.Role)).
		Msg("enrollment added")
	return enrollment
}

// AddCourseWithEnrollment creates a course and enrolls the user in it with
// the given role. Score defaults to 0 and grade to "".
func (c *Canvas) AddCourseWithEnrollment(userID int64, role models.EnrollmentType, params CourseWithEnrollmentParams) models.Course {
	var course models.Course
	c.update(func(s *store.State) {
		s.Users.MustGet(userID)
		course = c.addCourse(s, CourseParams{IsHomeroom: params.IsHomeroom, RestrictQuantitativeData: params.RestrictQuantitativeData})
		score := params.Score
		if score == nil {
			score = Float(0)
		}
		grade := params.Grade
		if grade == nil {
			grade = String("")
		}
		c.addEnrollment(s, EnrollmentParams{
			UserID:          userID,
			CourseID:        course.ID,
			Type:            role,
			CourseSectionID: firstSectionID(course),
			CurrentScore:    score,
			CurrentGrade:    grade,
		})
		course = s.Courses.MustGet(course.ID)
	})
	return course
}

// AddGroupToCourse creates a student group in a course.
func (c *Canvas) AddGroupToCourse(params GroupParams) models.Group {
	var group models.Group
	c.update(func(s *store.State) {
		s.Courses.MustGet(params.CourseID)
		for _, member := range params.MemberIDs {
			s.Users.MustGet(member)
		}
		name := params.Name
		if name == "" {
			name = c.faker.City()
		}
		description := params.Description
		if description == "" {
			description = c.faker.Sentence(6)
		}
		members := slices.Clone(params.MemberIDs)
		if members == nil {
			members = []int64{}
		}
		group = models.Group{
			ID:          s.NextID(),
			CourseID:    params.CourseID,
			Name:        name,
			Description: description,
			IsPublic:    true,
			IsFavorite:  params.IsFavorite,
			MemberIDs:   members,
			Permissions: models.ContextPermission{CanCreateAnnouncement: true},
		}
		store.MustSucceed("add group", s.Groups.Insert(group.ID, group))
		s.GroupsByCourse.Add(group.CourseID, group.ID)
	})
	return group
}

// AddLTITool installs an external tool in a course.
func (c *Canvas) AddLTITool(courseID int64, name, url string) models.LTITool {
	var tool models.LTITool
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(courseID)
		tool = models.LTITool{ID: s.NextID(), Name: name, URL: url, ContextID: course.ID, ContextName: course.Name}
		store.MustSucceed("add lti tool", s.LTITools.Insert(tool.ID, tool))
		s.LTIToolsByCourse.Add(course.ID, tool.ID)
	})
	return tool
}
