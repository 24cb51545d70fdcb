package mockcanvas

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// ErrInvalidFixtureConfig is returned by Init when the requested fixture
// cannot be built.
var ErrInvalidFixtureConfig = errors.New("invalid fixture configuration")

var fixtureValidator = validator.New(validator.WithRequiredStructEnabled())

// InitConfig describes the core fixture most tests start from. Students and
// teachers are enrolled in every course, and every parent observes every
// student in every course. The first InvitedCourseCount courses hold
// invited rather than active student enrollments.
type InitConfig struct {
	CourseCount              int  `json:"course_count" yaml:"course_count" validate:"gte=0"`
	InvitedCourseCount       int  `json:"invited_course_count" yaml:"invited_course_count" validate:"gte=0"`
	PastCourseCount          int  `json:"past_course_count" yaml:"past_course_count" validate:"gte=0"`
	FavoriteCourseCount      int  `json:"favorite_course_count" yaml:"favorite_course_count" validate:"gte=0,ltefield=CourseCount"`
	HomeroomCourseCount      int  `json:"homeroom_course_count" yaml:"homeroom_course_count" validate:"gte=0"`
	StudentCount             int  `json:"student_count" yaml:"student_count" validate:"gte=0"`
	TeacherCount             int  `json:"teacher_count" yaml:"teacher_count" validate:"gte=0"`
	ParentCount              int  `json:"parent_count" yaml:"parent_count" validate:"gte=0"`
	AccountNotificationCount int  `json:"account_notification_count" yaml:"account_notification_count" validate:"gte=0"`
	CreateSections           bool `json:"create_sections" yaml:"create_sections"`
	PublishCourses           bool `json:"publish_courses" yaml:"publish_courses"`
	WithGradingPeriods       bool `json:"with_grading_periods" yaml:"with_grading_periods"`
}

func (cfg InitConfig) totalCourses() int {
	return cfg.CourseCount + cfg.PastCourseCount + cfg.HomeroomCourseCount
}

// Validate reports every reason the fixture cannot be built.
func (cfg InitConfig) Validate() error {
	var problems []error
	if err := fixtureValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				problems = append(problems, fmt.Errorf("%s failed %s", fieldErr.Field(), fieldErr.Tag()))
			}
		} else {
			problems = append(problems, err)
		}
	}
	if cfg.ParentCount > 0 && cfg.StudentCount == 0 {
		problems = append(problems, errors.New("parents require at least one student to observe"))
	}
	if cfg.StudentCount+cfg.TeacherCount+cfg.ParentCount > 0 && cfg.totalCourses() == 0 {
		problems = append(problems, errors.New("users require at least one course to enroll in"))
	}
	if cfg.InvitedCourseCount > cfg.totalCourses() {
		problems = append(problems, errors.New("invited courses exceed the number of courses"))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidFixtureConfig, errors.Join(problems...))
}

// Init builds a canvas populated in a fixed order: default term, users,
// courses, enrollments, the user enrollment refresh and finally account
// notifications.
func Init(cfg InitConfig, opts Options) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := New(opts)
	c.update(func(s *store.State) {
		c.addTerm(s, defaultTermName)

		students := c.addUsers(s, cfg.StudentCount)
		teachers := c.addUsers(s, cfg.TeacherCount)
		parents := c.addUsers(s, cfg.ParentCount)

		for i := range cfg.CourseCount {
			courseID := s.NextID()
			params := CourseParams{
				ID:                courseID,
				IsFavorite:        i < cfg.FavoriteCourseCount,
				IsPublic:          Bool(cfg.PublishCourses),
				WithGradingPeriod: cfg.WithGradingPeriods,
			}
			if cfg.CreateSections {
				sectionID := s.NextID()
				params.Section = &models.Section{
					ID:            sectionID,
					Name:          fmt.Sprintf("Section %d", sectionID),
					StudentIDs:    students,
					TotalStudents: len(students),
				}
			}
			c.addCourse(s, params)
		}
		for range cfg.PastCourseCount {
			c.addCourse(s, CourseParams{Concluded: true})
		}
		for range cfg.HomeroomCourseCount {
			c.addCourse(s, CourseParams{IsHomeroom: true})
		}

		for index, course := range s.Courses.All() {
			for _, teacher := range teachers {
				c.addEnrollment(s, EnrollmentParams{UserID: teacher, CourseID: course.ID, Type: models.EnrollmentTeacher})
			}
			state := models.EnrollmentStateActive
			if index < cfg.InvitedCourseCount {
				state = models.EnrollmentStateInvited
			}
			for _, student := range students {
				c.addEnrollment(s, EnrollmentParams{
					UserID:          student,
					CourseID:        course.ID,
					Type:            models.EnrollmentStudent,
					CourseSectionID: firstSectionID(course),
					State:           state,
				})
			}
			for _, parent := range parents {
				for _, student := range students {
					c.addEnrollment(s, EnrollmentParams{UserID: parent, CourseID: course.ID, Type: models.EnrollmentObserver, ObservedUserID: student})
				}
			}
		}

		c.updateUserEnrollments(s)

		for range cfg.AccountNotificationCount {
			c.addAccountNotification(s)
		}
	})

	c.logger.Info().
		Int("courses", cfg.totalCourses()).
		Int("students", cfg.StudentCount).
		Int("teachers", cfg.TeacherCount).
		Int("parents", cfg.ParentCount).
		Msg("fixture initialized")
	return c, nil
}

func (c *Canvas) addUsers(s *store.State, count int) []int64 {
	ids := make([]int64, 0, count)
	for range count {
		ids = append(ids, c.addUser(s).ID)
	}
	return ids
}
