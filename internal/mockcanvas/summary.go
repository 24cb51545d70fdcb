package mockcanvas

import (
	"slices"
	"time"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// Summary is a printable overview of a canvas.
type Summary struct {
	Domain  string          `json:"domain" yaml:"domain"`
	Counts  map[string]int  `json:"counts" yaml:"counts"`
	Users   []UserSummary   `json:"users" yaml:"users"`
	Courses []CourseSummary `json:"courses" yaml:"courses"`
}

// UserSummary lists a user with the token tests log in with.
type UserSummary struct {
	ID      int64    `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	LoginID string   `json:"login_id" yaml:"login_id"`
	Token   string   `json:"token" yaml:"token"`
	Roles   []string `json:"roles" yaml:"roles"`
}

// CourseSummary lists a course with its enrollment count.
type CourseSummary struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Code        string `json:"code" yaml:"code"`
	Term        string `json:"term" yaml:"term"`
	Concluded   bool   `json:"concluded" yaml:"concluded"`
	Homeroom    bool   `json:"homeroom" yaml:"homeroom"`
	Enrollments int    `json:"enrollments" yaml:"enrollments"`
}

// Summary captures the current state of the canvas.
func (c *Canvas) Summary() Summary {
	summary := Summary{Domain: c.domain}
	now := c.now()
	c.view(func(s *store.State) {
		summary.Counts = s.Counts()

		tokens := make(map[int64]string, len(s.Tokens))
		for token, userID := range s.Tokens {
			tokens[userID] = token
		}
		roles := make(map[int64][]string)
		for _, enrollment := range s.Enrollments.All() {
			role := string(enrollment.Role)
			if !slices.Contains(roles[enrollment.UserID], role) {
				roles[enrollment.UserID] = append(roles[enrollment.UserID], role)
			}
		}

		summary.Users = make([]UserSummary, 0, s.Users.Len())
		for _, user := range s.Users.All() {
			summary.Users = append(summary.Users, UserSummary{
				ID:      user.ID,
				Name:    user.Name,
				LoginID: user.LoginID,
				Token:   tokens[user.ID],
				Roles:   roles[user.ID],
			})
		}

		summary.Courses = make([]CourseSummary, 0, s.Courses.Len())
		for _, course := range s.Courses.All() {
			summary.Courses = append(summary.Courses, courseSummary(course, now))
		}
	})
	return summary
}

func courseSummary(course models.Course, now time.Time) CourseSummary {
	return CourseSummary{
		ID:          course.ID,
		Name:        course.Name,
		Code:        course.CourseCode,
		Term:        course.Term.Name,
		Concluded:   course.IsConcluded(now),
		Homeroom:    course.HomeroomCourse,
		Enrollments: len(course.Enrollments),
	}
}
