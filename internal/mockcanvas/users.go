package mockcanvas

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// AddUser creates a user with a fake identity, an auth token, default
// settings and an empty personal root folder.
func (c *Canvas) AddUser() models.User {
	var user models.User
	c.update(func(s *store.State) {
		user = c.addUser(s)
	})
	return user
}

func (c *Canvas) addUser(s *store.State) models.User {
	first := c.faker.FirstName()
	last := c.faker.LastName()
	email := strings.ToLower(fmt.Sprintf("%s.%s@%s", first, last, c.faker.DomainName()))
	full := first + " " + last

	user := models.User{
		ID:           s.NextID(),
		Name:         full,
		ShortName:    first,
		SortableName: last + ", " + first,
		LoginID:      email,
		PrimaryEmail: email,
		Email:        email,
		Bio:          fmt.Sprintf("This is user '%s'", full),
		Locale:       "en",
		Enrollments:  []models.Enrollment{},
	}
	store.MustSucceed("add user", s.Users.Insert(user.ID, user))
	// Tokens follow the faker seed so seeded fixtures print the same credentials.
	token := uuid.NewSHA1(uuid.NameSpaceURL, []byte(c.webURL("users/%d/%s", user.ID, c.faker.LetterN(16))))
	s.Tokens[token.String()] = user.ID
	s.UserSettings[user.ID] = models.UserSettings{}

	c.newRootFolder(s, "user", user.ID, "Files")

	c.logger.Debug().Int64("user_id", user.ID).Msg("user added")
	return user
}

// AddUserPermissions sets the profile permissions of a user.
func (c *Canvas) AddUserPermissions(userID int64, canUpdateName, canUpdateAvatar bool) models.User {
	var user models.User
	c.update(func(s *store.State) {
		user = s.Users.MustGet(userID)
		user.Permissions = &models.ContextPermission{CanUpdateName: canUpdateName, CanUpdateAvatar: canUpdateAvatar}
		store.MustSucceed("update user permissions", s.Users.Replace(user.ID, user))
	})
	return user
}

// UpdateUserEnrollments recomputes the enrollment list embedded in every
// user from the enrollments table. Calling it twice in a row is a no-op.
func (c *Canvas) UpdateUserEnrollments() {
	c.update(c.updateUserEnrollments)
}

func (c *Canvas) updateUserEnrollments(s *store.State) {
	byUser := make(map[int64][]models.Enrollment, s.Users.Len())
	for _, enrollment := range s.Enrollments.All() {
		byUser[enrollment.UserID] = append(byUser[enrollment.UserID], enrollment)
	}
	for _, user := range s.Users.All() {
		list := byUser[user.ID]
		if list == nil {
			list = []models.Enrollment{}
		}
		user.Enrollments = list
		store.MustSucceed("refresh user enrollments", s.Users.Replace(user.ID, user))
	}
	c.logger.Debug().Int("users", s.Users.Len()).Msg("user enrollments recomputed")
}

// AddStudent creates a user with an active student enrollment in each course.
func (c *Canvas) AddStudent(courseIDs ...int64) models.User {
	var user models.User
	c.update(func(s *store.State) {
		for _, id := range courseIDs {
			s.Courses.MustGet(id)
		}
		user = c.addUser(s)
		for _, id := range courseIDs {
			course := s.Courses.MustGet(id)
			c.addEnrollment(s, EnrollmentParams{
				UserID:          user.ID,
				CourseID:        course.ID,
				Type:            models.EnrollmentStudent,
				CourseSectionID: firstSectionID(course),
				State:           models.EnrollmentStateActive,
			})
		}
	})
	return user
}

// AddBookmark saves a deep link to an assignment for a user.
func (c *Canvas) AddBookmark(userID, assignmentID int64, name string) models.Bookmark {
	var bookmark models.Bookmark
	c.update(func(s *store.State) {
		s.Users.MustGet(userID)
		assignment := s.Assignments.MustGet(assignmentID)
		bookmark = models.Bookmark{
			ID:       s.NextID(),
			Name:     name,
			URL:      c.apiURL("courses/%d/assignments/%d", assignment.CourseID, assignment.ID),
			Position: s.BookmarksByUser.Len(userID),
		}
		store.MustSucceed("add bookmark", s.Bookmarks.Insert(bookmark.ID, bookmark))
		s.BookmarksByUser.Add(userID, bookmark.ID)
	})
	return bookmark
}

// AddPairingCode issues a code an observer can use to pair with the student.
func (c *Canvas) AddPairingCode(studentID int64) string {
	var code string
	c.update(func(s *store.State) {
		s.Users.MustGet(studentID)
		for {
			code = strings.ToUpper(c.faker.LetterN(6))
			if _, taken := s.PairingCodes[code]; !taken {
				break
			}
		}
		s.PairingCodes[code] = studentID
	})
	return code
}

func firstSectionID(course models.Course) int64 {
	if len(course.Sections) == 0 {
		return 0
	}
	return course.Sections[0].ID
}

func appendEnrollment(list []models.Enrollment, enrollment models.Enrollment) []models.Enrollment {
	return append(slices.Clone(list), enrollment)
}
