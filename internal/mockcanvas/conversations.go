package mockcanvas

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// ConversationParams controls AddConversation.
type ConversationParams struct {
	SenderID    int64
	ReceiverIDs []int64
	Subject     string
	Body        string
	CannotReply bool
}

// ConversationsParams controls AddConversations.
type ConversationsParams struct {
	UserID int64
	// Count is the number of conversations of each kind; it defaults to 1.
	Count       int
	Body        string
	ContextName string
	ContextCode string
}

type basicConversation struct {
	userID      int64
	subject     string
	userAuthor  bool
	starred     bool
	state       models.ConversationState
	contextCode string
	contextName string
	body        string
}

// newBasicConversation builds a one-message conversation between the user
// and a made-up participant. It is not stored.
func (c *Canvas) newBasicConversation(s *store.State, spec basicConversation) models.Conversation {
	self := s.Users.MustGet(spec.userID).Basic()
	other := models.BasicUser{ID: s.NextID(), Name: c.randomFullName(), AvatarURL: c.randomAvatarURL()}
	recipient, author := self, other
	if spec.userAuthor {
		recipient, author = other, self
	}

	now := c.now()
	message := models.Message{
		ID:                   s.NextID(),
		CreatedAt:            now,
		Body:                 stringOr(spec.body, c.randomBody()),
		AuthorID:             author.ID,
		ParticipatingUserIDs: []int64{recipient.ID, author.ID},
	}
	return models.Conversation{
		ID:                    s.NextID(),
		Subject:               stringOr(spec.subject, c.randomSubject()),
		WorkflowState:         spec.state,
		LastMessage:           message.Body,
		LastAuthoredMessageAt: now,
		MessageCount:          1,
		Messages:              []models.Message{message},
		AvatarURL:             c.randomAvatarURL(),
		Starred:               spec.starred,
		ContextName:           spec.contextName,
		ContextCode:           spec.contextCode,
		Participants:          []models.BasicUser{recipient, author},
	}
}

func (c *Canvas) participants(s *store.State, senderID int64, receiverIDs []int64) []models.BasicUser {
	out := []models.BasicUser{s.Users.MustGet(senderID).Basic()}
	for _, id := range receiverIDs {
		out = append(out, s.Users.MustGet(id).Basic())
	}
	return out
}

func (c *Canvas) storeConversation(s *store.State, conversation models.Conversation) {
	store.MustSucceed("add conversation", s.Conversations.Insert(conversation.ID, conversation))
}

// AddConversation stores a single-message conversation from the sender to
// the receivers. It is not tied to a course.
func (c *Canvas) AddConversation(params ConversationParams) models.Conversation {
	var conversation models.Conversation
	c.update(func(s *store.State) {
		participants := c.participants(s, params.SenderID, params.ReceiverIDs)
		now := c.now()
		body := stringOr(params.Body, c.randomBody())
		message := models.Message{
			ID:                   s.NextID(),
			CreatedAt:            now,
			Body:                 body,
			AuthorID:             params.SenderID,
			ParticipatingUserIDs: append(slices.Clone(params.ReceiverIDs), params.SenderID),
		}
		conversation = models.Conversation{
			ID:                    s.NextID(),
			Subject:               stringOr(params.Subject, c.randomSubject()),
			WorkflowState:         models.ConversationUnread,
			LastMessage:           body,
			LastAuthoredMessageAt: now,
			MessageCount:          1,
			Messages:              []models.Message{message},
			AvatarURL:             c.randomAvatarURL(),
			Participants:          participants,
			CannotReply:           params.CannotReply,
		}
		c.storeConversation(s, conversation)
	})
	return conversation
}

// AddConversationWithMultipleMessages stores an unread conversation with
// messageCount messages from the sender.
func (c *Canvas) AddConversationWithMultipleMessages(senderID int64, receiverIDs []int64, messageCount int) models.Conversation {
	var conversation models.Conversation
	c.update(func(s *store.State) {
		participants := c.participants(s, senderID, receiverIDs)
		if messageCount < 1 {
			messageCount = 1
		}
		subject := c.randomSubject()
		now := c.now()
		messages := make([]models.Message, 0, messageCount)
		for range messageCount {
			messages = append(messages, models.Message{
				ID:                   s.NextID(),
				CreatedAt:            now,
				Body:                 c.randomBody(),
				AuthorID:             senderID,
				ParticipatingUserIDs: append(slices.Clone(receiverIDs), senderID),
			})
		}
		conversation = models.Conversation{
			ID:                    s.NextID(),
			Subject:               subject,
			WorkflowState:         models.ConversationUnread,
			LastMessage:           messages[len(messages)-1].Body,
			LastAuthoredMessageAt: now,
			MessageCount:          len(messages),
			Messages:              messages,
			AvatarURL:             c.randomAvatarURL(),
			Participants:          participants,
		}
		c.storeConversation(s, conversation)
	})
	return conversation
}

// AddConversations stores Count conversations of each inbox kind for the
// user: sent, archived, starred and unread.
func (c *Canvas) AddConversations(params ConversationsParams) []models.Conversation {
	var out []models.Conversation
	c.update(func(s *store.State) {
		count := params.Count
		if count == 0 {
			count = 1
		}
		base := basicConversation{
			userID:      params.UserID,
			state:       models.ConversationUnread,
			body:        params.Body,
			contextCode: params.ContextCode,
			contextName: params.ContextName,
		}
		for range count {
			sent, archived, starred, unread := base, base, base, base
			sent.userAuthor = true
			archived.state = models.ConversationArchived
			starred.starred = true
			for _, spec := range []basicConversation{sent, archived, starred, unread} {
				conversation := c.newBasicConversation(s, spec)
				c.storeConversation(s, conversation)
				out = append(out, conversation)
			}
		}
	})
	return out
}

// AddConversationsToCourseMap replaces the per-course conversation lists of
// the given courses with count fresh conversations each.
func (c *Canvas) AddConversationsToCourseMap(userID int64, courseIDs []int64, count int, body string) {
	c.update(func(s *store.State) {
		for _, courseID := range courseIDs {
			course := s.Courses.MustGet(courseID)
			list := make([]models.Conversation, 0, count)
			for range count {
				list = append(list, c.newBasicConversation(s, basicConversation{
					userID:      userID,
					state:       models.ConversationUnread,
					contextCode: course.ContextID(),
					contextName: course.Name,
					body:        body,
				}))
			}
			s.CourseConversations[course.ID] = list
		}
	})
}

// RemoveConversation deletes a conversation and reports whether it existed.
func (c *Canvas) RemoveConversation(id int64) bool {
	var removed bool
	c.update(func(s *store.State) {
		removed = s.Conversations.Has(id)
		s.Conversations.Delete(id)
	})
	return removed
}

// AddRecipientsToCourse registers the addressable students, teachers and
// role groups of a course.
func (c *Canvas) AddRecipientsToCourse(courseID int64, studentIDs, teacherIDs []int64) {
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(courseID)
		courseKey := strconv.FormatInt(course.ID, 10)
		recipients := func(ids []int64, role models.EnrollmentType) []models.Recipient {
			out := make([]models.Recipient, 0, len(ids))
			for _, id := range ids {
				user := s.Users.MustGet(id)
				out = append(out, models.Recipient{
					StringID:      strconv.FormatInt(user.ID, 10),
					Name:          user.ShortName,
					AvatarURL:     user.AvatarURL,
					CommonCourses: map[string][]string{courseKey: {string(role)}},
				})
			}
			return out
		}

		s.StudentRecipients[course.ID] = recipients(studentIDs, models.EnrollmentStudent)
		s.TeacherRecipients[course.ID] = recipients(teacherIDs, models.EnrollmentTeacher)
		s.RecipientGroups[course.ID] = []models.Recipient{
			{StringID: fmt.Sprintf("%s_teachers", course.ContextID()), Name: "Teachers", AvatarURL: c.randomAvatarURL(), UserCount: len(teacherIDs)},
			{StringID: fmt.Sprintf("%s_students", course.ContextID()), Name: "Students", AvatarURL: c.randomAvatarURL(), UserCount: len(studentIDs)},
		}
	})
}
