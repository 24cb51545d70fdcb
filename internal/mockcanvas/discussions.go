package mockcanvas

import (
	"slices"
	"strings"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// DiscussionParams controls AddDiscussionTopicToCourse.
type DiscussionParams struct {
	CourseID int64
	UserID   int64
	// Header is a partially populated header to start from.
	Header             *models.DiscussionTopicHeader
	Title              string
	Message            string
	AllowRating        *bool
	OnlyGradersCanRate bool
	AllowReplies       *bool
	AllowAttachments   *bool
	Attachment         *models.RemoteFile
	IsAnnouncement     bool
	Sections           []models.Section
	// GroupID files the topic under a group instead of the course.
	GroupID      int64
	AssignmentID int64
}

// ReplyParams controls AddReplyToDiscussion.
type ReplyParams struct {
	Message    string
	Attachment *models.RemoteFile
	RatingSum  int
}

// PageParams controls AddPageToCourse.
type PageParams struct {
	CourseID int64
	// GroupID files the page under a group instead of the course.
	GroupID   int64
	ID        int64
	URL       string
	Title     string
	Body      string
	Published bool
	FrontPage bool
}

// AddDiscussionTopicToCourse creates a discussion or announcement header and
// its companion topic, which share the same id.
func (c *Canvas) AddDiscussionTopicToCourse(params DiscussionParams) models.DiscussionTopicHeader {
	var header models.DiscussionTopicHeader
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(params.CourseID)
		user := s.Users.MustGet(params.UserID)
		if params.GroupID != 0 {
			s.Groups.MustGet(params.GroupID)
		}

		if params.Header != nil {
			header = *params.Header
		} else {
			header = models.DiscussionTopicHeader{
				Title:          stringOr(params.Title, c.randomSubject()),
				Message:        stringOr(params.Message, c.randomTitle()),
				DiscussionType: "side_comment",
			}
		}
		author := models.DiscussionParticipant{ID: user.ID, DisplayName: user.Name, AvatarURL: user.AvatarURL}

		header.ID = s.NextID()
		header.CourseID = course.ID
		header.GroupID = params.GroupID
		header.Message = c.sanitize(header.Message)
		header.Author = author
		header.Published = true
		header.AllowRating = boolOr(params.AllowRating, true)
		header.OnlyGradersCanRate = params.OnlyGradersCanRate
		header.Permissions = models.DiscussionTopicPermission{
			Attach: boolOr(params.AllowAttachments, true),
			Reply:  boolOr(params.AllowReplies, true),
		}
		header.PostedAt = c.now()
		header.Attachments = slices.Clone(header.Attachments)
		if params.Attachment != nil {
			header.Attachments = []models.RemoteFile{*params.Attachment}
		}
		if header.Attachments == nil {
			header.Attachments = []models.RemoteFile{}
		}
		header.Announcement = params.IsAnnouncement
		header.Sections = slices.Clone(params.Sections)
		if header.Sections == nil {
			header.Sections = []models.Section{}
		}
		header.AssignmentID = 0
		header.Assignment = nil
		if params.AssignmentID != 0 {
			assignment := s.Assignments.MustGet(params.AssignmentID)
			header.Assignment = &assignment
			header.AssignmentID = assignment.ID
		}

		store.MustSucceed("add discussion header", s.DiscussionHeaders.Insert(header.ID, header))
		if params.GroupID != 0 {
			s.DiscussionsByGroup.Add(params.GroupID, header.ID)
		} else {
			s.DiscussionsByCourse.Add(course.ID, header.ID)
		}

		topic := models.DiscussionTopic{
			ID:            header.ID,
			Participants:  []models.DiscussionParticipant{author},
			View:          []models.DiscussionEntry{},
			UnreadEntries: []int64{},
		}
		store.MustSucceed("add discussion topic", s.DiscussionTopics.Insert(topic.ID, topic))

		c.logger.Debug().Int64("topic_id", header.ID).Bool("announcement", header.Announcement).Msg("discussion added")
	})
	return header
}

// AddReplyToDiscussion appends an unread reply to a topic and bumps the
// header's unread count in the same step.
func (c *Canvas) AddReplyToDiscussion(topicID, userID int64, params ReplyParams) models.DiscussionEntry {
	var entry models.DiscussionEntry
	c.update(func(s *store.State) {
		header := s.DiscussionHeaders.MustGet(topicID)
		topic := s.DiscussionTopics.MustGet(topicID)
		user := s.Users.MustGet(userID)

		message := params.Message
		if message == "" {
			message = c.faker.Sentence(12)
		}
		entry = models.DiscussionEntry{
			ID:        s.NextID(),
			Message:   c.sanitize(message),
			Unread:    true,
			Author:    models.DiscussionParticipant{ID: user.ID, DisplayName: user.Name, AvatarURL: user.AvatarURL},
			CreatedAt: c.now(),
			RatingSum: params.RatingSum,
		}
		if params.Attachment != nil {
			entry.Attachments = []models.RemoteFile{*params.Attachment}
		}

		topic.View = append(slices.Clone(topic.View), entry)
		topic.UnreadEntries = append(slices.Clone(topic.UnreadEntries), entry.ID)
		header.UnreadCount++

		store.MustSucceed("append discussion entry", s.DiscussionTopics.Replace(topic.ID, topic))
		store.MustSucceed("bump unread count", s.DiscussionHeaders.Replace(header.ID, header))
	})
	return entry
}

// AddPageToCourse creates a wiki page in a course, or in a group when
// GroupID is set.
func (c *Canvas) AddPageToCourse(params PageParams) models.Page {
	var page models.Page
	c.update(func(s *store.State) {
		s.Courses.MustGet(params.CourseID)
		if params.GroupID != 0 {
			s.Groups.MustGet(params.GroupID)
		}
		id := claimID(s, s.Pages.Kind(), params.ID)
		title := stringOr(params.Title, c.randomTitle())
		body := stringOr(params.Body, c.randomBody())
		url := params.URL
		if url == "" {
			url = strings.ToLower(strings.Join(strings.Fields(title), "-"))
		}

		page = models.Page{
			ID:        id,
			CourseID:  params.CourseID,
			GroupID:   params.GroupID,
			URL:       url,
			Title:     title,
			Body:      c.sanitize(body),
			Published: params.Published,
			FrontPage: params.FrontPage,
		}
		store.MustSucceed("add page", s.Pages.Insert(page.ID, page))
		if params.GroupID != 0 {
			s.PagesByGroup.Add(params.GroupID, page.ID)
		} else {
			s.PagesByCourse.Add(params.CourseID, page.ID)
		}
	})
	return page
}
