package models

import "time"

// DiscussionParticipant is the author reference embedded in discussions.
type DiscussionParticipant struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_image_url,omitempty"`
}

// DiscussionTopicPermission lists what the current user may do in a topic.
type DiscussionTopicPermission struct {
	Attach bool `json:"attach"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
	Reply  bool `json:"reply"`
}

// RemoteFile is a file attached to a discussion topic or entry.
type RemoteFile struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	FileName    string `json:"filename"`
	ContentType string `json:"content-type"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
}

// DiscussionTopicHeader is the list-level view of a discussion or
// announcement. Its companion DiscussionTopic shares the same ID.
type DiscussionTopicHeader struct {
	ID                 int64                     `json:"id"`
	CourseID           int64                     `json:"course_id,omitempty"`
	GroupID            int64                     `json:"group_id,omitempty"`
	Title              string                    `json:"title"`
	Message            string                    `json:"message"`
	DiscussionType     string                    `json:"discussion_type"`
	Author             DiscussionParticipant     `json:"author"`
	Published          bool                      `json:"published"`
	AllowRating        bool                      `json:"allow_rating"`
	OnlyGradersCanRate bool                      `json:"only_graders_can_rate"`
	Permissions        DiscussionTopicPermission `json:"permissions"`
	PostedAt           time.Time                 `json:"posted_at"`
	Attachments        []RemoteFile              `json:"attachments"`
	Announcement       bool                      `json:"is_announcement"`
	Sections           []Section                 `json:"sections"`
	AssignmentID       int64                     `json:"assignment_id,omitempty"`
	Assignment         *Assignment               `json:"assignment,omitempty"`
	UnreadCount        int                       `json:"unread_count"`
}

// ModuleItemType implements ModuleContent.
func (h DiscussionTopicHeader) ModuleItemType() ModuleItemType { return ModuleItemDiscussion }

// ModuleItemTitle implements ModuleContent.
func (h DiscussionTopicHeader) ModuleItemTitle() string { return h.Title }

// ModuleItemPath implements ModuleContent.
func (h DiscussionTopicHeader) ModuleItemPath() string { return pathFor("discussion_topics", h.ID) }

// DiscussionEntry is a single reply.
type DiscussionEntry struct {
	ID          int64                 `json:"id"`
	Message     string                `json:"message"`
	Unread      bool                  `json:"unread"`
	Author      DiscussionParticipant `json:"author"`
	CreatedAt   time.Time             `json:"created_at"`
	RatingSum   int                   `json:"rating_sum"`
	Attachments []RemoteFile          `json:"attachments,omitempty"`
}

// DiscussionTopic holds the live entry tree and unread bookkeeping.
type DiscussionTopic struct {
	ID            int64                   `json:"id"`
	Participants  []DiscussionParticipant `json:"participants"`
	View          []DiscussionEntry       `json:"view"`
	UnreadEntries []int64                 `json:"unread_entries"`
}
