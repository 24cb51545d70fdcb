package models

import "time"

// ConversationState is the inbox workflow state of a conversation.
type ConversationState string

const (
	ConversationUnread   ConversationState = "unread"
	ConversationRead     ConversationState = "read"
	ConversationArchived ConversationState = "archived"
)

// Message is one message in a conversation.
type Message struct {
	ID                   int64     `json:"id"`
	CreatedAt            time.Time `json:"created_at"`
	Body                 string    `json:"body"`
	AuthorID             int64     `json:"author_id"`
	ParticipatingUserIDs []int64   `json:"participating_user_ids"`
}

// Conversation is an inbox thread embedding its messages and participants.
type Conversation struct {
	ID                    int64             `json:"id"`
	Subject               string            `json:"subject"`
	WorkflowState         ConversationState `json:"workflow_state"`
	LastMessage           string            `json:"last_message"`
	LastAuthoredMessageAt time.Time         `json:"last_authored_message_at"`
	MessageCount          int               `json:"message_count"`
	Messages              []Message         `json:"messages"`
	AvatarURL             string            `json:"avatar_url"`
	Starred               bool              `json:"starred"`
	ContextName           string            `json:"context_name,omitempty"`
	ContextCode           string            `json:"context_code,omitempty"`
	Participants          []BasicUser       `json:"participants"`
	CannotReply           bool              `json:"cannot_reply"`
}

// Recipient is an addressable user or group in the inbox composer.
type Recipient struct {
	StringID      string              `json:"id"`
	Name          string              `json:"name"`
	AvatarURL     string              `json:"avatar_url,omitempty"`
	UserCount     int                 `json:"user_count,omitempty"`
	CommonCourses map[string][]string `json:"common_courses,omitempty"`
}
