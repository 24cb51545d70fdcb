package models

import "fmt"

// Group is a student group inside a course. Members are referenced by id.
type Group struct {
	ID          int64             `json:"id"`
	CourseID    int64             `json:"course_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsPublic    bool              `json:"is_public"`
	IsFavorite  bool              `json:"is_favorite"`
	MemberIDs   []int64           `json:"member_ids"`
	Permissions ContextPermission `json:"permissions"`
}

// ContextID returns the context code of the group.
func (g Group) ContextID() string {
	return fmt.Sprintf("group_%d", g.ID)
}

// Bookmark is a saved deep link.
type Bookmark struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}
