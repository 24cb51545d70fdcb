package models

import (
	"fmt"
	"time"
)

// ModuleItemType is the kind of content a module item points at.
type ModuleItemType string

const (
	ModuleItemAssignment   ModuleItemType = "Assignment"
	ModuleItemDiscussion   ModuleItemType = "Discussion"
	ModuleItemQuiz         ModuleItemType = "Quiz"
	ModuleItemFile         ModuleItemType = "File"
	ModuleItemPage         ModuleItemType = "Page"
	ModuleItemExternalURL  ModuleItemType = "ExternalUrl"
	ModuleItemExternalTool ModuleItemType = "ExternalTool"
)

// ModuleContent is anything that can be placed into a module. ModuleItemPath
// is either a path relative to the owning course or an absolute URL.
type ModuleContent interface {
	ModuleItemType() ModuleItemType
	ModuleItemTitle() string
	ModuleItemPath() string
}

// ExternalURL is a bare link placed into a module.
type ExternalURL string

// ModuleItemType implements ModuleContent.
func (u ExternalURL) ModuleItemType() ModuleItemType { return ModuleItemExternalURL }

// ModuleItemTitle implements ModuleContent.
func (u ExternalURL) ModuleItemTitle() string { return string(u) }

// ModuleItemPath implements ModuleContent.
func (u ExternalURL) ModuleItemPath() string { return string(u) }

func pathFor(collection string, id int64) string {
	return fmt.Sprintf("%s/%d", collection, id)
}

// ModuleContentDetails carries the due date and points shown next to an item.
type ModuleContentDetails struct {
	PointsPossible string     `json:"points_possible,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	LockedForUser  bool       `json:"locked_for_user"`
}

// ModuleObject is a course module with an ordered item list.
type ModuleObject struct {
	ID                 int64        `json:"id"`
	CourseID           int64        `json:"course_id"`
	Position           int          `json:"position"`
	Name               string       `json:"name"`
	SequentialProgress bool         `json:"require_sequential_progress"`
	Published          bool         `json:"published"`
	UnlockAt           *time.Time   `json:"unlock_at,omitempty"`
	PrerequisiteIDs    []int64      `json:"prerequisite_module_ids"`
	State              string       `json:"state,omitempty"`
	ItemCount          int          `json:"items_count"`
	Items              []ModuleItem `json:"items"`
}

// ModuleItem is one entry of a module.
type ModuleItem struct {
	ID            int64                 `json:"id"`
	ModuleID      int64                 `json:"module_id"`
	Title         string                `json:"title"`
	Type          ModuleItemType        `json:"type"`
	Position      int                   `json:"position"`
	Published     bool                  `json:"published"`
	URL           string                `json:"url"`
	HTMLURL       string                `json:"html_url"`
	ContentID     int64                 `json:"content_id"`
	Details       *ModuleContentDetails `json:"content_details,omitempty"`
	Unpublishable bool                  `json:"unpublishable"`
}
