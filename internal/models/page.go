package models

// Page is a wiki page owned by a course or a group.
type Page struct {
	ID        int64  `json:"page_id"`
	CourseID  int64  `json:"course_id,omitempty"`
	GroupID   int64  `json:"group_id,omitempty"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	FrontPage bool   `json:"front_page"`
}

// ModuleItemType implements ModuleContent.
func (p Page) ModuleItemType() ModuleItemType { return ModuleItemPage }

// ModuleItemTitle implements ModuleContent.
func (p Page) ModuleItemTitle() string { return p.Title }

// ModuleItemPath implements ModuleContent.
func (p Page) ModuleItemPath() string { return pathFor("pages", p.ID) }
