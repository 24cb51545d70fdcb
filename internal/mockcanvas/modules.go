package mockcanvas

import (
	"fmt"
	"slices"
	"time"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// ModuleParams controls AddModuleToCourse.
type ModuleParams struct {
	CourseID        int64
	Name            string
	Sequential      bool
	Published       *bool
	UnlockAt        *time.Time
	PrerequisiteIDs []int64
	State           string
}

// ModuleItemParams controls AddItemToModule.
type ModuleItemParams struct {
	ContentID     int64
	Published     *bool
	Details       *models.ModuleContentDetails
	Unpublishable *bool
}

// AddModuleToCourse appends an empty module to a course.
func (c *Canvas) AddModuleToCourse(params ModuleParams) models.ModuleObject {
	var module models.ModuleObject
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(params.CourseID)
		prerequisites := slices.Clone(params.PrerequisiteIDs)
		if prerequisites == nil {
			prerequisites = []int64{}
		}
		module = models.ModuleObject{
			ID:                 s.NextID(),
			CourseID:           course.ID,
			Position:           s.ModulesByCourse.Len(course.ID),
			Name:               params.Name,
			SequentialProgress: params.Sequential,
			Published:          boolOr(params.Published, true),
			UnlockAt:           params.UnlockAt,
			PrerequisiteIDs:    prerequisites,
			State:              params.State,
			Items:              []models.ModuleItem{},
		}
		store.MustSucceed("add module", s.Modules.Insert(module.ID, module))
		s.ModulesByCourse.Add(course.ID, module.ID)
	})
	return module
}

// AddItemToModule places content into a module. The module is replaced by a
// new snapshot; snapshots handed out earlier keep their item list.
func (c *Canvas) AddItemToModule(courseID, moduleID int64, content models.ModuleContent, params ModuleItemParams) models.ModuleItem {
	var item models.ModuleItem
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(courseID)
		module := s.Modules.MustGet(moduleID)
		if module.CourseID != course.ID {
			panic(fmt.Errorf("%w: module %d in course %d", store.ErrMissingParent, moduleID, courseID))
		}

		url := content.ModuleItemPath()
		switch content.ModuleItemType() {
		case models.ModuleItemExternalURL, models.ModuleItemExternalTool:
		default:
			url = c.apiURL("courses/%d/%s", course.ID, url)
		}

		item = models.ModuleItem{
			ID:            s.NextID(),
			ModuleID:      module.ID,
			Title:         content.ModuleItemTitle(),
			Type:          content.ModuleItemType(),
			Position:      len(module.Items),
			Published:     boolOr(params.Published, true),
			URL:           url,
			HTMLURL:       url,
			ContentID:     params.ContentID,
			Details:       params.Details,
			Unpublishable: boolOr(params.Unpublishable, true),
		}

		module.Items = append(slices.Clone(module.Items), item)
		module.ItemCount = len(module.Items)
		store.MustSucceed("replace module", s.Modules.Replace(module.ID, module))

		c.logger.Debug().
			Int64("module_id", module.ID).
			Str("item_type", string(item.Type)).
			Int("position", item.Position).
			Msg("module item added")
	})
	return item
}
