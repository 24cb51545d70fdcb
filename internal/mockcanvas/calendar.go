package mockcanvas

import (
	"fmt"
	"time"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// CalendarEventParams controls the calendar event builders.
type CalendarEventParams struct {
	Start         time.Time
	End           *time.Time
	Title         string
	Description   string
	ImportantDate bool
	RRule         string
	Location      string
	Address       string
}

// PlannerParams controls AddTodo and AddPlannable.
type PlannerParams struct {
	Name     string
	UserID   int64
	CourseID int64
	Date     *time.Time
	Details  string
}

func (c *Canvas) newEvent(s *store.State, kind, contextCode, contextName string, params CalendarEventParams) models.ScheduleItem {
	event := models.ScheduleItem{
		ID:                    s.NextID(),
		Title:                 params.Title,
		Description:           params.Description,
		Type:                  kind,
		AllDay:                true,
		StartAt:               params.Start,
		ContextCode:           contextCode,
		ContextName:           contextName,
		ImportantDate:         params.ImportantDate,
		RRule:                 params.RRule,
		SeriesNaturalLanguage: params.RRule,
		LocationName:          params.Location,
		LocationAddress:       params.Address,
		WorkflowState:         "active",
	}
	if params.End != nil {
		event.EndAt = params.End
	} else {
		event.AllDayAt = timePtr(params.Start)
		event.EndAt = timePtr(params.Start)
	}
	return event
}

func (c *Canvas) storeEvent(s *store.State, event models.ScheduleItem) {
	store.MustSucceed("add calendar event", s.CalendarEvents.Insert(event.ID, event))
	s.EventsByContext.Add(event.ContextCode, event.ID)
}

// AddCourseCalendarEvent adds an all-day event to a course calendar.
func (c *Canvas) AddCourseCalendarEvent(courseID int64, params CalendarEventParams) models.ScheduleItem {
	var event models.ScheduleItem
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(courseID)
		event = c.newEvent(s, models.ScheduleItemCalendar, course.ContextID(), course.Name, params)
		c.storeEvent(s, event)
	})
	return event
}

// AddUserCalendarEvent adds an all-day event to a personal calendar.
func (c *Canvas) AddUserCalendarEvent(userID int64, params CalendarEventParams) models.ScheduleItem {
	var event models.ScheduleItem
	c.update(func(s *store.State) {
		s.Users.MustGet(userID)
		params.End = nil
		event = c.newEvent(s, models.ScheduleItemCalendar, contextKey("user", userID), fmt.Sprintf("User %d", userID), params)
		c.storeEvent(s, event)
	})
	return event
}

// AddAssignmentCalendarEvent shows an assignment on a course calendar.
func (c *Canvas) AddAssignmentCalendarEvent(courseID, assignmentID int64, params CalendarEventParams) models.ScheduleItem {
	var event models.ScheduleItem
	c.update(func(s *store.State) {
		course := s.Courses.MustGet(courseID)
		assignment := s.Assignments.MustGet(assignmentID)
		event = models.ScheduleItem{
			ID:            s.NextID(),
			Title:         params.Title,
			Description:   params.Description,
			Type:          models.ScheduleItemAssignment,
			AllDay:        true,
			AllDayAt:      timePtr(params.Start),
			StartAt:       params.Start,
			ContextCode:   course.ContextID(),
			ImportantDate: params.ImportantDate,
			Assignment:    &assignment,
		}
		c.storeEvent(s, event)
	})
	return event
}

// AddTodo adds a personal planner note.
func (c *Canvas) AddTodo(params PlannerParams) models.PlannerItem {
	var item models.PlannerItem
	c.update(func(s *store.State) {
		item = c.addPlannerItem(s, params, models.PlannableTodo, false)
	})
	return item
}

// AddPlannable adds a planner entry of the given type, in the course
// context when CourseID is set and in the user context otherwise.
func (c *Canvas) AddPlannable(params PlannerParams, kind models.PlannableType) models.PlannerItem {
	var item models.PlannerItem
	c.update(func(s *store.State) {
		item = c.addPlannerItem(s, params, kind, true)
	})
	return item
}

func (c *Canvas) addPlannerItem(s *store.State, params PlannerParams, kind models.PlannableType, withContext bool) models.PlannerItem {
	s.Users.MustGet(params.UserID)
	var course models.Course
	if params.CourseID != 0 {
		course = s.Courses.MustGet(params.CourseID)
	}

	date := c.now()
	if params.Date != nil {
		date = *params.Date
	}
	item := models.PlannerItem{
		CourseID:      params.CourseID,
		UserID:        params.UserID,
		PlannableType: kind,
		Plannable: models.Plannable{
			ID:       s.NextID(),
			Title:    params.Name,
			CourseID: params.CourseID,
			UserID:   params.UserID,
			TodoDate: params.Date,
			Details:  params.Details,
		},
		PlannableDate: date,
	}
	if withContext {
		item.ContextType = "user"
		if params.CourseID != 0 {
			item.ContextType = "course"
			item.ContextName = course.Name
		}
	}
	store.MustSucceed("add planner item", s.PlannerItems.Insert(item.Plannable.ID, item))
	s.PlannerItemsByUser.Add(item.UserID, item.Plannable.ID)
	return item
}
