package mockcanvas

import (
	"time"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// AlertParams controls AddObserverAlert.
type AlertParams struct {
	ObserverID    int64
	StudentID     int64
	ContextType   string
	ContextID     int64
	AlertType     models.AlertType
	WorkflowState models.AlertWorkflowState
	ActionDate    time.Time
	HTMLURL       string
	LockedForUser bool
	Threshold     string
	// ThresholdID reuses an existing threshold; a new one is created when
	// it is zero or unknown.
	ThresholdID int64
}

// ThresholdParams controls AddObserverAlertThreshold.
type ThresholdParams struct {
	ID         int64
	AlertType  models.AlertType
	ObserverID int64
	StudentID  int64
	Threshold  string
}

// AddAccountNotification creates a global announcement active from a day
// ago until a day from now.
func (c *Canvas) AddAccountNotification() models.AccountNotification {
	var notification models.AccountNotification
	c.update(func(s *store.State) {
		notification = c.addAccountNotification(s)
	})
	return notification
}

func (c *Canvas) addAccountNotification(s *store.State) models.AccountNotification {
	now := c.now()
	notification := models.AccountNotification{
		ID:      s.NextID(),
		Subject: c.randomSubject(),
		Message: c.randomBody(),
		StartAt: now.AddDate(0, 0, -1),
		EndAt:   now.AddDate(0, 0, 1),
		Icon:    models.AccountNotificationIconQuestion,
	}
	store.MustSucceed("add account notification", s.AccountNotifications.Insert(notification.ID, notification))
	return notification
}

// RemoveAccountNotification deletes a global announcement and reports
// whether it existed.
func (c *Canvas) RemoveAccountNotification(id int64) bool {
	var removed bool
	c.update(func(s *store.State) {
		removed = s.AccountNotifications.Has(id)
		s.AccountNotifications.Delete(id)
	})
	return removed
}

// AddObserverAlert raises an alert for an observer about a student,
// creating the matching threshold when it does not exist yet.
func (c *Canvas) AddObserverAlert(params AlertParams) models.Alert {
	var alert models.Alert
	c.update(func(s *store.State) {
		s.Users.MustGet(params.ObserverID)
		s.Users.MustGet(params.StudentID)

		thresholdID := params.ThresholdID
		if thresholdID == 0 {
			thresholdID = s.NextID()
		}
		if !s.AlertThresholds.Has(thresholdID) {
			c.addThreshold(s, ThresholdParams{
				ID:         thresholdID,
				AlertType:  params.AlertType,
				ObserverID: params.ObserverID,
				StudentID:  params.StudentID,
				Threshold:  params.Threshold,
			})
		}

		alert = models.Alert{
			ID:                       s.NextID(),
			ObserverID:               params.ObserverID,
			UserID:                   params.StudentID,
			ObserverAlertThresholdID: thresholdID,
			ContextType:              params.ContextType,
			ContextID:                params.ContextID,
			AlertType:                params.AlertType,
			WorkflowState:            params.WorkflowState,
			ActionDate:               params.ActionDate,
			Title:                    c.randomSubject(),
			HTMLURL:                  params.HTMLURL,
			LockedForUser:            params.LockedForUser,
		}
		store.MustSucceed("add alert", s.Alerts.Insert(alert.ID, alert))
		s.AlertsByStudent.Add(params.StudentID, alert.ID)
	})
	return alert
}

// AddObserverAlertThreshold configures an active alert threshold.
func (c *Canvas) AddObserverAlertThreshold(params ThresholdParams) models.AlertThreshold {
	var threshold models.AlertThreshold
	c.update(func(s *store.State) {
		s.Users.MustGet(params.ObserverID)
		s.Users.MustGet(params.StudentID)
		params.ID = claimID(s, s.AlertThresholds.Kind(), params.ID)
		threshold = c.addThreshold(s, params)
	})
	return threshold
}

func (c *Canvas) addThreshold(s *store.State, params ThresholdParams) models.AlertThreshold {
	threshold := models.AlertThreshold{
		ID:            params.ID,
		ObserverID:    params.ObserverID,
		UserID:        params.StudentID,
		Threshold:     params.Threshold,
		AlertType:     params.AlertType,
		WorkflowState: models.ThresholdStateActive,
	}
	store.MustSucceed("add alert threshold", s.AlertThresholds.Insert(threshold.ID, threshold))
	s.ThresholdsByStudent.Add(params.StudentID, threshold.ID)
	return threshold
}
