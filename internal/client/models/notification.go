package models

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotificationBudgetWarning  NotificationType = "budget_warning"
	NotificationBudgetExceeded NotificationType = "budget_exceeded"
	NotificationGoalAchieved   NotificationType = "goal_achieved"
	NotificationReminder       NotificationType = "reminder"
	NotificationSystem         NotificationType = "system"
)

type Notification struct {
	ID          int64            `json:"id"`
	Type        NotificationType `json:"type"`
	TypeDisplay string           `json:"type_display,omitempty"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Data        json.RawMessage  `json:"data,omitempty"`
	IsRead      bool             `json:"is_read"`
	EmailSent   bool             `json:"email_sent"`
	CreatedAt   *time.Time       `json:"created_at,omitempty"`
	TimeAgo     string           `json:"time_ago,omitempty"`
}

type NotificationCount struct {
	Success     bool `json:"success"`
	UnreadCount int  `json:"unread_count"`
}

// MarkReadRequest marks the listed notifications, or all of them.
type MarkReadRequest struct {
	NotificationIDs []int64 `json:"notification_ids,omitempty"`
	All             bool    `json:"all,omitempty"`
}
