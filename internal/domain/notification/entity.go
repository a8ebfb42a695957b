package notification

import (
	"time"
)

// NotificationType represents the severity of a notification
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeWarning NotificationType = "warning"
	TypeError   NotificationType = "error"
)

// Notification represents a notification entity
type Notification struct {
	ID           string
	Type         NotificationType
	Title        string
	Message      string
	EmployeeID   *string
	EmployeeName *string
	Data         map[string]interface{}
	IsRead       bool
	ReadAt       *time.Time
	CreatedAt    time.Time
}
