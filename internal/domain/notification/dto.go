package notification

import (
	"time"
)

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID           string                 `json:"id"`
	Type         NotificationType       `json:"type"`
	Title        string                 `json:"title"`
	Message      string                 `json:"message"`
	EmployeeID   *string                `json:"employee_id,omitempty"`
	EmployeeName *string                `json:"employee_name,omitempty"`
	Data         map[string]interface{} `json:"data,omitempty"`
	IsRead       bool                   `json:"is_read"`
	ReadAt       *time.Time             `json:"read_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// NewNotificationResponse maps an entity to its response.
func NewNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		Type:         n.Type,
		Title:        n.Title,
		Message:      n.Message,
		EmployeeID:   n.EmployeeID,
		EmployeeName: n.EmployeeName,
		Data:         n.Data,
		IsRead:       n.IsRead,
		ReadAt:       n.ReadAt,
		CreatedAt:    n.CreatedAt,
	}
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// BulkResultResponse reports how many notifications a bulk operation touched
type BulkResultResponse struct {
	Affected int64 `json:"affected"`
}
