package notification

import (
	"context"
	"time"
)

// Service defines the notification service interface
type Service interface {
	GetNotifications(ctx context.Context, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
}
