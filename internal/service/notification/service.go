package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/validator"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type service struct {
	repo notification.Repository
}

// NewNotificationService creates the read side of the overtime alert notifications.
// Alerts are written by the overtime service in the same transaction as the entry.
func NewNotificationService(repo notification.Repository) notification.Service {
	return &service{repo: repo}
}

// GetNotifications returns a page of notifications, newest first
func (s *service) GetNotifications(ctx context.Context, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	notifications, total, err := s.repo.List(ctx, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NewNotificationResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount returns the number of unread notifications
func (s *service) GetUnreadCount(ctx context.Context) (int, error) {
	return s.repo.GetUnreadCount(ctx)
}

// MarkAsRead marks a single notification as read
func (s *service) MarkAsRead(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return notification.ErrNotificationNotFound
	}
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks every unread notification as read
func (s *service) MarkAllAsRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllAsRead(ctx)
}

// Delete removes a notification
func (s *service) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return notification.ErrNotificationNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Clear removes all notifications, read or not
func (s *service) Clear(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	slog.Info("Notifications cleared", "deleted", deleted)
	return deleted, nil
}

// PurgeRead deletes notifications read before the cutoff
func (s *service) PurgeRead(ctx context.Context, before time.Time) (int64, error) {
	deleted, err := s.repo.DeleteReadBefore(ctx, before)
	if err != nil {
		slog.Error("Failed to purge read notifications", "error", err, "before", before)
		return 0, err
	}
	return deleted, nil
}
