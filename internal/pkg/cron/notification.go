package cron

import (
	"context"
	"log/slog"
	"time"
)

// NotificationPurger removes read notifications older than a cutoff.
type NotificationPurger interface {
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
}

// NotificationJobs holds the retention job for overtime alert notifications.
type NotificationJobs struct {
	purger    NotificationPurger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewNotificationJobs(purger NotificationPurger, retention, interval time.Duration) *NotificationJobs {
	return &NotificationJobs{
		purger:    purger,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

func (j *NotificationJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(Job{
		Name:       "purge_read_notifications",
		Interval:   j.interval,
		RunOnStart: true,
		Fn:         j.PurgeReadNotifications,
	})
}

// PurgeReadNotifications deletes notifications read before now minus the retention period.
func (j *NotificationJobs) PurgeReadNotifications(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)

	deleted, err := j.purger.PurgeRead(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: purged read notifications", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}
