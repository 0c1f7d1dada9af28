// Package scheduler wires the daily bill-reminder sweep onto a cron schedule.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"spendbook/internal/logger"
	"spendbook/internal/services"
)

// Start schedules the reminder sweep with the given cron expression and
// starts the scheduler. Jobs run on the scheduler's own goroutines, so the
// sweep never blocks request handling. The returned cron can be stopped on
// shutdown.
func Start(spec string, notifications services.NotificationServicer) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		created, err := notifications.CheckUpcomingBills(time.Now())
		if err != nil {
			logger.Get().Errorw("bill reminder sweep failed", "error", err)
			return
		}
		logger.Get().Infow("bill reminder sweep finished", "notifications_created", created)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Get().Infof("Reminder sweep scheduled (%s)", spec)
	return c, nil
}
