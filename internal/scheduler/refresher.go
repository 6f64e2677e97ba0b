package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/service"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// StatusRefresher periodically recomputes progress for unfinished
// goals so that goals past their end date flip to uncompleted even
// when the owner stops submitting occurrences.
type StatusRefresher struct {
	progressService service.ProgressService
	cron            *cron.Cron
	interval        time.Duration
}

// NewStatusRefresher creates a new status refresher.
func NewStatusRefresher(progressService service.ProgressService, interval time.Duration) *StatusRefresher {
	return &StatusRefresher{
		progressService: progressService,
		cron:            cron.New(),
		interval:        interval,
	}
}

// Start registers the refresh job and starts the cron loop.
func (r *StatusRefresher) Start() error {
	cronExpr := fmt.Sprintf("@every %s", r.interval.String())

	log.WithField("interval", r.interval).Info("Starting goal status refresher")

	_, err := r.cron.AddFunc(cronExpr, func() {
		r.refresh()
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	r.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running refresh to finish.
func (r *StatusRefresher) Stop() {
	log.Info("Stopping goal status refresher...")
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Info("Goal status refresher stopped")
}

func (r *StatusRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := r.progressService.RefreshGoalStatuses(ctx); err != nil {
		log.WithError(err).Error("Goal status refresh failed")
		return
	}

	log.Debug("Goal status refresh completed")
}
