// File: internal/jobs/session_purge.go
package jobs

import (
	"context"
	"time"

	"weather_prediction_ui/internal/config"
	"weather_prediction_ui/internal/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	runTimeout  = 5 * time.Minute
	stopTimeout = 10 * time.Second
)

// SessionPurgeJob periodically deletes persisted sessions whose token has expired.
type SessionPurgeJob struct {
	sessions      session.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewSessionPurgeJob creates a new SessionPurgeJob.
func NewSessionPurgeJob(
	sessions session.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *SessionPurgeJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)

	return &SessionPurgeJob{
		sessions:      sessions,
		logger:        logger.Named("SessionPurgeJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *SessionPurgeJob) SetupAndStart() error {
	jobSpec := j.cfg.SessionPurgeSchedule
	if jobSpec == "" {
		j.logger.Warn("Session purge schedule not defined (SESSION_PURGE_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule session purge job", zap.String("schedule", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Session purge job scheduled", zap.String("schedule", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *SessionPurgeJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Session purge job run failed", zap.Error(err))
	}
}

// RunOnce purges expired sessions immediately. The purge-sessions command uses it.
func (j *SessionPurgeJob) RunOnce(ctx context.Context) (int64, error) {
	j.logger.Info("Starting session purge run")
	purged, err := j.sessions.PurgeExpired(ctx)
	if err != nil {
		return 0, err
	}
	j.logger.Info("Session purge run completed", zap.Int64("sessions_purged", purged))
	return purged, nil
}

// Stop gracefully stops the cron scheduler.
func (j *SessionPurgeJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping session purge scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Session purge scheduler stopped gracefully.")
	case <-time.After(stopTimeout):
		j.logger.Warn("Session purge scheduler stop timed out.")
	}
}
