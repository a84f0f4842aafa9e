package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"gorm.io/gorm"
)

// Options tunes retention windows for the cleanup jobs.
// Page visits are kept forever unless VisitRetention is positive.
type Options struct {
	VisitRetention time.Duration
	LogRetention   time.Duration
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron    *cron.Cron
	db      *gorm.DB
	options Options
}

// Job is a unit of scheduled work. It returns the number of rows it touched.
type Job func(m *CronManager) (int64, error)

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, options Options) *CronManager {
	if options.LogRetention <= 0 {
		options.LogRetention = 90 * 24 * time.Hour
	}

	// seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:    c,
		db:      db,
		options: options,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	logger.Info().Int("jobs", len(m.cron.Entries())).Msg("cron jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cron jobs stopped")
}

type scheduledJob struct {
	spec string
	name string
	job  Job
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	schedule := []scheduledJob{
		// Hourly: drop revoked sessions whose tokens have expired anyway
		{"0 5 * * * *", "prune_revoked_sessions", (*CronManager).PruneRevokedSessions},
		// Daily at 3 AM: drop old audit and cron logs
		{"0 0 3 * * *", "prune_logs", (*CronManager).PruneLogs},
	}
	if m.options.VisitRetention > 0 {
		// Daily at 2 AM: drop page visits older than the retention window
		schedule = append(schedule, scheduledJob{"0 0 2 * * *", "prune_page_visits", (*CronManager).PrunePageVisits})
	}

	for _, s := range schedule {
		s := s
		if _, err := m.cron.AddFunc(s.spec, func() { m.RunJob(s.name, s.job) }); err != nil {
			return err
		}
	}

	return nil
}

// RunJob executes a job and records its outcome in cron_job_logs
func (m *CronManager) RunJob(name string, job Job) {
	entry := m.logJobStart(name)

	affected, err := job(m)
	if err != nil {
		m.logJobError(entry, err)
		return
	}
	m.logJobComplete(entry, affected)
}

func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	logger.Info().Str("job", jobName).Msg("cron job started")

	cronLog := &model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	if err := m.db.Create(cronLog).Error; err != nil {
		logger.Warn().Err(err).Str("job", jobName).Msg("failed to write cron log")
	}
	return cronLog
}

func (m *CronManager) logJobComplete(entry *model.CronJobLog, affected int64) {
	completedAt := time.Now()
	logger.Info().Str("job", entry.JobName).Int64("affected", affected).Msg("cron job completed")

	m.db.Model(entry).Updates(map[string]interface{}{
		"status":       "completed",
		"completed_at": completedAt,
		"duration":     completedAt.Sub(entry.StartedAt).Milliseconds(),
		"affected":     affected,
	})
}

func (m *CronManager) logJobError(entry *model.CronJobLog, err error) {
	completedAt := time.Now()
	logger.Error().Err(err).Str("job", entry.JobName).Msg("cron job failed")

	m.db.Model(entry).Updates(map[string]interface{}{
		"status":       "failed",
		"completed_at": completedAt,
		"duration":     completedAt.Sub(entry.StartedAt).Milliseconds(),
		"error_msg":    err.Error(),
	})
}
