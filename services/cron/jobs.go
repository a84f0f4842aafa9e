package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/auth"
)

const jobTimeout = 5 * time.Minute

// PrunePageVisits deletes visits older than the retention window. Without a window it is a no-op.
func (m *CronManager) PrunePageVisits() (int64, error) {
	if m.options.VisitRetention <= 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := time.Now().Add(-m.options.VisitRetention)
	result := m.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.PageVisit{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune page visits: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// PruneRevokedSessions removes revocations for tokens that have expired
func (m *CronManager) PruneRevokedSessions() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	return auth.NewRevocationService(m.db).CleanupExpired(ctx)
}

// PruneLogs deletes audit and cron logs older than the log retention window
func (m *CronManager) PruneLogs() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := time.Now().Add(-m.options.LogRetention)

	audit := m.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.AdminAuditLog{})
	if audit.Error != nil {
		return 0, fmt.Errorf("failed to prune audit logs: %w", audit.Error)
	}

	cronLogs := m.db.WithContext(ctx).Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if cronLogs.Error != nil {
		return audit.RowsAffected, fmt.Errorf("failed to prune cron logs: %w", cronLogs.Error)
	}

	return audit.RowsAffected + cronLogs.RowsAffected, nil
}
