package services

import (
	"context"
	"sync"
	"time"

	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"gorm.io/gorm"
)

// VisitRecorder writes page visits off the request path
type VisitRecorder struct {
	db      *gorm.DB
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewVisitRecorder creates a recorder whose inserts give up after timeout
func NewVisitRecorder(db *gorm.DB, timeout time.Duration) *VisitRecorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &VisitRecorder{db: db, timeout: timeout}
}

// Record inserts the visit on a detached goroutine. Failures are logged and never surface.
func (r *VisitRecorder) Record(path, ipAddress, userAgent string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().Interface("panic", rec).Str("path", path).Msg("page visit recorder panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		visit := model.PageVisit{
			Path:      path,
			IPAddress: ipAddress,
			UserAgent: userAgent,
		}
		if err := r.db.WithContext(ctx).Create(&visit).Error; err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to record page visit")
		}
	}()
}

// Wait blocks until in-flight inserts finish, used on shutdown
func (r *VisitRecorder) Wait() {
	r.wg.Wait()
}
