package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/campuskit/campusboard-backend/pkg/logger"
)

const defaultRetentionDays = 30

// ledgerPruner deletes read notifications older than a cutoff.
type ledgerPruner interface {
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionJobParams configure the notification retention job.
type RetentionJobParams struct {
	Logger        *logger.Logger
	Ledger        ledgerPruner
	RetentionDays int
}

// NewRetentionJob builds the job that prunes read notifications past
// the retention window.
func NewRetentionJob(params RetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultRetentionDays
	}
	return &retentionJob{
		logg:      params.Logger,
		ledger:    params.Ledger,
		retention: retention,
		now:       time.Now,
	}, nil
}

type retentionJob struct {
	logg      *logger.Logger
	ledger    ledgerPruner
	retention int
	now       func() time.Time
}

func (j *retentionJob) Name() string { return "notification-retention" }

func (j *retentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	deleted, err := j.ledger.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("notification retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "notification retention complete")
	return nil
}
