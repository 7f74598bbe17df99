package jobs

import (
	"context"
	"fmt"
	"time"

	"dispatcher/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SnapshotJob по расписанию сохраняет состояние реестров в базу.
// Расписание в формате cron с секундами или дескриптор вида "@every 30s".
type SnapshotJob struct {
	snapshotter Snapshotter
	cron        *cron.Cron
	log         handlerLogger
	schedule    string
	timeout     time.Duration
}

func NewSnapshotJob(log handlerLogger, snapshotter Snapshotter, schedule string, timeout time.Duration) *SnapshotJob {
	return &SnapshotJob{
		snapshotter: snapshotter,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		schedule: schedule,
		timeout:  timeout,
		log: log.With(
			logger.NewField("component", "snapshot_job"),
		),
	}
}

func (j *SnapshotJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if err := j.snapshotter.Snapshot(ctx); err != nil {
			j.log.Error("snapshot job failed",
				logger.NewField("error", err),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule snapshot %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.log.Info("snapshot job started",
		logger.NewField("schedule", j.schedule),
	)
	return nil
}

// Stop дожидается текущего запуска и делает финальный снапшот,
// чтобы изменения после последнего тика не потерялись.
func (j *SnapshotJob) Stop(ctx context.Context) error {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := j.snapshotter.Snapshot(ctx); err != nil {
		return fmt.Errorf("final snapshot: %w", err)
	}
	j.log.Info("snapshot job stopped")
	return nil
}
