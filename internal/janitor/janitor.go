package janitor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xaenox/scamshield/internal/models"
	"github.com/xaenox/scamshield/internal/storage"
	"go.uber.org/zap"
)

// Janitor purges usage records from past days on a nightly schedule. The
// quota already ignores stale records; this keeps the store from growing
// with one row per user forever.
type Janitor struct {
	store  storage.Storage
	cron   *cron.Cron
	logger *zap.Logger
}

func New(store storage.Storage, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:  store,
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
	}
}

// Start schedules the nightly purge. Call Stop on shutdown.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("0 3 * * *", j.purge); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	today := time.Now().UTC().Format(models.DayFormat)
	if err := j.store.DeleteUsageBefore(ctx, today); err != nil {
		j.logger.Error("failed to purge stale usage records", zap.Error(err))
		return
	}
	j.logger.Info("purged stale usage records", zap.String("before", today))
}
