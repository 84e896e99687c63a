package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/xaenox/scamshield/internal/entitlement"
	"github.com/xaenox/scamshield/internal/models"
	"github.com/xaenox/scamshield/internal/storage"
	"go.uber.org/zap"
)

// Result of one quota check. Tracked is false for premium users, whose
// checks are neither counted nor limited; Count is meaningful only when
// Tracked is true.
type Result struct {
	Allowed bool
	Count   int
	Tracked bool
	Limit   int
}

// Quota enforces the per-day check limit for non-premium users. Calling
// CheckAndIncrement IS the increment; there is no separate commit step, so
// it must be called exactly once per inbound message.
type Quota struct {
	store        storage.Storage
	entitlements *entitlement.Service
	limit        int
	locks        *storage.KeyMutex
	logger       *zap.Logger
	now          func() time.Time
}

func New(store storage.Storage, entitlements *entitlement.Service, dailyLimit int, logger *zap.Logger) *Quota {
	return &Quota{
		store:        store,
		entitlements: entitlements,
		limit:        dailyLimit,
		locks:        storage.NewKeyMutex(),
		logger:       logger,
		now:          time.Now,
	}
}

// Limit returns the configured daily limit.
func (q *Quota) Limit() int {
	return q.limit
}

// CheckAndIncrement consumes one check for the user if any remain today.
// The counter resets when the stored day differs from the current UTC day.
func (q *Quota) CheckAndIncrement(ctx context.Context, userID int64) (Result, error) {
	premium, err := q.entitlements.IsPremium(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check entitlement: %w", err)
	}
	if premium {
		return Result{Allowed: true, Limit: q.limit}, nil
	}

	unlock := q.locks.Lock(userID)
	defer unlock()

	record, err := q.store.GetUsage(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load usage: %w", err)
	}

	today := q.now().UTC().Format(models.DayFormat)
	if record == nil || record.Day != today {
		record = &models.Usage{UserID: userID, Day: today, Count: 0}
	}

	if record.Count >= q.limit {
		// Persist the possibly rolled-over record, count untouched.
		if err := q.store.SaveUsage(ctx, record); err != nil {
			return Result{}, fmt.Errorf("failed to save usage: %w", err)
		}
		return Result{Allowed: false, Count: record.Count, Tracked: true, Limit: q.limit}, nil
	}

	record.Count++
	if err := q.store.SaveUsage(ctx, record); err != nil {
		return Result{}, fmt.Errorf("failed to save usage: %w", err)
	}

	q.logger.Debug("usage incremented",
		zap.Int64("user_id", userID),
		zap.Int("count", record.Count),
		zap.String("day", today))
	return Result{Allowed: true, Count: record.Count, Tracked: true, Limit: q.limit}, nil
}
