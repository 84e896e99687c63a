package entitlement

import (
	"context"
	"fmt"
	"time"

	"github.com/xaenox/scamshield/internal/models"
	"github.com/xaenox/scamshield/internal/storage"
	"go.uber.org/zap"
)

// Service manages premium entitlements. Grants stack: renewing while still
// premium extends the existing expiry instead of discarding unused days.
type Service struct {
	store  storage.Storage
	locks  *storage.KeyMutex
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store storage.Storage, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		locks:  storage.NewKeyMutex(),
		logger: logger,
		now:    time.Now,
	}
}

// Grant sets or extends a user's premium period by the given number of days
// and returns the new expiry. If the user is currently premium the extension
// is applied on top of the existing expiry, otherwise it counts from now.
func (s *Service) Grant(ctx context.Context, userID int64, days int) (time.Time, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	current, err := s.store.GetEntitlement(ctx, userID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load entitlement: %w", err)
	}

	base := s.now().UTC()
	if current != nil && current.PremiumUntil != nil && current.PremiumUntil.After(base) {
		base = current.PremiumUntil.UTC()
	}
	until := base.Add(time.Duration(days) * 24 * time.Hour)

	record := &models.Entitlement{
		UserID:       userID,
		Premium:      true,
		PremiumUntil: &until,
	}
	if err := s.store.SaveEntitlement(ctx, record); err != nil {
		return time.Time{}, fmt.Errorf("failed to save entitlement: %w", err)
	}

	s.logger.Info("premium granted",
		zap.Int64("user_id", userID),
		zap.Int("days", days),
		zap.Time("premium_until", until))
	return until, nil
}

// IsPremium reports whether the user's premium period covers the present
// moment. A missing record means false. A record flagged premium but missing
// its expiry timestamp counts as premium; that only happens with damaged
// stored state and must not fail the check.
func (s *Service) IsPremium(ctx context.Context, userID int64) (bool, error) {
	record, err := s.store.GetEntitlement(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load entitlement: %w", err)
	}
	if record == nil {
		return false, nil
	}
	if record.PremiumUntil != nil {
		return record.PremiumUntil.After(s.now()), nil
	}
	return record.Premium, nil
}
