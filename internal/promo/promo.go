package promo

import (
	"context"
	"errors"
	"strings"

	"github.com/xaenox/scamshield/internal/entitlement"
	"go.uber.org/zap"
)

// ErrUnknownCode is returned for a code that resolves to nothing. It is a
// rejection, distinct from a storage failure during the grant itself.
var ErrUnknownCode = errors.New("unknown promo code")

// Code is one redeemable promotion.
type Code struct {
	Days        int
	Description string
}

// Redeemer resolves promo codes to premium days. Codes are declared in
// config; lookup is case-insensitive.
type Redeemer struct {
	codes        map[string]Code
	entitlements *entitlement.Service
	logger       *zap.Logger
}

func NewRedeemer(codes map[string]Code, entitlements *entitlement.Service, logger *zap.Logger) *Redeemer {
	normalized := make(map[string]Code, len(codes))
	for name, c := range codes {
		normalized[strings.ToUpper(name)] = c
	}
	return &Redeemer{
		codes:        normalized,
		entitlements: entitlements,
		logger:       logger,
	}
}

// Redeem grants the code's premium days to the user. An invalid code never
// reaches the entitlement store.
func (r *Redeemer) Redeem(ctx context.Context, userID int64, code string) (Code, error) {
	c, ok := r.codes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Code{}, ErrUnknownCode
	}

	if _, err := r.entitlements.Grant(ctx, userID, c.Days); err != nil {
		return Code{}, err
	}

	r.logger.Info("promo code redeemed",
		zap.Int64("user_id", userID),
		zap.Int("days", c.Days))
	return c, nil
}
