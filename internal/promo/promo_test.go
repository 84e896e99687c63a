package promo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/scamshield/internal/entitlement"
	"github.com/xaenox/scamshield/internal/storage"
	"go.uber.org/zap"
)

func newTestRedeemer(t *testing.T) (*Redeemer, *entitlement.Service) {
	t.Helper()
	entitlements := entitlement.NewService(storage.NewMemoryStorage(), zap.NewNop())
	codes := map[string]Code{
		"WELCOME7": {Days: 7, Description: "Welcome trial"},
	}
	return NewRedeemer(codes, entitlements, zap.NewNop()), entitlements
}

func TestRedeemValidCode(t *testing.T) {
	redeemer, entitlements := newTestRedeemer(t)
	ctx := context.Background()

	c, err := redeemer.Redeem(ctx, 42, "welcome7")
	require.NoError(t, err)
	assert.Equal(t, 7, c.Days)

	premium, err := entitlements.IsPremium(ctx, 42)
	require.NoError(t, err)
	assert.True(t, premium)
}

func TestRedeemUnknownCode(t *testing.T) {
	redeemer, entitlements := newTestRedeemer(t)
	ctx := context.Background()

	_, err := redeemer.Redeem(ctx, 42, "NOPE")
	assert.ErrorIs(t, err, ErrUnknownCode)

	// An invalid code never grants anything.
	premium, err := entitlements.IsPremium(ctx, 42)
	require.NoError(t, err)
	assert.False(t, premium)
}
