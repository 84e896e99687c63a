package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/scamshield/internal/entitlement"
	"github.com/xaenox/scamshield/internal/storage"
	"go.uber.org/zap"
)

type notifications struct {
	texts []string
}

func (n *notifications) notify(userID int64, text string) {
	n.texts = append(n.texts, text)
}

func newTestHandler(t *testing.T) (*Handler, *entitlement.Service, *notifications) {
	t.Helper()
	entitlements := entitlement.NewService(storage.NewMemoryStorage(), zap.NewNop())
	n := &notifications{}
	return NewHandler(entitlements, n.notify, 30, zap.NewNop()), entitlements, n
}

func TestHandleCheckoutCompletedGrantsPremium(t *testing.T) {
	handler, entitlements, n := newTestHandler(t)
	ctx := context.Background()

	err := handler.HandleEvent(ctx, Event{Type: EventCheckoutCompleted, UserID: 42})
	require.NoError(t, err)

	premium, err := entitlements.IsPremium(ctx, 42)
	require.NoError(t, err)
	assert.True(t, premium)
	require.Len(t, n.texts, 1)
	assert.Contains(t, n.texts[0], "Premium")
}

func TestHandlePaymentFailedOnlyNotifies(t *testing.T) {
	handler, entitlements, n := newTestHandler(t)
	ctx := context.Background()

	err := handler.HandleEvent(ctx, Event{Type: EventPaymentFailed, UserID: 42})
	require.NoError(t, err)

	premium, err := entitlements.IsPremium(ctx, 42)
	require.NoError(t, err)
	assert.False(t, premium)
	require.Len(t, n.texts, 1)
	assert.Contains(t, n.texts[0], "Payment failed")
}

func TestHandleUnknownEventIgnored(t *testing.T) {
	handler, _, n := newTestHandler(t)

	err := handler.HandleEvent(context.Background(), Event{Type: "customer.updated", UserID: 42})
	require.NoError(t, err)
	assert.Empty(t, n.texts)
}
