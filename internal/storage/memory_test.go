package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/scamshield/internal/models"
)

func TestMemoryStorageMissingRecords(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	e, err := store.GetEntitlement(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, e)

	u, err := store.GetUsage(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryStorageRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	until := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveEntitlement(ctx, &models.Entitlement{UserID: 1, Premium: true, PremiumUntil: &until}))
	require.NoError(t, store.SaveUsage(ctx, &models.Usage{UserID: 1, Day: "2026-08-29", Count: 3}))

	e, err := store.GetEntitlement(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, e.Premium)
	assert.Equal(t, until, *e.PremiumUntil)

	u, err := store.GetUsage(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 3, u.Count)
}

func TestMemoryStorageGetReturnsCopy(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.SaveUsage(ctx, &models.Usage{UserID: 1, Day: "2026-08-29", Count: 1}))

	first, err := store.GetUsage(ctx, 1)
	require.NoError(t, err)
	first.Count = 99

	second, err := store.GetUsage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count)
}

func TestMemoryStorageDeleteUsageBefore(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, store.SaveUsage(ctx, &models.Usage{UserID: 1, Day: "2026-08-27", Count: 5}))
	require.NoError(t, store.SaveUsage(ctx, &models.Usage{UserID: 2, Day: "2026-08-29", Count: 2}))

	require.NoError(t, store.DeleteUsageBefore(ctx, "2026-08-29"))

	stale, err := store.GetUsage(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stale)

	current, err := store.GetUsage(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, current)
}

func TestKeyMutexSerializesPerKey(t *testing.T) {
	km := NewKeyMutex()

	const goroutines = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyMutexIndependentKeys(t *testing.T) {
	km := NewKeyMutex()

	unlockA := km.Lock(1)
	defer unlockA()

	// A held lock on one user must not block another user.
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock(2)
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another key blocked")
	}
}
