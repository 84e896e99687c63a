package storage

import (
	"context"

	"github.com/xaenox/scamshield/internal/models"
)

// Storage persists entitlement and usage records keyed by user ID.
// Get methods return (nil, nil) for a missing record. Implementations make
// each Save atomic per key; read-modify-write atomicity across Get and Save
// is the caller's job (see KeyMutex).
type Storage interface {
	GetEntitlement(ctx context.Context, userID int64) (*models.Entitlement, error)
	SaveEntitlement(ctx context.Context, e *models.Entitlement) error

	GetUsage(ctx context.Context, userID int64) (*models.Usage, error)
	SaveUsage(ctx context.Context, u *models.Usage) error
	// DeleteUsageBefore drops usage records whose day precedes the given
	// YYYY-MM-DD date.
	DeleteUsageBefore(ctx context.Context, day string) error

	Close() error
}
