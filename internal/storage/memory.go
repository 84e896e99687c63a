package storage

import (
	"context"
	"sync"

	"github.com/xaenox/scamshield/internal/models"
)

type MemoryStorage struct {
	mu           sync.RWMutex
	entitlements map[int64]models.Entitlement
	usage        map[int64]models.Usage
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entitlements: make(map[int64]models.Entitlement),
		usage:        make(map[int64]models.Usage),
	}
}

func (s *MemoryStorage) GetEntitlement(ctx context.Context, userID int64) (*models.Entitlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, exists := s.entitlements[userID]; exists {
		return &e, nil
	}
	return nil, nil
}

func (s *MemoryStorage) SaveEntitlement(ctx context.Context, e *models.Entitlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entitlements[e.UserID] = *e
	return nil
}

func (s *MemoryStorage) GetUsage(ctx context.Context, userID int64) (*models.Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, exists := s.usage[userID]; exists {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStorage) SaveUsage(ctx context.Context, u *models.Usage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usage[u.UserID] = *u
	return nil
}

func (s *MemoryStorage) DeleteUsageBefore(ctx context.Context, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.usage {
		if u.Day < day {
			delete(s.usage, id)
		}
	}
	return nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
