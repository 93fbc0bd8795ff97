// internal/domain/cart/service.go
package cart

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/sirupsen/logrus"
)

const lockStripes = 64

// Service runs cart operations against session carts
type Service struct {
	repo  SessionRepository
	log   logrus.FieldLogger
	locks [lockStripes]sync.Mutex
}

// NewService creates a new cart service
func NewService(repo SessionRepository, log logrus.FieldLogger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// ScopedID namespaces a browsing session by tenant so each store gets its own cart
func ScopedID(sessionID, tenant string) string {
	if tenant == "" {
		return sessionID
	}
	return sessionID + ":" + tenant
}

// WithCart loads the session cart, runs fn with the store attached to ctx,
// and saves the result. Calls for the same session are serialised.
func (s *Service) WithCart(ctx context.Context, sessionID string, fn func(ctx context.Context, store *Store) error) (Snapshot, error) {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	store, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	if err := fn(NewContext(ctx, store), store); err != nil {
		return store.Snapshot(), err
	}

	if err := s.repo.Save(ctx, sessionID, store); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("Failed to save session cart")
		return Snapshot{}, err
	}

	return store.Snapshot(), nil
}

// Snapshot returns the current session cart without modifying it
func (s *Service) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	store, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return store.Snapshot(), nil
}

// Discard drops the session cart entirely
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	return s.repo.Delete(ctx, sessionID)
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}
