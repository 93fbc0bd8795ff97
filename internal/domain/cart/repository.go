// internal/domain/cart/repository.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionTTL is how long an idle session cart is kept
const DefaultSessionTTL = 24 * time.Hour

var ErrSessionRequired = errors.New("session ID required for cart")

// SessionRepository keeps session carts for the lifetime of a browsing session
type SessionRepository interface {
	Load(ctx context.Context, sessionID string) (*Store, error)
	Save(ctx context.Context, sessionID string, s *Store) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryRepository keeps session carts in process memory
type MemoryRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	snapshot  Snapshot
	expiresAt time.Time
}

// NewMemoryRepository creates a process-local session repository
func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

// Load returns the session cart, or an empty one if none is stored
func (r *MemoryRepository) Load(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok || r.now().After(entry.expiresAt) {
		delete(r.sessions, sessionID)
		return NewStore(), nil
	}
	return Restore(entry.snapshot), nil
}

// Save stores the session cart and refreshes its expiry
func (r *MemoryRepository) Save(ctx context.Context, sessionID string, s *Store) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = memoryEntry{
		snapshot:  s.Snapshot(),
		expiresAt: r.now().Add(r.ttl),
	}
	r.evictExpired()
	return nil
}

// Delete drops the session cart
func (r *MemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func (r *MemoryRepository) evictExpired() {
	now := r.now()
	for id, entry := range r.sessions {
		if now.After(entry.expiresAt) {
			delete(r.sessions, id)
		}
	}
}

// RedisRepository keeps session carts as JSON snapshots in Redis
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed session repository
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisRepository{
		client: client,
		ttl:    ttl,
	}
}

// Load returns the session cart, or an empty one if none is stored
func (r *RedisRepository) Load(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewStore(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session cart: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode session cart: %w", err)
	}
	return Restore(snap), nil
}

// Save stores the session cart with the session TTL
func (r *RedisRepository) Save(ctx context.Context, sessionID string, s *Store) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode session cart: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session cart: %w", err)
	}
	return nil
}

// Delete drops the session cart
func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session cart: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
