// AngelaMos | 2026
// reset.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

// ResetEntry tracks a pending password-reset request for one email. A fresh
// request overwrites any prior entry; the entry is deleted on successful
// reset or on expiry detection.
type ResetEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
}

func (e *ResetEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

type ResetStore interface {
	Put(ctx context.Context, email string, entry ResetEntry) error
	Get(ctx context.Context, email string) (*ResetEntry, error)
	MarkVerified(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

const resetKeyPrefix = "reset:"

// redisResetStore keeps pending codes in redis with a TTL, so they survive
// process restarts, work across instances, and expire without a sweeper.
type redisResetStore struct {
	client *redis.Client
}

func NewResetStore(client *redis.Client) ResetStore {
	return &redisResetStore{client: client}
}

func (s *redisResetStore) Put(
	ctx context.Context,
	email string,
	entry ResetEntry,
) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal reset entry: %w", err)
	}

	// Keep the key slightly past the logical expiry so the Expired error
	// stays observable instead of degrading into NoPendingRequest.
	ttl := time.Until(entry.ExpiresAt) + time.Minute
	if ttl <= 0 {
		return fmt.Errorf("store reset entry: %w", core.ErrInvalidInput)
	}

	if err := s.client.Set(ctx, resetKeyPrefix+email, data, ttl).Err(); err != nil {
		return fmt.Errorf("store reset entry: %w", err)
	}

	return nil
}

func (s *redisResetStore) Get(
	ctx context.Context,
	email string,
) (*ResetEntry, error) {
	data, err := s.client.Get(ctx, resetKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get reset entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get reset entry: %w", err)
	}

	var entry ResetEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal reset entry: %w", err)
	}

	return &entry, nil
}

func (s *redisResetStore) MarkVerified(
	ctx context.Context,
	email string,
) error {
	entry, err := s.Get(ctx, email)
	if err != nil {
		return err
	}

	entry.Verified = true

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal reset entry: %w", err)
	}

	err = s.client.Set(ctx, resetKeyPrefix+email, data, redis.KeepTTL).Err()
	if err != nil {
		return fmt.Errorf("mark reset entry verified: %w", err)
	}

	return nil
}

func (s *redisResetStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, resetKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("delete reset entry: %w", err)
	}
	return nil
}

// memoryResetStore is the redis-less implementation used in tests and local
// development. Unlike the storefront's first incarnation the map is
// mutex-guarded, so concurrent requests for one email cannot interleave.
type memoryResetStore struct {
	mu      sync.Mutex
	entries map[string]ResetEntry
}

func NewMemoryResetStore() ResetStore {
	return &memoryResetStore{entries: make(map[string]ResetEntry)}
}

func (s *memoryResetStore) Put(
	_ context.Context,
	email string,
	entry ResetEntry,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry
	return nil
}

func (s *memoryResetStore) Get(
	_ context.Context,
	email string,
) (*ResetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return nil, fmt.Errorf("get reset entry: %w", core.ErrNotFound)
	}
	return &entry, nil
}

func (s *memoryResetStore) MarkVerified(
	_ context.Context,
	email string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return fmt.Errorf("mark reset entry verified: %w", core.ErrNotFound)
	}

	entry.Verified = true
	s.entries[email] = entry
	return nil
}

func (s *memoryResetStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
