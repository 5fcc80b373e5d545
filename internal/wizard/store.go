package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// Store keeps open wizards between requests
type Store interface {
	Save(ctx context.Context, w *Wizard) error
	Get(ctx context.Context, id uuid.UUID) (*Wizard, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisStore keeps each wizard as a JSON value with a TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(id uuid.UUID) string {
	return "wizard:" + id.String()
}

func (s *RedisStore) Save(ctx context.Context, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(w.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save wizard %s: %w", w.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load wizard %s: %w", id, err)
	}

	var w Wizard
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}
	return &w, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, redisKey(id)).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is the single-process fallback when Redis is not configured
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[w.ID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Wizard, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	var w Wizard
	if err := json.Unmarshal(entry.data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Sweep drops expired sessions
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
