package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// handoffTTL bounds how long an extracted-PDF payload stays resolvable.
const handoffTTL = 15 * time.Minute

var ErrHandoffNotFound = errors.New("handoff entry not found or expired")

// HandoffPayload carries extracted PDF text (or a quiz topic) from the
// page that produced it to the page that consumes it, by id instead of
// ambient shared storage.
type HandoffPayload struct {
	Kind    string `json:"kind"` // chat or quiz
	Name    string `json:"name"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type HandoffStore interface {
	Put(ctx context.Context, payload HandoffPayload) (string, error)
	Get(ctx context.Context, id string) (*HandoffPayload, error)
}

type redisHandoffStore struct {
	rdb *goredis.Client
}

func NewRedisHandoffStore(addr string) (HandoffStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisHandoffStore{rdb: rdb}, nil
}

func (s *redisHandoffStore) Put(ctx context.Context, payload HandoffPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := s.rdb.Set(ctx, handoffKey(id), raw, handoffTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store handoff entry: %w", err)
	}
	return id, nil
}

func (s *redisHandoffStore) Get(ctx context.Context, id string) (*HandoffPayload, error) {
	raw, err := s.rdb.Get(ctx, handoffKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrHandoffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read handoff entry: %w", err)
	}

	var payload HandoffPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func handoffKey(id string) string {
	return "handoff:" + id
}

// MemoryHandoffStore is the in-process fallback used in development and tests.
type MemoryHandoffStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryHandoffEntry
}

type memoryHandoffEntry struct {
	payload   HandoffPayload
	expiresAt time.Time
}

func NewMemoryHandoffStore() *MemoryHandoffStore {
	return &MemoryHandoffStore{
		ttl:     handoffTTL,
		entries: make(map[string]memoryHandoffEntry),
	}
}

func (s *MemoryHandoffStore) Put(_ context.Context, payload HandoffPayload) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Never-read entries would otherwise accumulate for the process
	// lifetime; sweep them on each write.
	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}

	s.entries[id] = memoryHandoffEntry{
		payload:   payload,
		expiresAt: now.Add(s.ttl),
	}
	return id, nil
}

func (s *MemoryHandoffStore) Get(_ context.Context, id string) (*HandoffPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrHandoffNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		return nil, ErrHandoffNotFound
	}

	payload := entry.payload
	return &payload, nil
}
