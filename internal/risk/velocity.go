package risk

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// VelocityTracker counts payments per identity over a rolling window.
type VelocityTracker interface {
	Record(ctx context.Context, identity string, at time.Time) error
	Count(ctx context.Context, identity string, since time.Time) (int64, error)
}

// RedisVelocity keeps one sorted set per identity, scored by unix millis.
type RedisVelocity struct {
	client    redis.UniversalClient
	namespace string
	retention time.Duration
}

func NewRedisVelocity(client redis.UniversalClient, namespace string) *RedisVelocity {
	if namespace == "" {
		namespace = "risk:velocity"
	}
	return &RedisVelocity{client: client, namespace: namespace, retention: velocityWindow + time.Hour}
}

func (r *RedisVelocity) key(identity string) string {
	return r.namespace + ":" + identity
}

func (r *RedisVelocity) Record(ctx context.Context, identity string, at time.Time) error {
	key := r.key(identity)
	cutoff := at.Add(-r.retention).UnixMilli()

	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixMilli()), Member: uuid.NewString()})
	pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff, 10))
	pipe.Expire(ctx, key, r.retention)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisVelocity) Count(ctx context.Context, identity string, since time.Time) (int64, error) {
	return r.client.ZCount(ctx, r.key(identity), strconv.FormatInt(since.UnixMilli(), 10), "+inf").Result()
}

// MemoryVelocity is a process-local tracker for single instance runs and tests.
type MemoryVelocity struct {
	mu     sync.Mutex
	events map[string][]time.Time
}

func NewMemoryVelocity() *MemoryVelocity {
	return &MemoryVelocity{events: make(map[string][]time.Time)}
}

func (m *MemoryVelocity) Record(ctx context.Context, identity string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := at.Add(-velocityWindow)
	kept := m.events[identity][:0]
	for _, t := range m.events[identity] {
		if !t.Before(cutoff) {
			kept = append(kept, t)
		}
	}
	m.events[identity] = append(kept, at)
	return nil
}

func (m *MemoryVelocity) Count(ctx context.Context, identity string, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, t := range m.events[identity] {
		if !t.Before(since) {
			n++
		}
	}
	return n, nil
}
