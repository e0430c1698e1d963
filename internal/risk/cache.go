package risk

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

const (
	DefaultCacheSize = 10000
	DefaultCacheTTL  = 15 * time.Minute
)

// Cache holds recent assessments, bounded by both capacity and age. It is
// advisory: a miss only costs a fresh assessment.
type Cache struct {
	lru *expirable.LRU[string, models.RiskAssessment]
	ttl time.Duration
}

func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		lru: expirable.NewLRU[string, models.RiskAssessment](size, nil, ttl),
		ttl: ttl,
	}
}

// CacheKey identifies an assessment by payer, origin and amount.
func CacheKey(identity, ip string, amount int64) string {
	return fmt.Sprintf("%s|%s|%d", identity, ip, amount)
}

func (c *Cache) Get(key string) (models.RiskAssessment, bool) {
	return c.lru.Get(key)
}

func (c *Cache) Add(key string, assessment models.RiskAssessment) {
	c.lru.Add(key, assessment)
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}
