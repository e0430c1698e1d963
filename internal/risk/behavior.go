package risk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Pattern string

const (
	PatternNormal     Pattern = "NORMAL"
	PatternSuspicious Pattern = "SUSPICIOUS"
	PatternAnomalous  Pattern = "ANOMALOUS"

	// minHistory is the number of payments before a profile is trusted.
	minHistory     = 3
	maxCountries   = 10
	profileTTL     = 90 * 24 * time.Hour
	inactiveWindow = 180 * 24 * time.Hour
)

func (p Pattern) Score() float64 {
	switch p {
	case PatternAnomalous:
		return 0.9
	case PatternSuspicious:
		return 0.5
	default:
		return 0
	}
}

// Profile summarizes an identity's payment history.
type Profile struct {
	TransactionCount int64     `json:"transaction_count"`
	AverageAmount    float64   `json:"average_amount"`
	Countries        []string  `json:"countries"`
	LastSeen         time.Time `json:"last_seen"`
}

// Observe folds a payment into the profile.
func (p *Profile) Observe(amount int64, country string, at time.Time) {
	p.TransactionCount++
	p.AverageAmount += (float64(amount) - p.AverageAmount) / float64(p.TransactionCount)
	if country != "" && !slices.Contains(p.Countries, country) {
		p.Countries = append(p.Countries, country)
		if len(p.Countries) > maxCountries {
			p.Countries = p.Countries[1:]
		}
	}
	p.LastSeen = at
}

// Classify compares a payment against the identity's profile. A missing or
// short profile is NORMAL.
func Classify(profile *Profile, amount int64, country string, now time.Time) (Pattern, string) {
	if profile == nil || profile.TransactionCount < minHistory || profile.AverageAmount <= 0 {
		return PatternNormal, "insufficient history"
	}

	pattern := PatternNormal
	var detail string
	ratio := float64(amount) / profile.AverageAmount
	switch {
	case ratio >= 5:
		pattern, detail = PatternAnomalous, fmt.Sprintf("amount %.1fx the usual", ratio)
	case ratio >= 2:
		pattern, detail = PatternSuspicious, fmt.Sprintf("amount %.1fx the usual", ratio)
	}

	unusual := (country != "" && len(profile.Countries) > 0 && !slices.Contains(profile.Countries, country)) ||
		(!profile.LastSeen.IsZero() && now.Sub(profile.LastSeen) > inactiveWindow)
	if unusual {
		switch pattern {
		case PatternNormal:
			pattern = PatternSuspicious
		case PatternSuspicious:
			pattern = PatternAnomalous
		}
		if detail != "" {
			detail += "; "
		}
		detail += "unusual origin or dormant account"
	}

	return pattern, detail
}

// BehaviorProfiles stores profiles per identity. Get returns nil, nil for an
// unknown identity.
type BehaviorProfiles interface {
	Get(ctx context.Context, identity string) (*Profile, error)
	Save(ctx context.Context, identity string, profile *Profile) error
}

func (e *Engine) observe(ctx context.Context, req Request, rc RequestContext) {
	identity := rc.Identity(req)
	if identity == "" {
		return
	}

	profile, err := e.Profiles.Get(ctx, identity)
	if err != nil {
		logrus.Warnf("failed to load behavior profile for %s: %v", req.PaymentID, err)
		return
	}
	if profile == nil {
		profile = &Profile{}
	}

	var country string
	if loc, ok := e.locate(ctx, rc.IPAddress); ok {
		country = loc.CountryCode
	}

	profile.Observe(req.Amount, country, e.now())
	if err := e.Profiles.Save(ctx, identity, profile); err != nil {
		logrus.Warnf("failed to save behavior profile for %s: %v", req.PaymentID, err)
	}
}

// RedisProfiles stores profiles as JSON under a namespaced key.
type RedisProfiles struct {
	client    redis.UniversalClient
	namespace string
}

func NewRedisProfiles(client redis.UniversalClient, namespace string) *RedisProfiles {
	if namespace == "" {
		namespace = "risk:profile"
	}
	return &RedisProfiles{client: client, namespace: namespace}
}

func (r *RedisProfiles) Get(ctx context.Context, identity string) (*Profile, error) {
	raw, err := r.client.Get(ctx, r.namespace+":"+identity).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("error decoding profile: %w", err)
	}
	return &profile, nil
}

func (r *RedisProfiles) Save(ctx context.Context, identity string, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("error encoding profile: %w", err)
	}
	return r.client.Set(ctx, r.namespace+":"+identity, data, profileTTL).Err()
}

type MemoryProfiles struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{profiles: make(map[string]Profile)}
}

func (m *MemoryProfiles) Get(ctx context.Context, identity string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[identity]
	if !ok {
		return nil, nil
	}
	p.Countries = slices.Clone(p.Countries)
	return &p, nil
}

func (m *MemoryProfiles) Save(ctx context.Context, identity string, profile *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *profile
	p.Countries = slices.Clone(profile.Countries)
	m.profiles[identity] = p
	return nil
}
