package risk

import (
	"context"
	"sync"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

// Rule is a merchant-defined check. It fires when Match returns true.
type Rule struct {
	Name   string
	Weight float64
	Score  float64
	Match  func(req Request, rc RequestContext) bool
}

func evaluateRules(rules []Rule, req Request, rc RequestContext) []models.RiskFactor {
	var fired []models.RiskFactor
	for _, r := range rules {
		if r.Match == nil || !r.Match(req, rc) {
			continue
		}
		fired = append(fired, models.RiskFactor{
			Name:       r.Name,
			Weight:     r.Weight,
			Score:      clamp(r.Score),
			Confidence: 1,
			Detail:     "custom rule",
		})
	}
	return fired
}

// HighValueRule flags payments at or above limit minor units.
func HighValueRule(limit int64, weight float64) Rule {
	return Rule{
		Name:   "HIGH_VALUE",
		Weight: weight,
		Score:  1,
		Match: func(req Request, rc RequestContext) bool {
			return req.Amount >= limit
		},
	}
}

// DeviceLookup resolves a fingerprint to previously seen device attributes.
// Lookup returns nil, nil for an unknown fingerprint.
type DeviceLookup interface {
	Lookup(ctx context.Context, fingerprint string) (*DeviceInfo, error)
}

// DeviceRegistry remembers the last device reported for each fingerprint.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]DeviceInfo
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{devices: make(map[string]DeviceInfo)}
}

func (r *DeviceRegistry) Remember(fingerprint string, device DeviceInfo) {
	if fingerprint == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[fingerprint] = device
}

func (r *DeviceRegistry) Lookup(ctx context.Context, fingerprint string) (*DeviceInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[fingerprint]
	if !ok {
		return nil, nil
	}
	return &d, nil
}
