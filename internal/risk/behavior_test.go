package risk_test

import (
	"context"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	now := fixedNow
	profile := &risk.Profile{TransactionCount: 10, AverageAmount: 1000, Countries: []string{"US"}, LastSeen: now.Add(-24 * time.Hour)}

	cases := []struct {
		name    string
		profile *risk.Profile
		amount  int64
		country string
		want    risk.Pattern
	}{
		{"no history", nil, 100000, "", risk.PatternNormal},
		{"short history", &risk.Profile{TransactionCount: 2, AverageAmount: 10}, 100000, "", risk.PatternNormal},
		{"usual", profile, 1200, "US", risk.PatternNormal},
		{"double", profile, 2500, "US", risk.PatternSuspicious},
		{"five times", profile, 5000, "US", risk.PatternAnomalous},
		{"new country", profile, 1000, "BR", risk.PatternSuspicious},
		{"double from new country", profile, 2500, "BR", risk.PatternAnomalous},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, _ := risk.Classify(c.profile, c.amount, c.country, now)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestProfile_Observe(t *testing.T) {
	var p risk.Profile
	p.Observe(100, "US", fixedNow)
	p.Observe(300, "US", fixedNow)
	p.Observe(200, "MX", fixedNow)

	assert.Equal(t, int64(3), p.TransactionCount)
	assert.InDelta(t, 200, p.AverageAmount, 1e-9)
	assert.Equal(t, []string{"US", "MX"}, p.Countries)
}

func TestAssess_BehaviorProfileIsLearned(t *testing.T) {
	profiles := risk.NewMemoryProfiles()
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithProfiles(profiles))
	cfg := scenarioConfig()
	cfg.EnableBehavioralAnalysis = true
	ctx := context.Background()

	for i := int64(0); i < 3; i++ {
		engine.Assess(ctx, risk.Request{PaymentID: "pi", Amount: 1000 + i, Currency: models.CurrencyUSD}, risk.RequestContext{UserID: "u"}, cfg)
	}

	profile, err := profiles.Get(ctx, "u")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, int64(3), profile.TransactionCount)

	spike := engine.Assess(ctx, risk.Request{PaymentID: "pi", Amount: 10000, Currency: models.CurrencyUSD}, risk.RequestContext{UserID: "u"}, cfg)
	factor, ok := spike.Factor(risk.FactorBehavior)
	require.True(t, ok)
	assert.Equal(t, 0.9, factor.Score)
}

func TestMemoryVelocity_Window(t *testing.T) {
	v := risk.NewMemoryVelocity()
	ctx := context.Background()
	require.NoError(t, v.Record(ctx, "u", fixedNow.Add(-30*time.Hour)))
	require.NoError(t, v.Record(ctx, "u", fixedNow.Add(-2*time.Hour)))
	require.NoError(t, v.Record(ctx, "u", fixedNow))

	n, err := v.Count(ctx, "u", fixedNow.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCache_BoundedAndExpiring(t *testing.T) {
	cache := risk.NewCache(2, 50*time.Millisecond)
	cache.Add("a", models.RiskAssessment{Score: 0.1})
	cache.Add("b", models.RiskAssessment{Score: 0.2})
	cache.Add("c", models.RiskAssessment{Score: 0.3})

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := cache.Get("c")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
