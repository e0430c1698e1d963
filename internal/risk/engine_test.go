package risk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// scenarioConfig isolates amount and velocity so the expected totals are exact.
func scenarioConfig() risk.Config {
	return risk.Config{
		RiskThreshold:        0.4,
		MaxDailyAmount:       50000,
		MaxDailyTransactions: 10,
	}
}

func dollars(n int64) int64 { return n * 100 }

type failingVelocity struct{ recorded int }

func (f *failingVelocity) Record(ctx context.Context, identity string, at time.Time) error {
	f.recorded++
	return nil
}

func (f *failingVelocity) Count(ctx context.Context, identity string, since time.Time) (int64, error) {
	return 0, errors.New("redis: connection refused")
}

type staticLocator map[string]risk.Location

func (s staticLocator) Locate(ctx context.Context, ip net.IP) (*risk.Location, error) {
	loc, ok := s[ip.String()]
	if !ok {
		return &risk.Location{}, nil
	}
	return &loc, nil
}

func TestAssess_LargeAmountAloneIsApproved(t *testing.T) {
	engine := risk.NewEngine(risk.WithClock(clock))

	assessment := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi_1", Amount: dollars(60000), Currency: models.CurrencyUSD},
		risk.RequestContext{UserID: "user-1"},
		scenarioConfig())

	assert.InDelta(t, 0.24, assessment.Score, 1e-9)
	assert.Equal(t, models.RecommendApprove, assessment.Recommendation)
	assert.Equal(t, models.RiskLow, assessment.Level)

	factor, ok := assessment.Factor(risk.FactorAmount)
	require.True(t, ok)
	assert.InDelta(t, 0.8, factor.Score, 1e-9)
}

func TestAssess_LargeAmountWithHighVelocityNeedsReview(t *testing.T) {
	velocity := risk.NewMemoryVelocity()
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, velocity.Record(ctx, "user-1", fixedNow.Add(-time.Duration(i+1)*time.Hour)))
	}
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithVelocity(velocity))

	assessment := engine.Assess(ctx,
		risk.Request{PaymentID: "pi_2", Amount: dollars(60000), Currency: models.CurrencyUSD},
		risk.RequestContext{UserID: "user-1"},
		scenarioConfig())

	assert.InDelta(t, 0.465, assessment.Score, 1e-9)
	assert.Equal(t, models.RecommendReview, assessment.Recommendation)
	assert.Equal(t, models.RiskMedium, assessment.Level)
	_, ok := assessment.Factor(risk.FactorHighVelocity)
	assert.True(t, ok)
}

func TestAssess_AmountRiskIncreasesPastDailyLimit(t *testing.T) {
	cfg := scenarioConfig()
	previous := 0.0
	for _, amount := range []int64{50001, 55000, 60000, 75000, 100000, 500000} {
		engine := risk.NewEngine(risk.WithClock(clock))
		assessment := engine.Assess(context.Background(),
			risk.Request{PaymentID: "pi", Amount: dollars(amount), Currency: models.CurrencyUSD},
			risk.RequestContext{UserID: "u"}, cfg)

		factor, ok := assessment.Factor(risk.FactorAmount)
		require.True(t, ok)
		assert.Greater(t, factor.Score, previous, "amount %d", amount)
		assert.LessOrEqual(t, factor.Score, 1.0)
		previous = factor.Score
	}
}

func TestAssess_ZeroDecimalCurrency(t *testing.T) {
	engine := risk.NewEngine(risk.WithClock(clock))

	assessment := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: 60000, Currency: models.CurrencyJPY},
		risk.RequestContext{UserID: "u"}, scenarioConfig())

	factor, ok := assessment.Factor(risk.FactorAmount)
	require.True(t, ok)
	assert.InDelta(t, 0.8, factor.Score, 1e-9)
}

func TestAssess_DegradedSignalDoesNotFail(t *testing.T) {
	velocity := &failingVelocity{}
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithVelocity(velocity))

	assessment := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(100), Currency: models.CurrencyUSD},
		risk.RequestContext{UserID: "u"}, scenarioConfig())

	factor, ok := assessment.Factor(risk.FactorHighVelocity)
	require.True(t, ok)
	assert.Equal(t, 0.0, factor.Score)
	assert.Equal(t, 0.1, factor.Confidence)
	assert.Contains(t, factor.Detail, "degraded")
	assert.Equal(t, models.RecommendApprove, assessment.Recommendation)
	assert.Less(t, assessment.Confidence, 0.9)
}

func TestAssess_CacheHitSkipsVelocityRecording(t *testing.T) {
	velocity := &failingVelocity{}
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithVelocity(velocity))
	req := risk.Request{PaymentID: "pi_a", Amount: dollars(10), Currency: models.CurrencyUSD}
	rc := risk.RequestContext{UserID: "u", IPAddress: "10.0.0.1"}

	first := engine.Assess(context.Background(), req, rc, scenarioConfig())
	req.PaymentID = "pi_b"
	second := engine.Assess(context.Background(), req, rc, scenarioConfig())

	assert.Equal(t, 1, velocity.recorded)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, "pi_b", second.PaymentID)
	assert.Equal(t, fixedNow.Add(risk.DefaultCacheTTL), first.ExpiresAt)
}

func TestAssess_DisposableEmail(t *testing.T) {
	engine := risk.NewEngine(risk.WithClock(clock))
	cfg := scenarioConfig()
	cfg.DisposableDomains = []string{"mailinator"}

	assessment := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(10), Currency: models.CurrencyUSD, CustomerEmail: "someone@mailinator.com"},
		risk.RequestContext{}, cfg)

	factor, ok := assessment.Factor(risk.FactorEmail)
	require.True(t, ok)
	assert.Equal(t, 0.7, factor.Score)
}

func TestAssess_BlockedSignalsAddUp(t *testing.T) {
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithGeo(staticLocator{"203.0.113.9": {CountryCode: "KP"}}))
	cfg := scenarioConfig()
	cfg.EnableGeoBlocking = true
	cfg.BlockedCountries = []string{"KP"}
	cfg.BlockedEmails = []string{"fraud@example.com"}

	assessment := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(70000), Currency: models.CurrencyUSD, CustomerEmail: "fraud@example.com"},
		risk.RequestContext{IPAddress: "203.0.113.9"}, cfg)

	// 0.3*(1-0.24/1.4) + 0.2*1 + 0.15*1
	assert.InDelta(t, 0.3*(1-0.24/1.4)+0.35, assessment.Score, 1e-9)
	assert.Equal(t, models.RecommendReview, assessment.Recommendation)
}

func TestAssess_GeoSignals(t *testing.T) {
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithGeo(staticLocator{
		"198.51.100.7": {CountryCode: "DE", IsTor: true},
		"198.51.100.8": {CountryCode: "DE"},
	}))
	cfg := scenarioConfig()
	cfg.EnableGeoBlocking = true

	tor := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(10), Currency: models.CurrencyUSD},
		risk.RequestContext{IPAddress: "198.51.100.7"}, cfg)
	factor, ok := tor.Factor(risk.FactorGeo)
	require.True(t, ok)
	assert.Equal(t, 0.9, factor.Score)

	mismatch := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(10), Currency: models.CurrencyUSD, BillingCountry: "US"},
		risk.RequestContext{IPAddress: "198.51.100.8"}, cfg)
	factor, ok = mismatch.Factor(risk.FactorGeo)
	require.True(t, ok)
	assert.Equal(t, 0.5, factor.Score)
}

func TestAssess_DeviceSignals(t *testing.T) {
	registry := risk.NewDeviceRegistry()
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithDevices(registry))
	cfg := scenarioConfig()
	cfg.EnableDeviceFingerprinting = true

	bot := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(10), Currency: models.CurrencyUSD},
		risk.RequestContext{DeviceFingerprint: "fp-1", Device: &risk.DeviceInfo{UserAgent: "HeadlessChrome/120"}}, cfg)
	factor, ok := bot.Factor(risk.FactorDevice)
	require.True(t, ok)
	assert.Equal(t, 0.8, factor.Score)

	// The fingerprint is remembered and reused when the device is not reported again.
	again := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(11), Currency: models.CurrencyUSD},
		risk.RequestContext{DeviceFingerprint: "fp-1"}, cfg)
	_, ok = again.Factor(risk.FactorDevice)
	assert.True(t, ok)
}

func TestAssess_CustomRules(t *testing.T) {
	engine := risk.NewEngine(risk.WithClock(clock), risk.WithRules(risk.HighValueRule(dollars(1000), 0.5)))
	cfg := scenarioConfig()
	cfg.EnableCustomRules = true

	assessment := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(1000), Currency: models.CurrencyUSD},
		risk.RequestContext{UserID: "u"}, cfg)

	_, ok := assessment.Factor("HIGH_VALUE")
	assert.True(t, ok)
	assert.GreaterOrEqual(t, assessment.Score, 0.5)
}

func TestAssess_ModelScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/score", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(risk.Prediction{Score: 1, Confidence: 0.9, ModelVersion: "v3"})
	}))
	defer srv.Close()

	engine := risk.NewEngine(risk.WithClock(clock), risk.WithPredictor(risk.NewHTTPPredictor(srv.URL, time.Second)))
	cfg := scenarioConfig()
	cfg.EnableModelScoring = true

	assessment := engine.Assess(context.Background(),
		risk.Request{PaymentID: "pi", Amount: dollars(10), Currency: models.CurrencyUSD},
		risk.RequestContext{UserID: "u"}, cfg)

	factor, ok := assessment.Factor(risk.FactorModel)
	require.True(t, ok)
	assert.Equal(t, 1.0, factor.Score)
	assert.Equal(t, "model v3", factor.Detail)
}

func TestLevelAndRecommendation(t *testing.T) {
	cases := []struct {
		score float64
		level models.RiskLevel
		rec   models.Recommendation
	}{
		{0.1, models.RiskLow, models.RecommendApprove},
		{0.39, models.RiskLow, models.RecommendApprove},
		{0.4, models.RiskMedium, models.RecommendReview},
		{0.7, models.RiskHigh, models.RecommendReview},
		{0.8, models.RiskHigh, models.RecommendChallenge},
		{0.9, models.RiskCritical, models.RecommendDecline},
		{1.0, models.RiskCritical, models.RecommendDecline},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, risk.Level(c.score), "score %v", c.score)
		assert.Equal(t, c.rec, risk.Recommend(c.score, 0.4), "score %v", c.score)
	}
}
