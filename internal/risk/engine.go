package risk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	FactorAmount           = "AMOUNT_RISK"
	FactorHighVelocity     = "HIGH_VELOCITY"
	FactorElevatedVelocity = "ELEVATED_VELOCITY"
	FactorGeo              = "GEO_RISK"
	FactorDevice           = "DEVICE_RISK"
	FactorBehavior         = "BEHAVIOR_RISK"
	FactorEmail            = "EMAIL_RISK"
	FactorModel            = "MODEL_SCORE"

	WeightAmount   = 0.30
	WeightVelocity = 0.25
	WeightGeo      = 0.20
	WeightDevice   = 0.15
	WeightBehavior = 0.20
	WeightEmail    = 0.15
	WeightModel    = 0.35

	// degradedConfidence is reported by a factor whose signal source failed.
	degradedConfidence = 0.1
	defaultConfidence  = 0.5
)

// Request is the payment being assessed.
type Request struct {
	PaymentID      string
	Amount         int64
	Currency       models.Currency
	CustomerEmail  string
	BillingCountry string
}

// DeviceInfo is the client-reported device description.
type DeviceInfo struct {
	UserAgent        string
	Platform         string
	Language         string
	Timezone         string
	ScreenResolution string
	DoNotTrack       bool
}

// RequestContext describes who is paying and from where.
type RequestContext struct {
	UserID            string
	IPAddress         string
	DeviceFingerprint string
	SessionID         string
	Device            *DeviceInfo
}

// Identity is the key velocity and behavior are tracked under.
func (c RequestContext) Identity(req Request) string {
	if c.UserID != "" {
		return c.UserID
	}
	return req.CustomerEmail
}

type Config struct {
	RiskThreshold float64
	// MaxDailyAmount is in major units of the payment currency.
	MaxDailyAmount             float64
	MaxDailyTransactions       int
	EnableGeoBlocking          bool
	EnableDeviceFingerprinting bool
	EnableBehavioralAnalysis   bool
	EnableModelScoring         bool
	EnableCustomRules          bool
	BlockedCountries           []string
	BlockedIPs                 []string
	BlockedEmails              []string
	DisposableDomains          []string
}

// DefaultConfig returns the thresholds the engine ships with.
func DefaultConfig() Config {
	return Config{
		RiskThreshold:              0.4,
		MaxDailyAmount:             50000,
		MaxDailyTransactions:       20,
		EnableGeoBlocking:          true,
		EnableDeviceFingerprinting: true,
		EnableBehavioralAnalysis:   true,
		EnableModelScoring:         false,
		EnableCustomRules:          true,
		DisposableDomains:          []string{"mailinator", "guerrillamail", "10minutemail", "tempmail", "yopmail", "trashmail"},
	}
}

// Engine scores payments from weighted, independently evaluated factors.
// Every signal source is optional; a nil source disables its factor.
type Engine struct {
	Velocity  VelocityTracker
	Geo       GeoLocator
	Devices   DeviceLookup
	Profiles  BehaviorProfiles
	Predictor Predictor
	Rules     []Rule

	cache *Cache
	now   func() time.Time
}

type Option func(*Engine)

func WithVelocity(v VelocityTracker) Option   { return func(e *Engine) { e.Velocity = v } }
func WithGeo(g GeoLocator) Option             { return func(e *Engine) { e.Geo = g } }
func WithDevices(d DeviceLookup) Option       { return func(e *Engine) { e.Devices = d } }
func WithProfiles(p BehaviorProfiles) Option  { return func(e *Engine) { e.Profiles = p } }
func WithPredictor(p Predictor) Option        { return func(e *Engine) { e.Predictor = p } }
func WithRules(rules ...Rule) Option          { return func(e *Engine) { e.Rules = append(e.Rules, rules...) } }
func WithCache(c *Cache) Option               { return func(e *Engine) { e.cache = c } }
func WithClock(now func() time.Time) Option   { return func(e *Engine) { e.now = now } }

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = NewCache(DefaultCacheSize, DefaultCacheTTL)
	}
	return e
}

// factorFunc evaluates one signal. It returns nil when the factor does not
// apply, and an error only when its signal source failed.
type factorFunc func(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error)

// Assess scores the payment. It never fails because a signal source is
// unavailable: the affected factor is reported as degraded instead.
func (e *Engine) Assess(ctx context.Context, req Request, rc RequestContext, cfg Config) models.RiskAssessment {
	key := CacheKey(rc.Identity(req), rc.IPAddress, req.Amount)
	if cached, ok := e.cache.Get(key); ok {
		cached.PaymentID = req.PaymentID
		return cached
	}

	type named struct {
		name   string
		weight float64
		fn     factorFunc
	}
	factors := []named{
		{FactorAmount, WeightAmount, e.amountFactor},
		{FactorHighVelocity, WeightVelocity, e.velocityFactor},
		{FactorEmail, WeightEmail, e.emailFactor},
	}
	if cfg.EnableGeoBlocking {
		factors = append(factors, named{FactorGeo, WeightGeo, e.geoFactor})
	}
	if cfg.EnableDeviceFingerprinting {
		factors = append(factors, named{FactorDevice, WeightDevice, e.deviceFactor})
	}
	if cfg.EnableBehavioralAnalysis {
		factors = append(factors, named{FactorBehavior, WeightBehavior, e.behaviorFactor})
	}
	if cfg.EnableModelScoring {
		factors = append(factors, named{FactorModel, WeightModel, e.modelFactor})
	}

	results := make([]*models.RiskFactor, len(factors))
	var (
		mu       sync.Mutex
		degraded *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range factors {
		i, f := i, f
		g.Go(func() error {
			factor, err := f.fn(gctx, req, rc, cfg)
			if err != nil {
				mu.Lock()
				degraded = multierror.Append(degraded, fmt.Errorf("%s: %w", f.name, err))
				mu.Unlock()
				factor = &models.RiskFactor{
					Name:       f.name,
					Weight:     f.weight,
					Score:      0,
					Confidence: degradedConfidence,
					Detail:     "degraded: signal unavailable",
				}
			}
			results[i] = factor
			return nil
		})
	}
	_ = g.Wait()

	if degraded != nil {
		logrus.WithField("payment_id", req.PaymentID).Warnf("risk assessment degraded: %v", degraded.ErrorOrNil())
	}

	fired := make([]models.RiskFactor, 0, len(results))
	for _, f := range results {
		if f != nil {
			fired = append(fired, *f)
		}
	}
	if cfg.EnableCustomRules {
		fired = append(fired, evaluateRules(e.Rules, req, rc)...)
	}

	assessment := e.score(req.PaymentID, fired, cfg)

	if identity := rc.Identity(req); e.Velocity != nil && identity != "" {
		if err := e.Velocity.Record(ctx, identity, e.now()); err != nil {
			logrus.Warnf("failed to record velocity for %s: %v", req.PaymentID, err)
		}
	}
	if registry, ok := e.Devices.(interface{ Remember(string, DeviceInfo) }); ok && rc.Device != nil {
		registry.Remember(rc.DeviceFingerprint, *rc.Device)
	}
	if e.Profiles != nil && cfg.EnableBehavioralAnalysis {
		e.observe(ctx, req, rc)
	}

	e.cache.Add(key, assessment)
	return assessment
}

func (e *Engine) score(paymentID string, factors []models.RiskFactor, cfg Config) models.RiskAssessment {
	var total, weightSum, confidenceSum float64
	for _, f := range factors {
		total += f.Weight * f.Score
		weightSum += f.Weight
		confidenceSum += f.Weight * f.Confidence
	}
	total = clamp(total)

	confidence := defaultConfidence
	if weightSum > 0 {
		confidence = clamp(confidenceSum / weightSum)
	}

	now := e.now()
	return models.RiskAssessment{
		PaymentID:      paymentID,
		Score:          total,
		Level:          Level(total),
		Factors:        factors,
		Recommendation: Recommend(total, cfg.RiskThreshold),
		Confidence:     confidence,
		AssessedAt:     now,
		ExpiresAt:      now.Add(e.cache.TTL()),
	}
}

// Level maps a total score onto a risk level.
func Level(score float64) models.RiskLevel {
	switch {
	case score >= 0.9:
		return models.RiskCritical
	case score >= 0.7:
		return models.RiskHigh
	case score >= 0.4:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// Recommend maps a total score onto a recommendation.
func Recommend(score, threshold float64) models.Recommendation {
	switch {
	case score < threshold:
		return models.RecommendApprove
	case score >= 0.9:
		return models.RecommendDecline
	case score >= 0.8:
		return models.RecommendChallenge
	default:
		return models.RecommendReview
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
