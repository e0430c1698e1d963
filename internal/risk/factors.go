package risk

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jpillora/go-tld"
	"github.com/shopspring/decimal"
)

const velocityWindow = 24 * time.Hour

var (
	botUserAgent    = regexp.MustCompile(`(?i)(bot|crawler|spider|headless|phantomjs|selenium|curl|wget|python-requests)`)
	suspiciousEmail = regexp.MustCompile(`(?i)(^[0-9]{6,}@|\+.*\+|^test[0-9]*@|^[a-z]{1,2}[0-9]{5,}@)`)
)

// majorUnits converts minor units into the currency's major units.
func majorUnits(amount int64, currency models.Currency) float64 {
	return decimal.New(amount, -currency.Exponent()).InexactFloat64()
}

// amountFactor grows with the amount. Past MaxDailyAmount the score is
// 1 - 0.24/ratio, which is 0.8 at 1.2x the limit and strictly increasing.
func (e *Engine) amountFactor(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error) {
	amount := majorUnits(req.Amount, req.Currency)

	var score float64
	var detail string
	if cfg.MaxDailyAmount > 0 && amount > cfg.MaxDailyAmount {
		ratio := amount / cfg.MaxDailyAmount
		score = 1 - 0.24/ratio
		detail = fmt.Sprintf("amount %.2f exceeds daily limit %.2f (%.2fx)", amount, cfg.MaxDailyAmount, ratio)
	} else {
		if cfg.MaxDailyAmount > 0 {
			score = 0.5 * amount / cfg.MaxDailyAmount
		}
		switch {
		case amount >= 10000:
			score = max(score, 0.6)
		case amount >= 5000:
			score = max(score, 0.4)
		}
		detail = fmt.Sprintf("amount %.2f within daily limit", amount)
	}

	if score <= 0 {
		return nil, nil
	}
	return &models.RiskFactor{Name: FactorAmount, Weight: WeightAmount, Score: clamp(score), Confidence: 0.9, Detail: detail}, nil
}

func (e *Engine) velocityFactor(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error) {
	identity := rc.Identity(req)
	if e.Velocity == nil || identity == "" || cfg.MaxDailyTransactions <= 0 {
		return nil, nil
	}

	count, err := e.Velocity.Count(ctx, identity, e.now().Add(-velocityWindow))
	if err != nil {
		return nil, err
	}

	limit := int64(cfg.MaxDailyTransactions)
	switch {
	case count >= limit:
		return &models.RiskFactor{
			Name: FactorHighVelocity, Weight: WeightVelocity, Score: 0.9, Confidence: 0.8,
			Detail: fmt.Sprintf("%d transactions in 24h, limit %d", count, limit),
		}, nil
	case count*2 >= limit:
		return &models.RiskFactor{
			Name: FactorElevatedVelocity, Weight: WeightVelocity, Score: 0.5, Confidence: 0.7,
			Detail: fmt.Sprintf("%d transactions in 24h, limit %d", count, limit),
		}, nil
	}
	return nil, nil
}

func (e *Engine) geoFactor(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error) {
	if rc.IPAddress == "" {
		return nil, nil
	}
	if slices.Contains(cfg.BlockedIPs, rc.IPAddress) {
		return &models.RiskFactor{Name: FactorGeo, Weight: WeightGeo, Score: 1, Confidence: 1, Detail: "blocked ip"}, nil
	}
	if e.Geo == nil {
		return nil, nil
	}

	ip := net.ParseIP(rc.IPAddress)
	if ip == nil {
		return &models.RiskFactor{Name: FactorGeo, Weight: WeightGeo, Score: 0.5, Confidence: 0.5, Detail: "unparseable ip"}, nil
	}

	loc, err := e.Geo.Locate(ctx, ip)
	if err != nil {
		return nil, err
	}

	var score float64
	var reasons []string
	raise := func(s float64, reason string) {
		score = max(score, s)
		reasons = append(reasons, reason)
	}

	if loc.CountryCode != "" && slices.Contains(cfg.BlockedCountries, loc.CountryCode) {
		raise(1, "blocked country "+loc.CountryCode)
	}
	if loc.IsTor {
		raise(0.9, "tor exit node")
	}
	if loc.IsVPN || loc.IsProxy {
		raise(0.6, "anonymizing proxy")
	}
	if req.BillingCountry != "" && loc.CountryCode != "" && !strings.EqualFold(req.BillingCountry, loc.CountryCode) {
		raise(0.5, fmt.Sprintf("billing country %s differs from ip country %s", req.BillingCountry, loc.CountryCode))
	}

	if score == 0 {
		return nil, nil
	}
	return &models.RiskFactor{Name: FactorGeo, Weight: WeightGeo, Score: score, Confidence: 0.8, Detail: strings.Join(reasons, "; ")}, nil
}

func (e *Engine) deviceFactor(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error) {
	device := rc.Device
	if device == nil && e.Devices != nil && rc.DeviceFingerprint != "" {
		known, err := e.Devices.Lookup(ctx, rc.DeviceFingerprint)
		if err != nil {
			return nil, err
		}
		device = known
	}
	if device == nil {
		return nil, nil
	}

	if botUserAgent.MatchString(device.UserAgent) {
		return &models.RiskFactor{Name: FactorDevice, Weight: WeightDevice, Score: 0.8, Confidence: 0.9, Detail: "automated user agent"}, nil
	}

	fields := []string{device.UserAgent, device.Platform, device.Language, device.Timezone, device.ScreenResolution}
	missing := 0
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			missing++
		}
	}

	score := 0.5 * float64(missing) / float64(len(fields))
	if device.DoNotTrack {
		score += 0.1
	}
	if score == 0 {
		return nil, nil
	}
	return &models.RiskFactor{
		Name: FactorDevice, Weight: WeightDevice, Score: clamp(score), Confidence: 0.6,
		Detail: fmt.Sprintf("%d of %d device attributes missing", missing, len(fields)),
	}, nil
}

func (e *Engine) behaviorFactor(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error) {
	identity := rc.Identity(req)
	if e.Profiles == nil || identity == "" {
		return nil, nil
	}

	profile, err := e.Profiles.Get(ctx, identity)
	if err != nil {
		return nil, err
	}

	var country string
	if loc, ok := e.locate(ctx, rc.IPAddress); ok {
		country = loc.CountryCode
	}

	pattern, detail := Classify(profile, req.Amount, country, e.now())
	if pattern == PatternNormal {
		return nil, nil
	}
	return &models.RiskFactor{Name: FactorBehavior, Weight: WeightBehavior, Score: pattern.Score(), Confidence: 0.7, Detail: detail}, nil
}

func (e *Engine) emailFactor(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error) {
	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if email == "" {
		return nil, nil
	}
	if slices.Contains(cfg.BlockedEmails, email) {
		return &models.RiskFactor{Name: FactorEmail, Weight: WeightEmail, Score: 1, Confidence: 1, Detail: "blocked email"}, nil
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return &models.RiskFactor{Name: FactorEmail, Weight: WeightEmail, Score: 0.4, Confidence: 0.5, Detail: "malformed email"}, nil
	}

	if u, err := tld.Parse("https://" + email[at+1:]); err == nil {
		if slices.Contains(cfg.DisposableDomains, u.Domain) {
			return &models.RiskFactor{Name: FactorEmail, Weight: WeightEmail, Score: 0.7, Confidence: 0.9, Detail: "disposable domain " + u.Domain + "." + u.TLD}, nil
		}
	}

	if suspiciousEmail.MatchString(email) {
		return &models.RiskFactor{Name: FactorEmail, Weight: WeightEmail, Score: 0.4, Confidence: 0.5, Detail: "suspicious local part"}, nil
	}
	return nil, nil
}

func (e *Engine) modelFactor(ctx context.Context, req Request, rc RequestContext, cfg Config) (*models.RiskFactor, error) {
	if e.Predictor == nil {
		return nil, nil
	}

	prediction, err := e.Predictor.Predict(ctx, req, rc)
	if err != nil {
		return nil, err
	}
	if prediction.Score <= 0 {
		return nil, nil
	}
	return &models.RiskFactor{
		Name: FactorModel, Weight: WeightModel, Score: clamp(prediction.Score), Confidence: clamp(prediction.Confidence),
		Detail: "model " + prediction.ModelVersion,
	}, nil
}
