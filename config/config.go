package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/risk"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func New() (*Config, error) {
	var Config Config
	if os.Getenv("GO_ENV") == "local" {
		if err := godotenv.Load(".env"); err != nil {
			logrus.Error("Error can't get the environment variables by file")
		}
	}

	if err := env.Parse(&Config); err != nil {
		logrus.Fatalf("Error initializing: %s", err.Error())
		os.Exit(1)
	}
	return &Config, nil
}

type Config struct {
	APP
	DB
	Kafka
	Redis
	Provider
	Risk
}

type APP struct {
	PORT                string        `env:"APP_PORT" envDefault:"8080"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"text"`
	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"1m"`
}

// ConfigureLogger applies the level and format to the package-level logrus logger.
func (a APP) ConfigureLogger() {
	if a.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(a.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", a.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

type DB struct {
	HOST     string `env:"DB_HOST"`
	USER     string `env:"DB_USER"`
	PASSWORD string `env:"DB_PASSWORD"`
	NAME     string `env:"DB_NAME"`
	PORT     string `env:"DB_PORT"`
	SSLMODE  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type Kafka struct {
	Brokers              string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	PaymentConsumerGroup string `env:"KAFKA_PAYMENT_GROUP_ID" envDefault:"payment-orchestrator"`
	PublishTopics        string `env:"KAFKA_PUBLISH_TOPICS" envDefault:"payments.audit,payments.dlq"`
	SubscriberTopics     string `env:"KAFKA_SUBSCRIBER_TOPICS" envDefault:"payments.reconcile"`

	RetryMaxAttempts int           `env:"KAFKA_RETRY_MAX_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"KAFKA_RETRY_BASE_DELAY" envDefault:"100ms"`
	RetryMaxDelay    time.Duration `env:"KAFKA_RETRY_MAX_DELAY" envDefault:"10s"`
	RetryJitter      bool          `env:"KAFKA_RETRY_JITTER" envDefault:"true"`

	// AuditPublishTimeout bounds one audit publish, retries included.
	AuditPublishTimeout time.Duration `env:"KAFKA_AUDIT_PUBLISH_TIMEOUT" envDefault:"2s"`
}

// GetRetryPolicy is the policy for publishing and for handling consumed
// messages. MaxAttempts counts the first try.
func (k Kafka) GetRetryPolicy() retry.Policy {
	maxRetries := k.RetryMaxAttempts - 1
	if maxRetries < 0 {
		maxRetries = 0
	}
	return retry.Policy{
		MaxRetries:         maxRetries,
		BaseDelay:          k.RetryBaseDelay,
		ExponentialBackoff: true,
		MaxDelay:           k.RetryMaxDelay,
		Jitter:             k.RetryJitter,
	}
}

type Redis struct {
	// An empty address keeps velocity and behavior profiles in memory.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Provider struct {
	Enabled    []string      `env:"PROVIDERS" envSeparator:"," envDefault:"sandbox"`
	AuthWindow time.Duration `env:"PROVIDER_AUTH_WINDOW" envDefault:"168h"`

	RetryMaxRetries  int           `env:"PROVIDER_RETRY_MAX_RETRIES" envDefault:"3"`
	RetryBaseDelay   time.Duration `env:"PROVIDER_RETRY_BASE_DELAY" envDefault:"1s"`
	RetryExponential bool          `env:"PROVIDER_RETRY_EXPONENTIAL" envDefault:"true"`
	RetryMaxDelay    time.Duration `env:"PROVIDER_RETRY_MAX_DELAY" envDefault:"0s"`
	RetryJitter      bool          `env:"PROVIDER_RETRY_JITTER" envDefault:"false"`

	StripeAPIKey string `env:"STRIPE_API_KEY"`

	PayPalBaseURL           string        `env:"PAYPAL_BASE_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	PayPalClientID          string        `env:"PAYPAL_CLIENT_ID"`
	PayPalClientSecret      string        `env:"PAYPAL_CLIENT_SECRET"`
	PayPalRequestsPerSecond float64       `env:"PAYPAL_REQUESTS_PER_SECOND" envDefault:"10"`
	PayPalTimeout           time.Duration `env:"PAYPAL_TIMEOUT" envDefault:"10s"`

	SettlementAccountStripe  string `env:"SETTLEMENT_ACCOUNT_STRIPE"`
	SettlementAccountPayPal  string `env:"SETTLEMENT_ACCOUNT_PAYPAL"`
	SettlementAccountSandbox string `env:"SETTLEMENT_ACCOUNT_SANDBOX" envDefault:"ba_sandbox_default"`
}

func (p Provider) GetRetryPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries:         p.RetryMaxRetries,
		BaseDelay:          p.RetryBaseDelay,
		ExponentialBackoff: p.RetryExponential,
		MaxDelay:           p.RetryMaxDelay,
		Jitter:             p.RetryJitter,
	}
}

func (p Provider) SettlementAccounts() map[models.Provider]string {
	accounts := map[models.Provider]string{}
	for provider, account := range map[models.Provider]string{
		models.ProviderStripe:  p.SettlementAccountStripe,
		models.ProviderPayPal:  p.SettlementAccountPayPal,
		models.ProviderSandbox: p.SettlementAccountSandbox,
	} {
		if account != "" {
			accounts[provider] = account
		}
	}
	return accounts
}

type Risk struct {
	Threshold                  float64 `env:"RISK_THRESHOLD" envDefault:"0.4"`
	MaxDailyAmount             float64 `env:"RISK_MAX_DAILY_AMOUNT" envDefault:"50000"`
	MaxDailyTransactions       int     `env:"RISK_MAX_DAILY_TRANSACTIONS" envDefault:"20"`
	EnableGeoBlocking          bool    `env:"RISK_ENABLE_GEO_BLOCKING" envDefault:"true"`
	EnableDeviceFingerprinting bool    `env:"RISK_ENABLE_DEVICE_FINGERPRINTING" envDefault:"true"`
	EnableBehavioralAnalysis   bool    `env:"RISK_ENABLE_BEHAVIORAL_ANALYSIS" envDefault:"true"`
	EnableModelScoring         bool    `env:"RISK_ENABLE_MODEL_SCORING" envDefault:"false"`
	EnableCustomRules          bool    `env:"RISK_ENABLE_CUSTOM_RULES" envDefault:"true"`

	BlockedCountries  []string `env:"RISK_BLOCKED_COUNTRIES" envSeparator:","`
	BlockedIPs        []string `env:"RISK_BLOCKED_IPS" envSeparator:","`
	BlockedEmails     []string `env:"RISK_BLOCKED_EMAILS" envSeparator:","`
	DisposableDomains []string `env:"RISK_DISPOSABLE_DOMAINS" envSeparator:","`

	CacheSize int           `env:"RISK_CACHE_SIZE" envDefault:"10000"`
	CacheTTL  time.Duration `env:"RISK_CACHE_TTL" envDefault:"15m"`

	GeoIPCountryDB   string `env:"GEOIP_COUNTRY_DB"`
	GeoIPAnonymousDB string `env:"GEOIP_ANONYMOUS_DB"`

	PredictorURL     string        `env:"RISK_PREDICTOR_URL"`
	PredictorTimeout time.Duration `env:"RISK_PREDICTOR_TIMEOUT" envDefault:"2s"`

	// HighValueLimit in minor units enables the HIGH_VALUE rule when positive.
	HighValueLimit  int64   `env:"RISK_HIGH_VALUE_LIMIT" envDefault:"0"`
	HighValueWeight float64 `env:"RISK_HIGH_VALUE_WEIGHT" envDefault:"0.1"`
}

// EngineConfig converts the environment settings into the engine's thresholds.
func (r Risk) EngineConfig() risk.Config {
	cfg := risk.DefaultConfig()
	cfg.RiskThreshold = r.Threshold
	cfg.MaxDailyAmount = r.MaxDailyAmount
	cfg.MaxDailyTransactions = r.MaxDailyTransactions
	cfg.EnableGeoBlocking = r.EnableGeoBlocking
	cfg.EnableDeviceFingerprinting = r.EnableDeviceFingerprinting
	cfg.EnableBehavioralAnalysis = r.EnableBehavioralAnalysis
	cfg.EnableModelScoring = r.EnableModelScoring
	cfg.EnableCustomRules = r.EnableCustomRules
	cfg.BlockedCountries = r.BlockedCountries
	cfg.BlockedIPs = r.BlockedIPs
	cfg.BlockedEmails = r.BlockedEmails
	if len(r.DisposableDomains) > 0 {
		cfg.DisposableDomains = r.DisposableDomains
	}
	return cfg
}
