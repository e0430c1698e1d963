package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeffleon2/draftea-payment-orchestrator/config"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway/paypal"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway/sandbox"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway/stripe"
	handlers "github.com/jeffleon2/draftea-payment-orchestrator/internal/handlers"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/metrics"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/publisher"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/repository/posgrest"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/risk"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/service"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/subscriber"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type App struct {
	config    *config.Config
	Router    *gin.Engine
	Service   *service.PaymentService
	publisher *publisher.KafkaPublisher
	consumer  *subscriber.KafkaConsumer
	handler   *handlers.PaymentHandler
	closers   []func() error
}

func (a *App) Initialize(cfg *config.Config) {
	a.config = cfg
	cfg.APP.ConfigureLogger()

	db, err := cfg.DB.GormConnect()
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	store := posgrest.NewPaymentStore(db)
	if err := store.Migrate(); err != nil {
		logrus.Fatalf("failed to auto migrate: %v", err)
	}

	gateways, err := a.buildGateways()
	if err != nil {
		logrus.Fatalf("failed to configure providers: %v", err)
	}

	brokers := strings.Split(cfg.Kafka.Brokers, ",")
	publishTopics := strings.Split(cfg.Kafka.PublishTopics, ",")
	a.publisher = publisher.NewKafkaPublisher(brokers, publishTopics, cfg.Kafka.GetRetryPolicy())
	a.closers = append(a.closers, a.publisher.Close)

	a.Service = service.NewPaymentService(store, a.publisher, a.buildRiskEngine(), gateways, service.Config{
		RetryPolicy:        cfg.Provider.GetRetryPolicy(),
		Risk:               cfg.Risk.EngineConfig(),
		SettlementAccounts: cfg.Provider.SettlementAccounts(),
		AuditTimeout:       cfg.Kafka.AuditPublishTimeout,
	})
	a.handler = handlers.NewPaymentHandler(a.Service)

	metrics.RegisterMetrics()

	a.Router = NewRouter(a.handler)

	topics := strings.Split(cfg.Kafka.SubscriberTopics, ",")
	a.consumer = subscriber.NewMultiTopicConsumer(brokers, topics, cfg.Kafka.PaymentConsumerGroup, a.publisher, cfg.Kafka.GetRetryPolicy())
}

func (a *App) buildGateways() (gateway.Registry, error) {
	p := a.config.Provider
	var gws []gateway.Gateway
	for _, name := range p.Enabled {
		switch models.Provider(strings.TrimSpace(name)) {
		case models.ProviderStripe:
			if p.StripeAPIKey == "" {
				return nil, errors.New("STRIPE_API_KEY is required when stripe is enabled")
			}
			gws = append(gws, stripe.New(p.StripeAPIKey, p.AuthWindow))
		case models.ProviderPayPal:
			gws = append(gws, paypal.New(paypal.Config{
				BaseURL:           p.PayPalBaseURL,
				ClientID:          p.PayPalClientID,
				ClientSecret:      p.PayPalClientSecret,
				RequestsPerSecond: p.PayPalRequestsPerSecond,
				Timeout:           p.PayPalTimeout,
				AuthWindow:        p.AuthWindow,
			}))
		case models.ProviderSandbox:
			gws = append(gws, sandbox.New(p.AuthWindow))
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
	}
	if len(gws) == 0 {
		return nil, errors.New("no provider enabled")
	}
	return gateway.NewRegistry(gws...), nil
}

// buildRiskEngine keeps velocity and behavior in Redis when it is configured
// so every replica sees the same history.
func (a *App) buildRiskEngine() *risk.Engine {
	cfg := a.config
	opts := []risk.Option{
		risk.WithDevices(risk.NewDeviceRegistry()),
		risk.WithCache(risk.NewCache(cfg.Risk.CacheSize, cfg.Risk.CacheTTL)),
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)
		opts = append(opts,
			risk.WithVelocity(risk.NewRedisVelocity(client, "payments")),
			risk.WithProfiles(risk.NewRedisProfiles(client, "payments")),
		)
	} else {
		logrus.Warn("REDIS_ADDR not set, risk history is kept in memory")
		opts = append(opts,
			risk.WithVelocity(risk.NewMemoryVelocity()),
			risk.WithProfiles(risk.NewMemoryProfiles()),
		)
	}

	if cfg.Risk.GeoIPCountryDB != "" {
		locator, err := risk.OpenMaxMind(cfg.Risk.GeoIPCountryDB, cfg.Risk.GeoIPAnonymousDB)
		if err != nil {
			logrus.Errorf("geo risk factor disabled: %v", err)
		} else {
			a.closers = append(a.closers, locator.Close)
			opts = append(opts, risk.WithGeo(locator))
		}
	}

	if cfg.Risk.PredictorURL != "" {
		opts = append(opts, risk.WithPredictor(risk.NewHTTPPredictor(cfg.Risk.PredictorURL, cfg.Risk.PredictorTimeout)))
	}
	if cfg.Risk.HighValueLimit > 0 {
		opts = append(opts, risk.WithRules(risk.HighValueRule(cfg.Risk.HighValueLimit, cfg.Risk.HighValueWeight)))
	}

	return risk.NewEngine(opts...)
}

// Run serves HTTP, consumes reconcile commands and sweeps expired
// authorizations until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", a.config.APP.PORT),
		Handler: a.Router,
	}

	go func() {
		if err := a.consumer.Listen(ctx, a.handleMessage); err != nil {
			logrus.Errorf("consumer stopped: %v", err)
		}
	}()
	go a.sweepExpired(ctx, a.config.APP.ExpirySweepInterval)

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %v", err)
	}
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			logrus.Errorf("close: %v", err)
		}
	}
	return nil
}

func (a *App) handleMessage(ctx context.Context, topic string, value []byte) error {
	logrus.WithField("topic", topic).Debugf("received message %s", string(value))
	return a.handler.HandleEvents(ctx, topic, value)
}

func (a *App) sweepExpired(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.Service.ExpireStale(ctx)
			if err != nil {
				logrus.Errorf("expiry sweep: %v", err)
			}
			if n > 0 {
				logrus.Infof("expired %d authorizations", n)
			}
		}
	}
}
