package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/metrics"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/risk"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name PaymentRepo --output ./mocks --with-expecter --structname MockPaymentRepo --filename mock_PaymentRepo.go
//go:generate mockery --name Publisher --output ./mocks --with-expecter --structname MockPublisher --filename mock_Publisher.go
//go:generate mockery --name RiskAssessor --output ./mocks --with-expecter --structname MockRiskAssessor --filename mock_RiskAssessor.go

// PaymentRepo defines the persistence operations the orchestrator needs.
// Lookups return nil, nil when nothing matches. SaveIntent fails with a
// ConflictError when the stored version differs from expectedVersion.
type PaymentRepo interface {
	CreateIntent(ctx context.Context, intent *models.PaymentIntent) error
	LoadIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
	FindIntentByIdempotencyKey(ctx context.Context, key string) (*models.PaymentIntent, error)
	ListIntentsByStatus(ctx context.Context, status models.IntentStatus) ([]models.PaymentIntent, error)
	SaveIntent(ctx context.Context, intent *models.PaymentIntent, expectedVersion int64) error

	CreateAuthorization(ctx context.Context, record *models.AuthorizationRecord) error
	GetAuthorization(ctx context.Context, id string) (*models.AuthorizationRecord, error)
	GetAuthorizationByIntent(ctx context.Context, intentID string) (*models.AuthorizationRecord, error)
	UpdateAuthorization(ctx context.Context, record *models.AuthorizationRecord) error

	CreateCapture(ctx context.Context, record *models.CaptureRecord) error
	UpdateCapture(ctx context.Context, record *models.CaptureRecord) error
	GetCapture(ctx context.Context, id string) (*models.CaptureRecord, error)
	ListCaptures(ctx context.Context, authorizationID string) ([]models.CaptureRecord, error)

	CreateSettlement(ctx context.Context, record *models.SettlementRecord) error
	GetSettlementByCapture(ctx context.Context, captureID string) (*models.SettlementRecord, error)
}

// Publisher defines the interface for publishing events to Kafka topics.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// RiskAssessor scores a payment before it reaches a provider.
type RiskAssessor interface {
	Assess(ctx context.Context, req risk.Request, rc risk.RequestContext, cfg risk.Config) models.RiskAssessment
}

type Config struct {
	RetryPolicy retry.Policy
	Risk        risk.Config
	// SettlementAccounts is the default payout destination per provider when
	// the intent carries no merchant account.
	SettlementAccounts map[models.Provider]string
	// AuditTimeout bounds each audit publish. Zero means defaultAuditTimeout.
	AuditTimeout time.Duration
}

const defaultAuditTimeout = 2 * time.Second

// AuthorizeResult is what a caller learns from Authorize. Risk is nil when
// the result is a replay of an earlier call.
type AuthorizeResult struct {
	Intent        *models.PaymentIntent       `json:"intent"`
	Authorization *models.AuthorizationRecord `json:"authorization,omitempty"`
	Risk          *models.RiskAssessment      `json:"risk,omitempty"`
	ManualReview  bool                        `json:"manual_review"`
}

// PaymentDetails is an intent with every phase record attached to it.
type PaymentDetails struct {
	Intent        *models.PaymentIntent       `json:"intent"`
	Authorization *models.AuthorizationRecord `json:"authorization,omitempty"`
	Captures      []models.CaptureRecord      `json:"captures"`
	Settlements   []models.SettlementRecord   `json:"settlements"`
}

// PaymentService moves payment intents through authorization, capture and
// settlement against the configured providers. Every transition holds the
// intent's exclusive token and is persisted with a version check.
type PaymentService struct {
	Repo      PaymentRepo
	Publisher Publisher
	Risk      RiskAssessor
	Gateways  gateway.Registry

	config     Config
	dispatcher *retry.Dispatcher
	locks      *lockTable
	validate   *validator.Validate
	now        func() time.Time
}

type Option func(*PaymentService)

// WithClock overrides the time source used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(s *PaymentService) { s.now = now }
}

// WithDispatcher replaces the retry dispatcher, mostly to skip real waits in tests.
func WithDispatcher(d *retry.Dispatcher) Option {
	return func(s *PaymentService) { s.dispatcher = d }
}

// NewPaymentService creates a PaymentService wired to the given collaborators.
func NewPaymentService(repo PaymentRepo, publisher Publisher, assessor RiskAssessor, gateways gateway.Registry, cfg Config, opts ...Option) *PaymentService {
	if cfg.AuditTimeout <= 0 {
		cfg.AuditTimeout = defaultAuditTimeout
	}
	s := &PaymentService{
		Repo:       repo,
		Publisher:  publisher,
		Risk:       assessor,
		Gateways:   gateways,
		config:     cfg,
		dispatcher: retry.NewDispatcher("provider"),
		locks:      newLockTable(),
		validate:   validator.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetIntent returns the intent and its phase records.
func (s *PaymentService) GetIntent(ctx context.Context, id string) (*PaymentDetails, error) {
	intent, err := s.Repo.LoadIntent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading payment intent: %w", err)
	}
	if intent == nil {
		return nil, &models.NotFoundError{Entity: "payment intent", ID: id}
	}

	details := &PaymentDetails{Intent: intent, Captures: []models.CaptureRecord{}, Settlements: []models.SettlementRecord{}}

	auth, err := s.Repo.GetAuthorizationByIntent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading authorization: %w", err)
	}
	if auth == nil {
		return details, nil
	}
	details.Authorization = auth

	captures, err := s.Repo.ListCaptures(ctx, auth.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading captures: %w", err)
	}
	details.Captures = captures

	for _, c := range captures {
		settlement, err := s.Repo.GetSettlementByCapture(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading settlement: %w", err)
		}
		if settlement != nil {
			details.Settlements = append(details.Settlements, *settlement)
		}
	}
	return details, nil
}

func (s *PaymentService) validateRequest(req interface{}) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &models.ValidationError{Field: fe.Field(), Reason: "failed on " + fe.Tag()}
	}
	return &models.ValidationError{Reason: err.Error()}
}

// dispatch runs op under the provider retry policy. The operation is detached
// from the caller's cancellation so it runs to completion or exhaustion.
func dispatch[T any](ctx context.Context, s *PaymentService, provider models.Provider, operation string, op func(ctx context.Context, attempt int) (T, error)) (retry.Result[T], error) {
	return retry.Execute(context.WithoutCancel(ctx), s.dispatcher, s.config.RetryPolicy, func(ctx context.Context, attempt int) (T, error) {
		value, err := op(ctx, attempt)
		outcome := models.OutcomeSuccess
		if err != nil {
			outcome = models.OutcomeFailure
		}
		metrics.ProviderAttemptsTotal.WithLabelValues(string(provider), operation, outcome).Inc()
		return value, err
	})
}

// save persists intent against the version it was loaded with.
func (s *PaymentService) save(ctx context.Context, intent *models.PaymentIntent) error {
	if err := s.Repo.SaveIntent(ctx, intent, intent.Version); err != nil {
		return fmt.Errorf("error saving payment intent: %w", err)
	}
	return nil
}

func (s *PaymentService) loadIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	intent, err := s.Repo.LoadIntent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading payment intent: %w", err)
	}
	if intent == nil {
		return nil, &models.NotFoundError{Entity: "payment intent", ID: id}
	}
	return intent, nil
}

func newID() string {
	return uuid.NewString()
}

func intentLog(intent *models.PaymentIntent) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"intent_id": intent.ID,
		"status":    intent.Status,
		"provider":  intent.Provider,
	})
}
