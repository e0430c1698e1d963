package posgrest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"gorm.io/gorm"
)

// PaymentStore persists intents and their phase records in Postgres.
// Intent writes are conditional on the version read by the caller.
type PaymentStore struct {
	db             *gorm.DB
	intents        *repository[models.PaymentIntent]
	authorizations *repository[models.AuthorizationRecord]
	captures       *repository[models.CaptureRecord]
	settlements    *repository[models.SettlementRecord]
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{
		db:             db,
		intents:        New[models.PaymentIntent](db),
		authorizations: New[models.AuthorizationRecord](db),
		captures:       New[models.CaptureRecord](db),
		settlements:    New[models.SettlementRecord](db),
	}
}

// Migrate creates or updates the tables the store needs.
func (s *PaymentStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.PaymentIntent{},
		&models.AuthorizationRecord{},
		&models.CaptureRecord{},
		&models.SettlementRecord{},
	)
}

func (s *PaymentStore) CreateIntent(ctx context.Context, intent *models.PaymentIntent) error {
	if err := intent.Validate(); err != nil {
		return err
	}
	if err := s.intents.Create(ctx, intent); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &models.ConflictError{IntentID: intent.ID, Reason: "idempotency key already used"}
		}
		return err
	}
	return nil
}

func (s *PaymentStore) LoadIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	return s.intents.GetByID(ctx, id)
}

func (s *PaymentStore) FindIntentByIdempotencyKey(ctx context.Context, key string) (*models.PaymentIntent, error) {
	return s.intents.FirstBy(ctx, "idempotency_key = ?", key)
}

func (s *PaymentStore) ListIntentsByStatus(ctx context.Context, status models.IntentStatus) ([]models.PaymentIntent, error) {
	return s.intents.GetBy(ctx, "status = ?", status)
}

// SaveIntent writes intent only if the stored version still equals
// expectedVersion, then advances intent.Version.
func (s *PaymentStore) SaveIntent(ctx context.Context, intent *models.PaymentIntent, expectedVersion int64) error {
	if err := intent.Validate(); err != nil {
		return err
	}
	next := *intent
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&models.PaymentIntent{}).
		Where("id = ? AND version = ?", intent.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(&next)
	if res.Error != nil {
		return fmt.Errorf("error saving payment intent %s: %w", intent.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.ConflictError{IntentID: intent.ID, Reason: fmt.Sprintf("version %d is stale", expectedVersion)}
	}

	intent.Version = next.Version
	intent.UpdatedAt = next.UpdatedAt
	return nil
}

func (s *PaymentStore) CreateAuthorization(ctx context.Context, record *models.AuthorizationRecord) error {
	if err := s.authorizations.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &models.ConflictError{IntentID: record.IntentID, Reason: "authorization already recorded"}
		}
		return err
	}
	return nil
}

func (s *PaymentStore) GetAuthorization(ctx context.Context, id string) (*models.AuthorizationRecord, error) {
	return s.authorizations.GetByID(ctx, id)
}

func (s *PaymentStore) GetAuthorizationByIntent(ctx context.Context, intentID string) (*models.AuthorizationRecord, error) {
	return s.authorizations.FirstBy(ctx, "intent_id = ?", intentID)
}

// UpdateAuthorization changes the only mutable fields of an authorization.
func (s *PaymentStore) UpdateAuthorization(ctx context.Context, record *models.AuthorizationRecord) error {
	return s.authorizations.UpdateColumns(ctx, record.ID, map[string]interface{}{
		"status":         record.Status,
		"provider_ref":   record.ProviderRef,
		"expires_at":     record.ExpiresAt,
		"failure_reason": record.FailureReason,
	})
}

func (s *PaymentStore) CreateCapture(ctx context.Context, record *models.CaptureRecord) error {
	if err := s.captures.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &models.ConflictError{IntentID: record.IntentID, Reason: "capture " + record.IdempotencyKey + " already reserved"}
		}
		return err
	}
	return nil
}

// UpdateCapture records the provider's answer on a reserved capture.
func (s *PaymentStore) UpdateCapture(ctx context.Context, record *models.CaptureRecord) error {
	return s.captures.UpdateSelected(ctx, record, "status", "fees", "provider_ref", "failure_reason")
}

func (s *PaymentStore) GetCapture(ctx context.Context, id string) (*models.CaptureRecord, error) {
	return s.captures.GetByID(ctx, id)
}

func (s *PaymentStore) ListCaptures(ctx context.Context, authorizationID string) ([]models.CaptureRecord, error) {
	return s.captures.GetBy(ctx, "authorization_id = ?", authorizationID)
}

func (s *PaymentStore) CreateSettlement(ctx context.Context, record *models.SettlementRecord) error {
	if err := s.settlements.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &models.ConflictError{IntentID: record.IntentID, Reason: "capture already settled"}
		}
		return err
	}
	return nil
}

func (s *PaymentStore) GetSettlementByCapture(ctx context.Context, captureID string) (*models.SettlementRecord, error) {
	return s.settlements.FirstBy(ctx, "capture_id = ?", captureID)
}
