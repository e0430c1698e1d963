// Package memory is an in-process implementation of the payment store with
// the same version semantics as the Postgres one.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

type Store struct {
	mu             sync.RWMutex
	intents        map[string]models.PaymentIntent
	byKey          map[string]string
	authorizations map[string]models.AuthorizationRecord
	captures       map[string]models.CaptureRecord
	settlements    map[string]models.SettlementRecord
}

func New() *Store {
	return &Store{
		intents:        make(map[string]models.PaymentIntent),
		byKey:          make(map[string]string),
		authorizations: make(map[string]models.AuthorizationRecord),
		captures:       make(map[string]models.CaptureRecord),
		settlements:    make(map[string]models.SettlementRecord),
	}
}

func (s *Store) CreateIntent(ctx context.Context, intent *models.PaymentIntent) error {
	if err := intent.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if intent.ID == "" {
		intent.ID = uuid.NewString()
	}
	if _, ok := s.byKey[intent.IdempotencyKey]; ok {
		return &models.ConflictError{IntentID: intent.ID, Reason: "idempotency key already used"}
	}
	if _, ok := s.intents[intent.ID]; ok {
		return &models.ConflictError{IntentID: intent.ID, Reason: "intent already exists"}
	}

	now := time.Now().UTC()
	intent.CreatedAt, intent.UpdatedAt = now, now
	s.intents[intent.ID] = *intent
	s.byKey[intent.IdempotencyKey] = intent.ID
	return nil
}

func (s *Store) LoadIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	intent, ok := s.intents[id]
	if !ok {
		return nil, nil
	}
	return &intent, nil
}

func (s *Store) FindIntentByIdempotencyKey(ctx context.Context, key string) (*models.PaymentIntent, error) {
	s.mu.RLock()
	id, ok := s.byKey[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.LoadIntent(ctx, id)
}

func (s *Store) ListIntentsByStatus(ctx context.Context, status models.IntentStatus) ([]models.PaymentIntent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.PaymentIntent
	for _, intent := range s.intents {
		if intent.Status == status {
			out = append(out, intent)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) SaveIntent(ctx context.Context, intent *models.PaymentIntent, expectedVersion int64) error {
	if err := intent.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.intents[intent.ID]
	if !ok || stored.Version != expectedVersion {
		return &models.ConflictError{IntentID: intent.ID, Reason: fmt.Sprintf("version %d is stale", expectedVersion)}
	}

	intent.Version = expectedVersion + 1
	intent.CreatedAt = stored.CreatedAt
	intent.UpdatedAt = time.Now().UTC()
	s.intents[intent.ID] = *intent
	return nil
}

func (s *Store) CreateAuthorization(ctx context.Context, record *models.AuthorizationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.authorizations {
		if existing.IntentID == record.IntentID {
			return &models.ConflictError{IntentID: record.IntentID, Reason: "authorization already recorded"}
		}
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	s.authorizations[record.ID] = *record
	return nil
}

func (s *Store) GetAuthorization(ctx context.Context, id string) (*models.AuthorizationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.authorizations[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *Store) GetAuthorizationByIntent(ctx context.Context, intentID string) (*models.AuthorizationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.authorizations {
		if record.IntentID == intentID {
			return &record, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateAuthorization(ctx context.Context, record *models.AuthorizationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.authorizations[record.ID]
	if !ok {
		return &models.NotFoundError{Entity: "authorization", ID: record.ID}
	}
	stored.Status = record.Status
	stored.ProviderRef = record.ProviderRef
	stored.ExpiresAt = record.ExpiresAt
	stored.FailureReason = record.FailureReason
	s.authorizations[record.ID] = stored
	return nil
}

func (s *Store) CreateCapture(ctx context.Context, record *models.CaptureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.captures {
		if existing.AuthorizationID == record.AuthorizationID && existing.IdempotencyKey == record.IdempotencyKey {
			return &models.ConflictError{IntentID: record.IntentID, Reason: "capture " + record.IdempotencyKey + " already reserved"}
		}
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	s.captures[record.ID] = *record
	return nil
}

func (s *Store) UpdateCapture(ctx context.Context, record *models.CaptureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.captures[record.ID]
	if !ok {
		return &models.NotFoundError{Entity: "capture", ID: record.ID}
	}
	stored.Status = record.Status
	stored.Fees = record.Fees
	stored.ProviderRef = record.ProviderRef
	stored.FailureReason = record.FailureReason
	s.captures[record.ID] = stored
	return nil
}

func (s *Store) GetCapture(ctx context.Context, id string) (*models.CaptureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.captures[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *Store) ListCaptures(ctx context.Context, authorizationID string) ([]models.CaptureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CaptureRecord
	for _, record := range s.captures {
		if record.AuthorizationID == authorizationID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateSettlement(ctx context.Context, record *models.SettlementRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.settlements {
		if existing.CaptureID == record.CaptureID {
			return &models.ConflictError{IntentID: record.IntentID, Reason: "capture already settled"}
		}
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	s.settlements[record.ID] = *record
	return nil
}

func (s *Store) GetSettlementByCapture(ctx context.Context, captureID string) (*models.SettlementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.settlements {
		if record.CaptureID == captureID {
			return &record, nil
		}
	}
	return nil, nil
}
