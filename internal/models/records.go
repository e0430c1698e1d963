package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthorizationStatus string
type CaptureStatus string
type SettlementStatus string

const (
	AuthorizationAuthorized     AuthorizationStatus = "authorized"
	AuthorizationFailed         AuthorizationStatus = "failed"
	AuthorizationRequiresAction AuthorizationStatus = "requires_action"
	AuthorizationVoided         AuthorizationStatus = "voided"
	AuthorizationExpired        AuthorizationStatus = "expired"

	CaptureProcessing CaptureStatus = "processing"
	CaptureCaptured   CaptureStatus = "captured"
	CaptureFailed     CaptureStatus = "failed"

	SettlementPending SettlementStatus = "pending"
	SettlementSettled SettlementStatus = "settled"
	SettlementFailed  SettlementStatus = "failed"
)

// AuthorizationRecord is created once per intent. Only Status changes afterwards.
type AuthorizationRecord struct {
	ID            string              `json:"id" gorm:"primaryKey"`
	IntentID      string              `json:"intent_id" gorm:"uniqueIndex"`
	Amount        int64               `json:"amount"`
	Currency      Currency            `json:"currency"`
	Provider      Provider            `json:"provider"`
	Status        AuthorizationStatus `json:"status"`
	ExpiresAt     time.Time           `json:"expires_at"`
	ProviderRef   string              `json:"provider_ref,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// FeeLine is a single named component of a fee.
type FeeLine struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Fees is the total provider fee charged on a capture and its breakdown.
type Fees struct {
	Amount    int64     `json:"amount"`
	Breakdown []FeeLine `json:"breakdown"`
}

// CaptureRecord is reserved as processing before the provider is called.
// The (AuthorizationID, IdempotencyKey) pair is unique, so two writers racing
// for the same capture sequence cannot both hold a reservation.
type CaptureRecord struct {
	ID              string        `json:"id" gorm:"primaryKey"`
	AuthorizationID string        `json:"authorization_id" gorm:"uniqueIndex:idx_capture_auth_key"`
	IdempotencyKey  string        `json:"idempotency_key" gorm:"uniqueIndex:idx_capture_auth_key"`
	IntentID        string        `json:"intent_id" gorm:"index"`
	Amount          int64         `json:"amount"`
	Currency        Currency      `json:"currency"`
	Status          CaptureStatus `json:"status"`
	Fees            Fees          `json:"fees" gorm:"serializer:json"`
	ProviderRef     string        `json:"provider_ref,omitempty"`
	FailureReason   string        `json:"failure_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type SettlementRecord struct {
	ID             string           `json:"id" gorm:"primaryKey"`
	CaptureID      string           `json:"capture_id" gorm:"uniqueIndex"`
	IntentID       string           `json:"intent_id" gorm:"index"`
	NetAmount      int64            `json:"net_amount"`
	Currency       Currency         `json:"currency"`
	Status         SettlementStatus `json:"status"`
	BankAccountRef string           `json:"bank_account_ref,omitempty"`
	ProviderRef    string           `json:"provider_ref,omitempty"`
	FailureReason  string           `json:"failure_reason,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (a *AuthorizationRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

func (c *CaptureRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (s *SettlementRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// IsExpired reports whether the authorization window has elapsed at now.
func (a *AuthorizationRecord) IsExpired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}
