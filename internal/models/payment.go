package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntentStatus string
type Currency string
type Provider string

const (
	StatusNone       IntentStatus = "NONE"
	StatusAuthorized IntentStatus = "AUTHORIZED"
	StatusCaptured   IntentStatus = "CAPTURED"
	StatusSettled    IntentStatus = "SETTLED"
	StatusFailed     IntentStatus = "FAILED"
	StatusCancelled  IntentStatus = "CANCELLED"
	StatusExpired    IntentStatus = "EXPIRED"

	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
	CurrencyJPY Currency = "JPY"

	ProviderStripe  Provider = "stripe"
	ProviderPayPal  Provider = "paypal"
	ProviderSandbox Provider = "sandbox"
)

// zeroDecimalCurrencies have no minor unit: 1 minor unit equals 1 major unit.
var zeroDecimalCurrencies = map[Currency]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "JPY": true,
	"KMF": true, "KRW": true, "MGA": true, "PYG": true, "RWF": true,
	"UGX": true, "VND": true, "VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

// PaymentIntent is the aggregate root of a payment. It is never deleted,
// only moved between statuses. Version guards every write.
type PaymentIntent struct {
	ID                 string         `json:"id" gorm:"primaryKey"`
	IdempotencyKey     string         `json:"idempotency_key" gorm:"uniqueIndex"`
	Amount             int64          `json:"amount"`
	Currency           Currency       `json:"currency"`
	Provider           Provider       `json:"provider"`
	PaymentMethodRef   string         `json:"payment_method_ref"`
	CustomerEmail      string         `json:"customer_email,omitempty"`
	UserID             string         `json:"user_id,omitempty"`
	MerchantAccountRef string         `json:"merchant_account_ref,omitempty"`
	Status             IntentStatus   `json:"status" gorm:"index"`
	ProviderAttempts   int            `json:"provider_attempts"`
	RiskScore          float64        `json:"risk_score"`
	RiskRecommendation Recommendation `json:"risk_recommendation,omitempty"`
	ManualReview       bool           `json:"manual_review"`
	FailureReason      string         `json:"failure_reason,omitempty"`
	Version            int64          `json:"version"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (p *PaymentIntent) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return
}

// Validate reports the first field of the intent holding a value outside its
// domain. Stores call it before every write.
func (p *PaymentIntent) Validate() error {
	switch {
	case !p.Status.IsValid():
		return &ValidationError{Field: "status", Reason: "unknown status " + string(p.Status)}
	case !p.Provider.IsValid():
		return &ValidationError{Field: "provider", Reason: "unknown provider " + string(p.Provider)}
	case !p.Currency.IsValid():
		return &ValidationError{Field: "currency", Reason: "not an ISO 4217 code: " + string(p.Currency)}
	case p.Amount <= 0:
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return nil
}

// IsTerminal reports whether no further phase can be entered from the status.
func (s IntentStatus) IsTerminal() bool {
	switch s {
	case StatusSettled, StatusFailed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

func (s IntentStatus) IsValid() bool {
	switch s {
	case StatusNone, StatusAuthorized, StatusCaptured, StatusSettled, StatusFailed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderStripe, ProviderPayPal, ProviderSandbox:
		return true
	default:
		return false
	}
}

// Exponent returns the number of minor-unit digits of the currency.
func (c Currency) Exponent() int32 {
	if zeroDecimalCurrencies[c] {
		return 0
	}
	return 2
}

func (c Currency) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
