package dto

import (
	"strings"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

// Device carries the client-reported attributes used by the device risk factor.
type Device struct {
	UserAgent        string `json:"user_agent"`
	Platform         string `json:"platform"`
	Language         string `json:"language"`
	Timezone         string `json:"timezone"`
	ScreenResolution string `json:"screen_resolution"`
	DoNotTrack       bool   `json:"do_not_track"`
}

type AuthorizeRequest struct {
	IdempotencyKey     string  `json:"idempotency_key" validate:"omitempty,max=255"`
	Amount             int64   `json:"amount" validate:"required,gt=0"`
	Currency           string  `json:"currency" validate:"required,iso4217"`
	Provider           string  `json:"provider" validate:"required,oneof=stripe paypal sandbox"`
	PaymentMethodRef   string  `json:"payment_method_ref" validate:"required"`
	CustomerEmail      string  `json:"customer_email" validate:"omitempty,email"`
	UserID             string  `json:"user_id"`
	MerchantAccountRef string  `json:"merchant_account_ref"`
	BillingCountry     string  `json:"billing_country" validate:"omitempty,iso3166_1_alpha2"`
	IPAddress          string  `json:"ip_address" validate:"omitempty,ip"`
	DeviceFingerprint  string  `json:"device_fingerprint"`
	SessionID          string  `json:"session_id"`
	Device             *Device `json:"device,omitempty"`
}

// CaptureRequest captures the remaining authorized amount when Amount is nil.
type CaptureRequest struct {
	Amount *int64 `json:"amount,omitempty"`
}

func (p *AuthorizeRequest) Sanitize() {
	p.IdempotencyKey = strings.TrimSpace(p.IdempotencyKey)
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	p.Provider = strings.ToLower(strings.TrimSpace(p.Provider))
	p.PaymentMethodRef = strings.TrimSpace(p.PaymentMethodRef)
	p.CustomerEmail = strings.ToLower(strings.TrimSpace(p.CustomerEmail))
	p.UserID = strings.TrimSpace(p.UserID)
	p.MerchantAccountRef = strings.TrimSpace(p.MerchantAccountRef)
	p.BillingCountry = strings.ToUpper(strings.TrimSpace(p.BillingCountry))
	p.IPAddress = strings.TrimSpace(p.IPAddress)
}

func (p *AuthorizeRequest) ToEntity() *models.PaymentIntent {
	return &models.PaymentIntent{
		IdempotencyKey:     p.IdempotencyKey,
		Amount:             p.Amount,
		Currency:           models.Currency(p.Currency),
		Provider:           models.Provider(p.Provider),
		PaymentMethodRef:   p.PaymentMethodRef,
		CustomerEmail:      p.CustomerEmail,
		UserID:             p.UserID,
		MerchantAccountRef: p.MerchantAccountRef,
		Status:             models.StatusNone,
	}
}

// Identity returns the key the risk engine tracks velocity and behavior under.
func (p *AuthorizeRequest) Identity() string {
	if p.UserID != "" {
		return p.UserID
	}
	return p.CustomerEmail
}
