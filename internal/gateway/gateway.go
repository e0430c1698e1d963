package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

// ProviderStatus is the closed vocabulary every provider's native statuses
// are translated into. Native strings never leave a gateway implementation.
type ProviderStatus string

const (
	StatusAuthorized     ProviderStatus = "authorized"
	StatusRequiresAction ProviderStatus = "requires_action"
	StatusCaptured       ProviderStatus = "captured"
	StatusPending        ProviderStatus = "pending"
	StatusSettled        ProviderStatus = "settled"
	StatusVoided         ProviderStatus = "voided"
	StatusExpired        ProviderStatus = "expired"
	StatusFailed         ProviderStatus = "failed"
)

// ErrNotFoundAtProvider is returned by lookups when the provider has no trace
// of the operation.
var ErrNotFoundAtProvider = errors.New("operation not found at provider")

type AuthorizationRequest struct {
	Amount           int64
	Currency         models.Currency
	PaymentMethodRef string
	IdempotencyKey   string
}

type AuthorizationResult struct {
	ProviderRef   string
	Status        ProviderStatus
	ExpiresAt     time.Time
	FailureReason string
}

type CaptureRequest struct {
	ProviderAuthRef  string
	PaymentMethodRef string
	Amount           int64
	// CapturedBefore is what earlier successful captures of the same
	// authorization already took.
	CapturedBefore int64
	Currency       models.Currency
	IdempotencyKey string
}

type CaptureResult struct {
	ProviderRef string
	Status      ProviderStatus
}

type SettlementRequest struct {
	ProviderCaptureRef string
	NetAmount          int64
	Currency           models.Currency
	Destination        string
	IdempotencyKey     string
}

type SettlementResult struct {
	ProviderRef    string
	Status         ProviderStatus
	NetAmount      int64
	BankAccountRef string
}

// Gateway is the uniform interface over an external payment processor.
// Implementations classify their failures: transient ones are returned as
// *models.ProviderError, definitive refusals as *models.ProviderDeclineError.
//
//go:generate mockery --name Gateway --output ../service/mocks --with-expecter --structname MockGateway --filename mock_Gateway.go
type Gateway interface {
	Name() models.Provider
	CreateAuthorization(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error)
	CreateCapture(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
	CreateSettlement(ctx context.Context, req SettlementRequest) (*SettlementResult, error)
	VoidAuthorization(ctx context.Context, providerAuthRef string) error
	LookupAuthorization(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error)
	LookupCapture(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
}

// StatusTable maps a provider's native statuses onto ProviderStatus.
type StatusTable map[string]ProviderStatus

// Translate returns the canonical status for native. Unknown statuses are
// treated as failures so they never advance an intent.
func (t StatusTable) Translate(native string) ProviderStatus {
	if status, ok := t[native]; ok {
		return status
	}
	return StatusFailed
}

// Registry resolves the gateway for a provider.
type Registry map[models.Provider]Gateway

func NewRegistry(gateways ...Gateway) Registry {
	registry := make(Registry, len(gateways))
	for _, g := range gateways {
		registry[g.Name()] = g
	}
	return registry
}

func (r Registry) Get(provider models.Provider) (Gateway, error) {
	g, ok := r[provider]
	if !ok {
		return nil, &models.ValidationError{Field: "provider", Reason: fmt.Sprintf("no gateway configured for %q", provider)}
	}
	return g, nil
}
