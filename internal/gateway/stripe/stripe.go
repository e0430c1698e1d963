package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// Card authorizations on Stripe are held for seven days.
const defaultAuthWindow = 7 * 24 * time.Hour

const (
	idempotencyMetadataKey = "idempotency_key"
	captureMetadataKey     = "capture_key"
)

// PaymentIntentStatuses translates Stripe PaymentIntent statuses.
var PaymentIntentStatuses = gateway.StatusTable{
	string(stripe.PaymentIntentStatusRequiresCapture):       gateway.StatusAuthorized,
	string(stripe.PaymentIntentStatusRequiresAction):        gateway.StatusRequiresAction,
	string(stripe.PaymentIntentStatusRequiresConfirmation):  gateway.StatusRequiresAction,
	string(stripe.PaymentIntentStatusProcessing):            gateway.StatusPending,
	string(stripe.PaymentIntentStatusSucceeded):             gateway.StatusCaptured,
	string(stripe.PaymentIntentStatusCanceled):              gateway.StatusVoided,
	string(stripe.PaymentIntentStatusRequiresPaymentMethod): gateway.StatusFailed,
}

// PayoutStatuses translates Stripe payout statuses.
var PayoutStatuses = gateway.StatusTable{
	string(stripe.PayoutStatusPaid):      gateway.StatusSettled,
	string(stripe.PayoutStatusPending):   gateway.StatusPending,
	string(stripe.PayoutStatusInTransit): gateway.StatusPending,
	string(stripe.PayoutStatusFailed):    gateway.StatusFailed,
	string(stripe.PayoutStatusCanceled):  gateway.StatusFailed,
}

type Gateway struct {
	api        *client.API
	authWindow time.Duration
}

func New(apiKey string, authWindow time.Duration) *Gateway {
	return NewWithBackends(apiKey, authWindow, nil)
}

// NewWithBackends builds a gateway over explicit stripe-go backends. Nil
// backends use Stripe's public endpoints.
func NewWithBackends(apiKey string, authWindow time.Duration, backends *stripe.Backends) *Gateway {
	var api client.API
	api.Init(apiKey, backends)

	if authWindow == 0 {
		authWindow = defaultAuthWindow
	}

	return &Gateway{api: &api, authWindow: authWindow}
}

func (g *Gateway) Name() models.Provider {
	return models.ProviderStripe
}

func (g *Gateway) CreateAuthorization(ctx context.Context, req gateway.AuthorizationRequest) (*gateway.AuthorizationResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(strings.ToLower(string(req.Currency))),
		PaymentMethod: stripe.String(req.PaymentMethodRef),
		Confirm:       stripe.Bool(true),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
	}
	params.Context = ctx
	params.AddMetadata(idempotencyMetadataKey, req.IdempotencyKey)
	params.SetIdempotencyKey(req.IdempotencyKey)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, ClassifyError("authorize", err)
	}

	return g.authorizationResult(pi), nil
}

func (g *Gateway) LookupAuthorization(ctx context.Context, req gateway.AuthorizationRequest) (*gateway.AuthorizationResult, error) {
	params := &stripe.PaymentIntentSearchParams{}
	params.Context = ctx
	params.Query = fmt.Sprintf("metadata['%s']:'%s'", idempotencyMetadataKey, req.IdempotencyKey)

	iter := g.api.PaymentIntents.Search(params)
	if iter.Next() {
		return g.authorizationResult(iter.PaymentIntent()), nil
	}
	if err := iter.Err(); err != nil {
		return nil, ClassifyError("lookup_authorization", err)
	}

	return nil, gateway.ErrNotFoundAtProvider
}

func (g *Gateway) authorizationResult(pi *stripe.PaymentIntent) *gateway.AuthorizationResult {
	result := &gateway.AuthorizationResult{
		ProviderRef: pi.ID,
		Status:      PaymentIntentStatuses.Translate(string(pi.Status)),
		ExpiresAt:   time.Unix(pi.Created, 0).Add(g.authWindow),
	}
	if pi.LastPaymentError != nil {
		result.FailureReason = pi.LastPaymentError.Msg
	}
	return result
}

func (g *Gateway) CreateCapture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	params := &stripe.PaymentIntentCaptureParams{
		AmountToCapture: stripe.Int64(req.Amount),
	}
	params.Context = ctx
	params.AddMetadata(captureMetadataKey, req.IdempotencyKey)
	params.SetIdempotencyKey(req.IdempotencyKey)

	pi, err := g.api.PaymentIntents.Capture(req.ProviderAuthRef, params)
	if err != nil {
		return nil, ClassifyError("capture", err)
	}

	return captureResult(pi), nil
}

// LookupCapture reports the capture made under req's key. The PaymentIntent
// must carry that key and have received exactly what earlier captures plus
// this one add up to; anything else is not this capture.
func (g *Gateway) LookupCapture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(req.ProviderAuthRef, params)
	if err != nil {
		return nil, ClassifyError("lookup_capture", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded ||
		pi.Metadata[captureMetadataKey] != req.IdempotencyKey ||
		pi.AmountReceived != req.CapturedBefore+req.Amount {
		return nil, gateway.ErrNotFoundAtProvider
	}

	return captureResult(pi), nil
}

func captureResult(pi *stripe.PaymentIntent) *gateway.CaptureResult {
	ref := pi.ID
	if pi.LatestCharge != nil {
		ref = pi.LatestCharge.ID
	}
	return &gateway.CaptureResult{
		ProviderRef: ref,
		Status:      PaymentIntentStatuses.Translate(string(pi.Status)),
	}
}

func (g *Gateway) CreateSettlement(ctx context.Context, req gateway.SettlementRequest) (*gateway.SettlementResult, error) {
	params := &stripe.PayoutParams{
		Amount:      stripe.Int64(req.NetAmount),
		Currency:    stripe.String(strings.ToLower(string(req.Currency))),
		Destination: stripe.String(req.Destination),
	}
	params.Context = ctx
	params.AddMetadata("capture_ref", req.ProviderCaptureRef)
	params.SetIdempotencyKey(req.IdempotencyKey)

	payout, err := g.api.Payouts.New(params)
	if err != nil {
		return nil, ClassifyError("settle", err)
	}

	return &gateway.SettlementResult{
		ProviderRef:    payout.ID,
		Status:         PayoutStatuses.Translate(string(payout.Status)),
		NetAmount:      payout.Amount,
		BankAccountRef: req.Destination,
	}, nil
}

func (g *Gateway) VoidAuthorization(ctx context.Context, providerAuthRef string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	if _, err := g.api.PaymentIntents.Cancel(providerAuthRef, params); err != nil {
		return ClassifyError("void", err)
	}
	return nil
}

// ClassifyError turns a stripe-go error into the orchestrator's taxonomy.
// Card errors and invalid requests are definitive; rate limits, API errors,
// idempotency races and transport failures are transient.
func ClassifyError(operation string, err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &models.ProviderError{Provider: models.ProviderStripe, Operation: operation, Err: err}
	}

	switch {
	case stripeErr.HTTPStatusCode == http.StatusTooManyRequests,
		stripeErr.HTTPStatusCode >= http.StatusInternalServerError,
		stripeErr.Type == stripe.ErrorTypeAPI,
		stripeErr.Type == stripe.ErrorTypeIdempotency:
		return &models.ProviderError{
			Provider:   models.ProviderStripe,
			Operation:  operation,
			StatusCode: stripeErr.HTTPStatusCode,
			Err:        err,
		}
	}

	logrus.Warnf("stripe %s declined: type=%s code=%s", operation, stripeErr.Type, stripeErr.Code)
	return &models.ProviderDeclineError{
		Provider:  models.ProviderStripe,
		Operation: operation,
		Code:      string(stripeErr.Code),
		Reason:    stripeErr.Msg,
	}
}
