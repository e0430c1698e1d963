package paypal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// AuthorizationStatuses translates PayPal authorization statuses.
var AuthorizationStatuses = gateway.StatusTable{
	"CREATED":            gateway.StatusAuthorized,
	"PARTIALLY_CAPTURED": gateway.StatusAuthorized,
	"PENDING":            gateway.StatusRequiresAction,
	"CAPTURED":           gateway.StatusCaptured,
	"VOIDED":             gateway.StatusVoided,
	"EXPIRED":            gateway.StatusExpired,
	"DENIED":             gateway.StatusFailed,
}

// CaptureStatuses translates PayPal capture statuses.
var CaptureStatuses = gateway.StatusTable{
	"COMPLETED":          gateway.StatusCaptured,
	"PENDING":            gateway.StatusPending,
	"PARTIALLY_REFUNDED": gateway.StatusCaptured,
	"DECLINED":           gateway.StatusFailed,
	"FAILED":             gateway.StatusFailed,
}

// PayoutStatuses translates PayPal payout batch statuses.
var PayoutStatuses = gateway.StatusTable{
	"SUCCESS":    gateway.StatusSettled,
	"PENDING":    gateway.StatusPending,
	"PROCESSING": gateway.StatusPending,
	"DENIED":     gateway.StatusFailed,
	"CANCELED":   gateway.StatusFailed,
}

// PayPal holds an authorization for 29 days; the honor period is three.
const defaultAuthWindow = 29 * 24 * time.Hour

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// RequestsPerSecond is the client-side rate limit towards PayPal.
	RequestsPerSecond float64
	Timeout           time.Duration
	AuthWindow        time.Duration
}

type Gateway struct {
	client     *resty.Client
	limiter    *rate.Limiter
	config     Config
	authWindow time.Duration

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func New(cfg Config) *Gateway {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	authWindow := cfg.AuthWindow
	if authWindow == 0 {
		authWindow = defaultAuthWindow
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Gateway{
		client:     client,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		config:     cfg,
		authWindow: authWindow,
	}
}

func (g *Gateway) Name() models.Provider {
	return models.ProviderPayPal
}

type money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type authorization struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	ExpirationTime string `json:"expiration_time"`
}

type capture struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	InvoiceID string `json:"invoice_id"`
}

type order struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Authorizations []authorization `json:"authorizations"`
			Captures       []capture       `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Details []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type payoutResponse struct {
	BatchHeader struct {
		PayoutBatchID string `json:"payout_batch_id"`
		BatchStatus   string `json:"batch_status"`
	} `json:"batch_header"`
}

// formatAmount renders minor units as PayPal's decimal string.
func formatAmount(amount int64, currency models.Currency) string {
	exp := currency.Exponent()
	return decimal.New(amount, -exp).StringFixed(exp)
}

func (g *Gateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry) {
		return g.accessToken, nil
	}

	var token tokenResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBasicAuth(g.config.ClientID, g.config.ClientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&token).
		Post("/v1/oauth2/token")
	if err != nil {
		return "", g.transportError("token", err)
	}
	if resp.IsError() {
		return "", g.statusError("token", resp)
	}

	g.accessToken = token.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return g.accessToken, nil
}

// request returns an authenticated, rate limited request.
func (g *Gateway) request(ctx context.Context, operation string) (*resty.Request, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, g.transportError(operation, err)
	}
	token, err := g.token(ctx)
	if err != nil {
		return nil, err
	}
	return g.client.R().SetContext(ctx).SetAuthToken(token).SetError(&apiError{}), nil
}

// CreateAuthorization authorizes an order the payer already approved.
// PaymentMethodRef is the PayPal order id.
func (g *Gateway) CreateAuthorization(ctx context.Context, req gateway.AuthorizationRequest) (*gateway.AuthorizationResult, error) {
	r, err := g.request(ctx, "authorize")
	if err != nil {
		return nil, err
	}

	var result order
	resp, err := r.
		SetHeader("PayPal-Request-Id", req.IdempotencyKey).
		SetBody(map[string]interface{}{}).
		SetResult(&result).
		Post(fmt.Sprintf("/v2/checkout/orders/%s/authorize", req.PaymentMethodRef))
	if err != nil {
		return nil, g.transportError("authorize", err)
	}
	if resp.IsError() {
		return nil, g.statusError("authorize", resp)
	}

	return g.authorizationFromOrder(&result)
}

func (g *Gateway) LookupAuthorization(ctx context.Context, req gateway.AuthorizationRequest) (*gateway.AuthorizationResult, error) {
	r, err := g.request(ctx, "lookup_authorization")
	if err != nil {
		return nil, err
	}

	var result order
	resp, err := r.SetResult(&result).Get(fmt.Sprintf("/v2/checkout/orders/%s", req.PaymentMethodRef))
	if err != nil {
		return nil, g.transportError("lookup_authorization", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, gateway.ErrNotFoundAtProvider
	}
	if resp.IsError() {
		return nil, g.statusError("lookup_authorization", resp)
	}

	auth, err := g.authorizationFromOrder(&result)
	if err != nil {
		return nil, gateway.ErrNotFoundAtProvider
	}
	return auth, nil
}

func (g *Gateway) authorizationFromOrder(o *order) (*gateway.AuthorizationResult, error) {
	for _, unit := range o.PurchaseUnits {
		for _, auth := range unit.Payments.Authorizations {
			result := &gateway.AuthorizationResult{
				ProviderRef: auth.ID,
				Status:      AuthorizationStatuses.Translate(auth.Status),
				ExpiresAt:   time.Now().Add(g.authWindow),
			}
			if expires, err := time.Parse(time.RFC3339, auth.ExpirationTime); err == nil {
				result.ExpiresAt = expires
			}
			return result, nil
		}
	}
	return nil, &models.ProviderDeclineError{Provider: models.ProviderPayPal, Operation: "authorize", Code: o.Status, Reason: "order has no authorization"}
}

func (g *Gateway) CreateCapture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	r, err := g.request(ctx, "capture")
	if err != nil {
		return nil, err
	}

	var result capture
	resp, err := r.
		SetHeader("PayPal-Request-Id", req.IdempotencyKey).
		SetBody(map[string]interface{}{
			"amount":        money{CurrencyCode: string(req.Currency), Value: formatAmount(req.Amount, req.Currency)},
			"invoice_id":    req.IdempotencyKey,
			"final_capture": false,
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/v2/payments/authorizations/%s/capture", req.ProviderAuthRef))
	if err != nil {
		return nil, g.transportError("capture", err)
	}
	if resp.IsError() {
		return nil, g.statusError("capture", resp)
	}

	return &gateway.CaptureResult{ProviderRef: result.ID, Status: CaptureStatuses.Translate(result.Status)}, nil
}

// LookupCapture scans the order's captures for the invoice id the capture
// was created with.
func (g *Gateway) LookupCapture(ctx context.Context, req gateway.CaptureRequest) (*gateway.CaptureResult, error) {
	r, err := g.request(ctx, "lookup_capture")
	if err != nil {
		return nil, err
	}

	var result order
	resp, err := r.SetResult(&result).Get(fmt.Sprintf("/v2/checkout/orders/%s", req.PaymentMethodRef))
	if err != nil {
		return nil, g.transportError("lookup_capture", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, gateway.ErrNotFoundAtProvider
	}
	if resp.IsError() {
		return nil, g.statusError("lookup_capture", resp)
	}

	for _, unit := range result.PurchaseUnits {
		for _, c := range unit.Payments.Captures {
			if c.InvoiceID == req.IdempotencyKey {
				return &gateway.CaptureResult{ProviderRef: c.ID, Status: CaptureStatuses.Translate(c.Status)}, nil
			}
		}
	}
	return nil, gateway.ErrNotFoundAtProvider
}

func (g *Gateway) CreateSettlement(ctx context.Context, req gateway.SettlementRequest) (*gateway.SettlementResult, error) {
	r, err := g.request(ctx, "settle")
	if err != nil {
		return nil, err
	}

	var result payoutResponse
	resp, err := r.
		SetBody(map[string]interface{}{
			"sender_batch_header": map[string]string{
				"sender_batch_id": req.IdempotencyKey,
				"email_subject":   "Settlement",
			},
			"items": []map[string]interface{}{{
				"recipient_type": "PAYPAL_ID",
				"receiver":       req.Destination,
				"amount":         map[string]string{"currency": string(req.Currency), "value": formatAmount(req.NetAmount, req.Currency)},
				"sender_item_id": req.ProviderCaptureRef,
			}},
		}).
		SetResult(&result).
		Post("/v1/payments/payouts")
	if err != nil {
		return nil, g.transportError("settle", err)
	}
	if resp.IsError() {
		return nil, g.statusError("settle", resp)
	}

	return &gateway.SettlementResult{
		ProviderRef:    result.BatchHeader.PayoutBatchID,
		Status:         PayoutStatuses.Translate(result.BatchHeader.BatchStatus),
		NetAmount:      req.NetAmount,
		BankAccountRef: req.Destination,
	}, nil
}

func (g *Gateway) VoidAuthorization(ctx context.Context, providerAuthRef string) error {
	r, err := g.request(ctx, "void")
	if err != nil {
		return err
	}

	resp, err := r.Post(fmt.Sprintf("/v2/payments/authorizations/%s/void", providerAuthRef))
	if err != nil {
		return g.transportError("void", err)
	}
	if resp.IsError() {
		return g.statusError("void", resp)
	}
	return nil
}

func (g *Gateway) transportError(operation string, err error) error {
	return &models.ProviderError{Provider: models.ProviderPayPal, Operation: operation, Err: err}
}

// statusError classifies an HTTP error response: 408, 429 and 5xx are
// transient, every other 4xx is a definitive decline.
func (g *Gateway) statusError(operation string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
		return &models.ProviderError{
			Provider:   models.ProviderPayPal,
			Operation:  operation,
			StatusCode: code,
			Err:        errors.New(resp.Status()),
		}
	}

	decline := &models.ProviderDeclineError{Provider: models.ProviderPayPal, Operation: operation, Code: fmt.Sprint(code), Reason: resp.Status()}
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr != nil {
		decline.Code = apiErr.Name
		decline.Reason = apiErr.Message
		if len(apiErr.Details) > 0 {
			decline.Code = apiErr.Details[0].Issue
			decline.Reason = apiErr.Details[0].Description
		}
	}
	logrus.Warnf("paypal %s declined: %s", operation, decline.Error())
	return decline
}
