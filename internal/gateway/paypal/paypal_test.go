package paypal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway/paypal"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayPal struct {
	tokenCalls     atomic.Int32
	mu             sync.Mutex
	lastRequestID  string
	lastCaptureVal string
	authorizeCode  int
}

func (f *fakePayPal) seen() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRequestID, f.lastCaptureVal
}

func (f *fakePayPal) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/authorize", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastRequestID = r.Header.Get("PayPal-Request-Id")
		f.mu.Unlock()
		if f.authorizeCode != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.authorizeCode)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"name":    "UNPROCESSABLE_ENTITY",
				"message": "The requested action could not be performed",
				"details": []map[string]string{{"issue": "INSTRUMENT_DECLINED", "description": "The instrument was declined"}},
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ORDER-1","status":"COMPLETED","purchase_units":[{"payments":{"authorizations":[{"id":"AUTH-1","status":"CREATED","expiration_time":"2030-01-01T00:00:00Z"}]}}]}`))
	})
	mux.HandleFunc("/v2/payments/authorizations/AUTH-1/capture", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.lastCaptureVal = body["amount"].(map[string]interface{})["value"].(string)
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"CAP-1","status":"COMPLETED"}`))
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ORDER-1","purchase_units":[{"payments":{"authorizations":[{"id":"AUTH-1","status":"PARTIALLY_CAPTURED"}],"captures":[{"id":"CAP-1","status":"COMPLETED","invoice_id":"cap_key"}]}}]}`))
	})
	mux.HandleFunc("/v2/payments/authorizations/AUTH-1/void", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return mux
}

func newGateway(t *testing.T, fake *fakePayPal) *paypal.Gateway {
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return paypal.New(paypal.Config{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret", RequestsPerSecond: 1000})
}

func TestPayPal_AuthorizeAndCapture(t *testing.T) {
	fake := &fakePayPal{}
	g := newGateway(t, fake)
	ctx := context.Background()

	auth, err := g.CreateAuthorization(ctx, gateway.AuthorizationRequest{Amount: 15000, Currency: models.CurrencyUSD, PaymentMethodRef: "ORDER-1", IdempotencyKey: "auth_key"})
	require.NoError(t, err)
	assert.Equal(t, "AUTH-1", auth.ProviderRef)
	assert.Equal(t, gateway.StatusAuthorized, auth.Status)
	assert.Equal(t, 2030, auth.ExpiresAt.Year())
	requestID, _ := fake.seen()
	assert.Equal(t, "auth_key", requestID)

	captured, err := g.CreateCapture(ctx, gateway.CaptureRequest{ProviderAuthRef: "AUTH-1", Amount: 15000, Currency: models.CurrencyUSD, IdempotencyKey: "cap_key"})
	require.NoError(t, err)
	assert.Equal(t, gateway.StatusCaptured, captured.Status)
	_, captureValue := fake.seen()
	assert.Equal(t, "150.00", captureValue)

	assert.Equal(t, int32(1), fake.tokenCalls.Load())
}

func TestPayPal_DeclineIsDefinitive(t *testing.T) {
	fake := &fakePayPal{authorizeCode: http.StatusUnprocessableEntity}
	g := newGateway(t, fake)

	_, err := g.CreateAuthorization(context.Background(), gateway.AuthorizationRequest{Amount: 100, Currency: models.CurrencyUSD, PaymentMethodRef: "ORDER-1", IdempotencyKey: "k"})

	var decline *models.ProviderDeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "INSTRUMENT_DECLINED", decline.Code)
	assert.False(t, retry.IsRetryable(err))
}

func TestPayPal_ServerErrorIsTransient(t *testing.T) {
	g := newGateway(t, &fakePayPal{})

	err := g.VoidAuthorization(context.Background(), "AUTH-1")

	var providerErr *models.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusServiceUnavailable, providerErr.StatusCode)
	assert.True(t, retry.IsRetryable(err))
}

func TestPayPal_LookupCaptureByInvoiceID(t *testing.T) {
	g := newGateway(t, &fakePayPal{})
	ctx := context.Background()

	found, err := g.LookupCapture(ctx, gateway.CaptureRequest{PaymentMethodRef: "ORDER-1", IdempotencyKey: "cap_key"})
	require.NoError(t, err)
	assert.Equal(t, "CAP-1", found.ProviderRef)

	_, err = g.LookupCapture(ctx, gateway.CaptureRequest{PaymentMethodRef: "ORDER-1", IdempotencyKey: "other"})
	assert.ErrorIs(t, err, gateway.ErrNotFoundAtProvider)
}

func TestPayPal_StatusTables(t *testing.T) {
	assert.Equal(t, gateway.StatusAuthorized, paypal.AuthorizationStatuses.Translate("PARTIALLY_CAPTURED"))
	assert.Equal(t, gateway.StatusExpired, paypal.AuthorizationStatuses.Translate("EXPIRED"))
	assert.Equal(t, gateway.StatusFailed, paypal.CaptureStatuses.Translate("DECLINED"))
	assert.Equal(t, gateway.StatusSettled, paypal.PayoutStatuses.Translate("SUCCESS"))
}
