package sandbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway/sandbox"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authReq(key string) gateway.AuthorizationRequest {
	return gateway.AuthorizationRequest{Amount: 1000, Currency: models.CurrencyUSD, PaymentMethodRef: "pm_ok", IdempotencyKey: key}
}

func TestSandbox_AuthorizeIsIdempotent(t *testing.T) {
	g := sandbox.New(time.Hour)
	ctx := context.Background()

	first, err := g.CreateAuthorization(ctx, authReq("k1"))
	require.NoError(t, err)
	second, err := g.CreateAuthorization(ctx, authReq("k1"))
	require.NoError(t, err)

	assert.Equal(t, first.ProviderRef, second.ProviderRef)
	assert.Equal(t, gateway.StatusAuthorized, first.Status)
}

func TestSandbox_TimeoutAfterCommitIsVisibleToLookup(t *testing.T) {
	g := sandbox.New(time.Hour)
	ctx := context.Background()
	g.TimeoutAfterCommitNext(sandbox.OpAuthorize, 1)

	_, err := g.CreateAuthorization(ctx, authReq("k2"))
	var providerErr *models.ProviderError
	require.ErrorAs(t, err, &providerErr)

	found, err := g.LookupAuthorization(ctx, authReq("k2"))
	require.NoError(t, err)
	assert.Equal(t, gateway.StatusAuthorized, found.Status)
}

func TestSandbox_LookupUnknown(t *testing.T) {
	g := sandbox.New(time.Hour)

	_, err := g.LookupAuthorization(context.Background(), authReq("missing"))

	assert.ErrorIs(t, err, gateway.ErrNotFoundAtProvider)
}

func TestSandbox_CaptureBeyondHoldDeclined(t *testing.T) {
	g := sandbox.New(time.Hour)
	ctx := context.Background()
	auth, err := g.CreateAuthorization(ctx, authReq("k3"))
	require.NoError(t, err)

	_, err = g.CreateCapture(ctx, gateway.CaptureRequest{ProviderAuthRef: auth.ProviderRef, Amount: 1001, IdempotencyKey: "c1"})

	var decline *models.ProviderDeclineError
	assert.ErrorAs(t, err, &decline)
}

func TestSandbox_VoidReleasesHold(t *testing.T) {
	g := sandbox.New(time.Hour)
	ctx := context.Background()
	auth, err := g.CreateAuthorization(ctx, authReq("k4"))
	require.NoError(t, err)

	require.NoError(t, g.VoidAuthorization(ctx, auth.ProviderRef))

	status, ok := g.HoldStatus(auth.ProviderRef)
	assert.True(t, ok)
	assert.Equal(t, gateway.StatusVoided, status)
}
