package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway/sandbox"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models/dto"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/repository/memory"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/risk"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/service"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc       *service.PaymentService
	store     *memory.Store
	gw        *sandbox.Gateway
	publisher *mocks.MockPublisher
	assessor  *mocks.MockRiskAssessor
	clock     *testClock
	delays    []time.Duration
}

func defaultPolicy() retry.Policy {
	return retry.Policy{MaxRetries: 3, BaseDelay: time.Second, ExponentialBackoff: true}
}

func newFixture(t *testing.T, provider models.Provider, policy retry.Policy) *fixture {
	f := &fixture{
		store:     memory.New(),
		publisher: mocks.NewMockPublisher(t),
		assessor:  mocks.NewMockRiskAssessor(t),
		clock:     &testClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
	}
	f.gw = sandbox.New(time.Hour).As(provider).WithClock(f.clock.Now)

	f.publisher.EXPECT().
		Publish(mock.Anything, models.AuditTopic, mock.AnythingOfType("models.AuditEvent")).
		Return(nil).
		Maybe()

	dispatcher := retry.NewDispatcher("test").WithSleep(func(ctx context.Context, d time.Duration) error {
		f.delays = append(f.delays, d)
		return nil
	})

	f.svc = service.NewPaymentService(f.store, f.publisher, f.assessor, gateway.NewRegistry(f.gw), service.Config{
		RetryPolicy:        policy,
		Risk:               risk.DefaultConfig(),
		SettlementAccounts: map[models.Provider]string{provider: "ba_default"},
	}, service.WithClock(f.clock.Now), service.WithDispatcher(dispatcher))
	return f
}

func (f *fixture) approveRisk() *mocks.MockRiskAssessor_Assess_Call {
	return f.assessor.EXPECT().
		Assess(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.RiskAssessment{Score: 0.1, Level: models.RiskLow, Recommendation: models.RecommendApprove})
}

func authorizeRequest(provider models.Provider, amount int64) dto.AuthorizeRequest {
	return dto.AuthorizeRequest{
		IdempotencyKey:   "order-1",
		Amount:           amount,
		Currency:         "USD",
		Provider:         string(provider),
		PaymentMethodRef: "pm_card_visa",
		UserID:           "user-1",
	}
}

func (f *fixture) authorize(t *testing.T, amount int64) *service.AuthorizeResult {
	t.Helper()
	f.approveRisk().Once()
	result, err := f.svc.Authorize(context.Background(), authorizeRequest(f.gw.Name(), amount))
	require.NoError(t, err)
	require.Equal(t, models.StatusAuthorized, result.Intent.Status)
	return result
}

func TestAuthorize_Approved(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.approveRisk().Once()

	result, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, result.Intent.Status)
	assert.False(t, result.ManualReview)
	require.NotNil(t, result.Authorization)
	assert.Equal(t, models.AuthorizationAuthorized, result.Authorization.Status)
	assert.Equal(t, int64(5000), result.Authorization.Amount)
	assert.Equal(t, f.clock.Now().Add(time.Hour), result.Authorization.ExpiresAt)
	assert.Equal(t, 1, f.gw.Calls(sandbox.OpAuthorize))
	assert.Equal(t, 1, result.Intent.ProviderAttempts)

	stored, err := f.store.LoadIntent(context.Background(), result.Intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, stored.Status)
	assert.Equal(t, stored.Version, result.Intent.Version)
}

func TestAuthorize_ReplayReturnsStoredResult(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	first := f.authorize(t, 5000)

	second, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	require.NoError(t, err)
	assert.Equal(t, first.Intent.ID, second.Intent.ID)
	assert.Equal(t, first.Authorization.ID, second.Authorization.ID)
	assert.Nil(t, second.Risk)
	assert.Equal(t, 1, f.gw.Calls(sandbox.OpAuthorize))
}

func TestAuthorize_IdempotencyKeyReusedForAnotherPayment(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.authorize(t, 5000)

	_, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 9000))

	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, 1, f.gw.Calls(sandbox.OpAuthorize))
}

func TestAuthorize_InvalidRequest(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	req := authorizeRequest(models.ProviderSandbox, 0)

	_, err := f.svc.Authorize(context.Background(), req)

	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Amount", validation.Field)
	f.assessor.AssertNotCalled(t, "Assess", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthorize_RiskDecline(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.assessor.EXPECT().
		Assess(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.RiskAssessment{Score: 0.95, Level: models.RiskCritical, Recommendation: models.RecommendDecline}).
		Once()

	result, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	var decline *models.RiskDeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, models.RiskCritical, decline.Level)
	assert.Equal(t, models.StatusFailed, result.Intent.Status)
	assert.Equal(t, 0, f.gw.Calls(sandbox.OpAuthorize))

	replay, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, replay.Intent.Status)
	assert.Equal(t, 0, f.gw.Calls(sandbox.OpAuthorize))
}

func TestAuthorize_LargeAmountWithVelocityGoesToManualReview(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	ctx := context.Background()

	velocity := risk.NewMemoryVelocity()
	for i := 0; i < 10; i++ {
		require.NoError(t, velocity.Record(ctx, "user-1", f.clock.Now().Add(-time.Duration(i+1)*time.Hour)))
	}
	engine := risk.NewEngine(risk.WithClock(f.clock.Now), risk.WithVelocity(velocity))
	cfg := risk.Config{RiskThreshold: 0.4, MaxDailyAmount: 50000, MaxDailyTransactions: 10}

	svc := service.NewPaymentService(f.store, f.publisher, engine, gateway.NewRegistry(f.gw),
		service.Config{RetryPolicy: defaultPolicy(), Risk: cfg},
		service.WithClock(f.clock.Now))

	result, err := svc.Authorize(ctx, authorizeRequest(models.ProviderSandbox, 6000000))

	require.NoError(t, err)
	require.NotNil(t, result.Risk)
	assert.InDelta(t, 0.465, result.Risk.Score, 1e-9)
	assert.Equal(t, models.RecommendReview, result.Risk.Recommendation)
	assert.True(t, result.ManualReview)
	assert.True(t, result.Intent.ManualReview)
	assert.Equal(t, models.StatusAuthorized, result.Intent.Status)
}

func TestAuthorize_TransientFailuresThenSuccess(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.gw.FailNext(sandbox.OpAuthorize, 2)
	f.approveRisk().Once()

	result, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, result.Intent.Status)
	assert.Equal(t, 3, result.Intent.ProviderAttempts)
	assert.Equal(t, 3, f.gw.Calls(sandbox.OpAuthorize))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, f.delays)
}

func TestAuthorize_LostResponseIsReQueried(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.gw.TimeoutAfterCommitNext(sandbox.OpAuthorize, 1)
	f.approveRisk().Once()

	result, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, result.Intent.Status)
	// The retry found the committed hold instead of creating a second one.
	assert.Equal(t, 1, f.gw.Calls(sandbox.OpAuthorize))
}

func TestAuthorize_ExhaustionFailsIntent(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.gw.FailNext(sandbox.OpAuthorize, 10)
	f.approveRisk().Once()

	result, err := f.svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	var exhausted *retry.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, exhausted.Attempts)
	assert.Equal(t, models.StatusFailed, result.Intent.Status)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, f.delays)

	auth, err := f.store.GetAuthorizationByIntent(context.Background(), result.Intent.ID)
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, models.AuthorizationFailed, auth.Status)
}

func TestAuthorize_ProviderDeclineIsNotRetried(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.approveRisk().Once()
	req := authorizeRequest(models.ProviderSandbox, 5000)
	req.PaymentMethodRef = sandbox.MethodDecline

	result, err := f.svc.Authorize(context.Background(), req)

	var decline *models.ProviderDeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "card_declined", decline.Code)
	assert.Equal(t, models.StatusFailed, result.Intent.Status)
	assert.Equal(t, 1, f.gw.Calls(sandbox.OpAuthorize))
	assert.Empty(t, f.delays)
}

func TestAuthorize_RequiresActionCompletesOnReplay(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.approveRisk().Once()
	req := authorizeRequest(models.ProviderSandbox, 5000)
	req.PaymentMethodRef = sandbox.MethodRequiresAction

	pending, err := f.svc.Authorize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNone, pending.Intent.Status)
	require.NotNil(t, pending.Authorization)
	assert.Equal(t, models.AuthorizationRequiresAction, pending.Authorization.Status)

	require.NoError(t, f.gw.CompleteAction(pending.Authorization.ProviderRef))

	done, err := f.svc.Authorize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, done.Intent.Status)
	assert.Equal(t, pending.Authorization.ID, done.Authorization.ID)
	assert.Equal(t, models.AuthorizationAuthorized, done.Authorization.Status)
	assert.Equal(t, 1, f.gw.Calls(sandbox.OpAuthorize))
}

func TestAuthorize_AuditFailureDoesNotRollBack(t *testing.T) {
	store := memory.New()
	publisher := mocks.NewMockPublisher(t)
	assessor := mocks.NewMockRiskAssessor(t)
	gw := sandbox.New(time.Hour)
	svc := service.NewPaymentService(store, publisher, assessor, gateway.NewRegistry(gw), service.Config{RetryPolicy: defaultPolicy()})

	assessor.EXPECT().
		Assess(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.RiskAssessment{Recommendation: models.RecommendApprove}).
		Once()
	publisher.EXPECT().
		Publish(mock.Anything, models.AuditTopic, mock.AnythingOfType("models.AuditEvent")).
		Return(errors.New("kafka publish error"))

	result, err := svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	require.NoError(t, err)
	stored, err := store.LoadIntent(context.Background(), result.Intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, stored.Status)
}

func TestAuthorize_StalledAuditPublishIsBounded(t *testing.T) {
	store := memory.New()
	publisher := mocks.NewMockPublisher(t)
	assessor := mocks.NewMockRiskAssessor(t)
	gw := sandbox.New(time.Hour)
	svc := service.NewPaymentService(store, publisher, assessor, gateway.NewRegistry(gw), service.Config{
		RetryPolicy:  defaultPolicy(),
		AuditTimeout: 20 * time.Millisecond,
	})

	assessor.EXPECT().
		Assess(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.RiskAssessment{Recommendation: models.RecommendApprove}).
		Once()

	var mu sync.Mutex
	unbounded := 0
	publisher.EXPECT().
		Publish(mock.Anything, models.AuditTopic, mock.AnythingOfType("models.AuditEvent")).
		RunAndReturn(func(ctx context.Context, topic string, message interface{}) error {
			if _, ok := ctx.Deadline(); !ok {
				mu.Lock()
				unbounded++
				mu.Unlock()
				return errors.New("publish without deadline")
			}
			<-ctx.Done()
			return ctx.Err()
		})

	start := time.Now()
	result, err := svc.Authorize(context.Background(), authorizeRequest(models.ProviderSandbox, 5000))

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Zero(t, unbounded)

	stored, err := store.LoadIntent(context.Background(), result.Intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, stored.Status)
}

func TestAuthorize_RiskTracksEmailWhenNoUserID(t *testing.T) {
	f := newFixture(t, models.ProviderSandbox, defaultPolicy())
	f.assessor.EXPECT().
		Assess(mock.Anything, mock.Anything, mock.MatchedBy(func(rc risk.RequestContext) bool {
			return rc.UserID == "ana@example.com"
		}), mock.Anything).
		Return(models.RiskAssessment{Score: 0.1, Level: models.RiskLow, Recommendation: models.RecommendApprove}).
		Once()

	req := authorizeRequest(models.ProviderSandbox, 5000)
	req.UserID = ""
	req.CustomerEmail = " Ana@Example.com "

	result, err := f.svc.Authorize(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, models.StatusAuthorized, result.Intent.Status)
}

func TestAuthorize_StaleVersionIsConflict(t *testing.T) {
	mockRepo := mocks.NewMockPaymentRepo(t)
	mockPublisher := mocks.NewMockPublisher(t)
	mockAssessor := mocks.NewMockRiskAssessor(t)
	gw := sandbox.New(time.Hour)
	paymentService := service.NewPaymentService(mockRepo, mockPublisher, mockAssessor, gateway.NewRegistry(gw), service.Config{RetryPolicy: defaultPolicy()})

	ctx := context.Background()
	existing := &models.PaymentIntent{
		ID:               "intent-123",
		IdempotencyKey:   "order-1",
		Amount:           5000,
		Currency:         models.CurrencyUSD,
		Provider:         models.ProviderSandbox,
		PaymentMethodRef: "pm_card_visa",
		Status:           models.StatusNone,
		Version:          3,
	}

	mockRepo.EXPECT().
		FindIntentByIdempotencyKey(ctx, "order-1").
		Return(existing, nil).
		Once()
	mockRepo.EXPECT().
		LoadIntent(ctx, "intent-123").
		Return(existing, nil).
		Once()
	mockAssessor.EXPECT().
		Assess(ctx, mock.AnythingOfType("risk.Request"), mock.AnythingOfType("risk.RequestContext"), mock.AnythingOfType("risk.Config")).
		Return(models.RiskAssessment{Recommendation: models.RecommendApprove}).
		Once()
	mockPublisher.EXPECT().
		Publish(mock.Anything, models.AuditTopic, mock.AnythingOfType("models.AuditEvent")).
		Return(nil).
		Once()
	mockRepo.EXPECT().
		SaveIntent(ctx, mock.AnythingOfType("*models.PaymentIntent"), int64(3)).
		Return(&models.ConflictError{IntentID: "intent-123", Reason: "version 3 is stale"}).
		Once()

	_, err := paymentService.Authorize(ctx, authorizeRequest(models.ProviderSandbox, 5000))

	assert.True(t, models.IsConflict(err))
	assert.Equal(t, 0, gw.Calls(sandbox.OpAuthorize))
	mockRepo.AssertNotCalled(t, "CreateAuthorization", mock.Anything, mock.Anything)
}

func TestGetIntent_NotFound(t *testing.T) {
	mockRepo := mocks.NewMockPaymentRepo(t)
	paymentService := service.NewPaymentService(mockRepo, mocks.NewMockPublisher(t), mocks.NewMockRiskAssessor(t), gateway.NewRegistry(), service.Config{})

	ctx := context.Background()
	mockRepo.EXPECT().
		LoadIntent(ctx, "missing").
		Return(nil, nil).
		Once()

	_, err := paymentService.GetIntent(ctx, "missing")

	assert.True(t, models.IsNotFound(err))
}

func TestGetIntent_RepoError(t *testing.T) {
	mockRepo := mocks.NewMockPaymentRepo(t)
	paymentService := service.NewPaymentService(mockRepo, mocks.NewMockPublisher(t), mocks.NewMockRiskAssessor(t), gateway.NewRegistry(), service.Config{})

	ctx := context.Background()
	expectedError := errors.New("database error")
	mockRepo.EXPECT().
		LoadIntent(ctx, "intent-123").
		Return(nil, expectedError).
		Once()

	_, err := paymentService.GetIntent(ctx, "intent-123")

	assert.ErrorIs(t, err, expectedError)
}
