package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/metrics"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models/dto"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/risk"
)

// AuthorizationKey is the provider idempotency key of an intent's hold.
func AuthorizationKey(intentID string) string {
	return "auth_" + intentID
}

// Authorize reserves funds for a payment. The intent is resolved by
// idempotency key, so a replay of a completed call returns the stored result
// without reaching the provider. Risk runs first: DECLINE fails the intent,
// REVIEW and CHALLENGE authorize with ManualReview set.
func (s *PaymentService) Authorize(ctx context.Context, req dto.AuthorizeRequest) (*AuthorizeResult, error) {
	req.Sanitize()
	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	gw, err := s.Gateways.Get(models.Provider(req.Provider))
	if err != nil {
		return nil, err
	}

	intent, err := s.resolveIntent(ctx, &req)
	if err != nil {
		return nil, err
	}

	var result *AuthorizeResult
	err = s.withIntentLock(intent.ID, func() error {
		current, err := s.loadIntent(ctx, intent.ID)
		if err != nil {
			return err
		}
		result, err = s.authorizeLocked(ctx, gw, current, &req)
		return err
	})
	return result, err
}

func (s *PaymentService) resolveIntent(ctx context.Context, req *dto.AuthorizeRequest) (*models.PaymentIntent, error) {
	intent, err := s.Repo.FindIntentByIdempotencyKey(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("error finding payment intent: %w", err)
	}
	if intent != nil {
		return intent, checkSameRequest(intent, req)
	}

	intent = req.ToEntity()
	intent.ID = newID()
	if err := s.Repo.CreateIntent(ctx, intent); err != nil {
		if !models.IsConflict(err) {
			return nil, fmt.Errorf("error creating payment intent: %w", err)
		}
		// Lost a race with a concurrent first call for the same key.
		intent, err = s.Repo.FindIntentByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil || intent == nil {
			return nil, &models.ConflictError{IntentID: req.IdempotencyKey, Reason: "concurrent authorize for the same idempotency key"}
		}
		return intent, checkSameRequest(intent, req)
	}
	return intent, nil
}

func checkSameRequest(intent *models.PaymentIntent, req *dto.AuthorizeRequest) error {
	if intent.Amount != req.Amount || string(intent.Currency) != req.Currency || string(intent.Provider) != req.Provider {
		return &models.ValidationError{Field: "IdempotencyKey", Reason: "already used for a different payment"}
	}
	return nil
}

func (s *PaymentService) authorizeLocked(ctx context.Context, gw gateway.Gateway, intent *models.PaymentIntent, req *dto.AuthorizeRequest) (*AuthorizeResult, error) {
	if intent.Status != models.StatusNone {
		return s.storedAuthorizeResult(ctx, intent)
	}

	result := &AuthorizeResult{Intent: intent}

	// A requires_action replay keeps the assessment made on the first call.
	if intent.RiskRecommendation == "" {
		assessment := s.Risk.Assess(ctx, riskRequest(intent, req), riskContext(req), s.config.Risk)
		s.recordRisk(ctx, assessment)
		result.Risk = &assessment

		intent.RiskScore = assessment.Score
		intent.RiskRecommendation = assessment.Recommendation
		intent.ManualReview = assessment.Recommendation.RequiresReview()

		if assessment.Recommendation == models.RecommendDecline {
			return result, s.declineOnRisk(ctx, intent, assessment)
		}
	}
	result.ManualReview = intent.ManualReview

	authReq := gateway.AuthorizationRequest{
		Amount:           intent.Amount,
		Currency:         intent.Currency,
		PaymentMethodRef: intent.PaymentMethodRef,
		IdempotencyKey:   AuthorizationKey(intent.ID),
	}

	// Mark the dispatch before calling out so a crash leaves a trace that
	// forces a re-query next time.
	priorAttempts := intent.ProviderAttempts
	intent.ProviderAttempts++
	if err := s.save(ctx, intent); err != nil {
		return nil, err
	}

	res, err := dispatch(ctx, s, intent.Provider, models.ActionAuthorize, func(ctx context.Context, attempt int) (*gateway.AuthorizationResult, error) {
		if attempt > 0 || priorAttempts > 0 {
			found, err := gw.LookupAuthorization(ctx, authReq)
			if err == nil {
				return found, nil
			}
			if !errors.Is(err, gateway.ErrNotFoundAtProvider) {
				return nil, err
			}
		}
		return gw.CreateAuthorization(ctx, authReq)
	})
	if res.Attempts > 1 {
		intent.ProviderAttempts += res.Attempts - 1
	}
	if err != nil {
		return result, s.failAuthorization(ctx, intent, err)
	}

	auth, err := s.upsertAuthorization(ctx, intent, res.Value)
	if err != nil {
		return nil, err
	}
	result.Authorization = auth

	switch auth.Status {
	case models.AuthorizationRequiresAction:
		if err := s.save(ctx, intent); err != nil {
			return nil, err
		}
		s.recordTransition(ctx, intent, models.ActionAuthorize, models.OutcomePending, map[string]interface{}{
			"authorization_id": auth.ID,
			"attempts":         res.Attempts,
		})
		return result, nil

	case models.AuthorizationAuthorized:
		if err := transition(intent, triggerAuthorize); err != nil {
			return nil, err
		}
		if err := s.save(ctx, intent); err != nil {
			return nil, err
		}
		metrics.PaymentAmounts.WithLabelValues(string(intent.Currency)).Observe(float64(intent.Amount))
		s.recordTransition(ctx, intent, models.ActionAuthorize, models.OutcomeSuccess, map[string]interface{}{
			"authorization_id": auth.ID,
			"attempts":         res.Attempts,
			"manual_review":    intent.ManualReview,
			"risk_score":       intent.RiskScore,
		})
		return result, nil

	default:
		decline := &models.ProviderDeclineError{Provider: intent.Provider, Operation: models.ActionAuthorize, Code: string(res.Value.Status), Reason: res.Value.FailureReason}
		return result, s.failAuthorization(ctx, intent, decline)
	}
}

// upsertAuthorization stores the provider's answer as the intent's single
// authorization record.
func (s *PaymentService) upsertAuthorization(ctx context.Context, intent *models.PaymentIntent, res *gateway.AuthorizationResult) (*models.AuthorizationRecord, error) {
	status := models.AuthorizationFailed
	switch res.Status {
	case gateway.StatusAuthorized:
		status = models.AuthorizationAuthorized
	case gateway.StatusRequiresAction:
		status = models.AuthorizationRequiresAction
	}

	existing, err := s.Repo.GetAuthorizationByIntent(ctx, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading authorization: %w", err)
	}
	if existing != nil {
		existing.Status = status
		existing.ProviderRef = res.ProviderRef
		existing.ExpiresAt = res.ExpiresAt
		existing.FailureReason = res.FailureReason
		if err := s.Repo.UpdateAuthorization(ctx, existing); err != nil {
			return nil, fmt.Errorf("error updating authorization: %w", err)
		}
		return existing, nil
	}

	record := &models.AuthorizationRecord{
		ID:            newID(),
		IntentID:      intent.ID,
		Amount:        intent.Amount,
		Currency:      intent.Currency,
		Provider:      intent.Provider,
		Status:        status,
		ExpiresAt:     res.ExpiresAt,
		ProviderRef:   res.ProviderRef,
		FailureReason: res.FailureReason,
	}
	if err := s.Repo.CreateAuthorization(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating authorization: %w", err)
	}
	return record, nil
}

func (s *PaymentService) declineOnRisk(ctx context.Context, intent *models.PaymentIntent, assessment models.RiskAssessment) error {
	if err := transition(intent, triggerFail); err != nil {
		return err
	}
	intent.FailureReason = "declined by risk assessment"
	if err := s.save(ctx, intent); err != nil {
		return err
	}
	s.recordTransition(ctx, intent, models.ActionAuthorize, models.OutcomeFailure, map[string]interface{}{
		"risk_score": assessment.Score,
		"risk_level": assessment.Level,
	})
	return &models.RiskDeclineError{PaymentID: intent.ID, Score: assessment.Score, Level: assessment.Level}
}

// failAuthorization moves the intent to FAILED, keeps a failed authorization
// record and returns cause.
func (s *PaymentService) failAuthorization(ctx context.Context, intent *models.PaymentIntent, cause error) error {
	if err := transition(intent, triggerFail); err != nil {
		return err
	}
	intent.FailureReason = cause.Error()

	existing, err := s.Repo.GetAuthorizationByIntent(ctx, intent.ID)
	if err != nil {
		return fmt.Errorf("error loading authorization: %w", err)
	}
	if existing != nil {
		existing.Status = models.AuthorizationFailed
		existing.FailureReason = cause.Error()
		if err := s.Repo.UpdateAuthorization(ctx, existing); err != nil {
			return fmt.Errorf("error updating authorization: %w", err)
		}
	} else {
		record := &models.AuthorizationRecord{
			ID:            newID(),
			IntentID:      intent.ID,
			Amount:        intent.Amount,
			Currency:      intent.Currency,
			Provider:      intent.Provider,
			Status:        models.AuthorizationFailed,
			FailureReason: cause.Error(),
		}
		if err := s.Repo.CreateAuthorization(ctx, record); err != nil {
			return fmt.Errorf("error creating authorization: %w", err)
		}
	}

	if err := s.save(ctx, intent); err != nil {
		return err
	}
	s.recordTransition(ctx, intent, models.ActionAuthorize, models.OutcomeFailure, nil)
	return cause
}

func (s *PaymentService) storedAuthorizeResult(ctx context.Context, intent *models.PaymentIntent) (*AuthorizeResult, error) {
	auth, err := s.Repo.GetAuthorizationByIntent(ctx, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading authorization: %w", err)
	}
	return &AuthorizeResult{Intent: intent, Authorization: auth, ManualReview: intent.ManualReview}, nil
}

func riskRequest(intent *models.PaymentIntent, req *dto.AuthorizeRequest) risk.Request {
	return risk.Request{
		PaymentID:      intent.ID,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		CustomerEmail:  intent.CustomerEmail,
		BillingCountry: req.BillingCountry,
	}
}

func riskContext(req *dto.AuthorizeRequest) risk.RequestContext {
	rc := risk.RequestContext{
		UserID:            req.Identity(),
		IPAddress:         req.IPAddress,
		DeviceFingerprint: req.DeviceFingerprint,
		SessionID:         req.SessionID,
	}
	if req.Device != nil {
		rc.Device = &risk.DeviceInfo{
			UserAgent:        req.Device.UserAgent,
			Platform:         req.Device.Platform,
			Language:         req.Device.Language,
			Timezone:         req.Device.Timezone,
			ScreenResolution: req.Device.ScreenResolution,
			DoNotTrack:       req.Device.DoNotTrack,
		}
	}
	return rc
}
