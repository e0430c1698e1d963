package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/sirupsen/logrus"
)

// CancelAuthorization releases an uncaptured hold. Once anything has been
// captured the intent can no longer be cancelled.
func (s *PaymentService) CancelAuthorization(ctx context.Context, authorizationID string) (*models.PaymentIntent, error) {
	auth, err := s.Repo.GetAuthorization(ctx, authorizationID)
	if err != nil {
		return nil, fmt.Errorf("error loading authorization: %w", err)
	}
	if auth == nil {
		return nil, &models.NotFoundError{Entity: "authorization", ID: authorizationID}
	}

	var intent *models.PaymentIntent
	err = s.withIntentLock(auth.IntentID, func() error {
		intent, err = s.cancelLocked(ctx, auth)
		return err
	})
	return intent, err
}

func (s *PaymentService) cancelLocked(ctx context.Context, auth *models.AuthorizationRecord) (*models.PaymentIntent, error) {
	intent, err := s.loadIntent(ctx, auth.IntentID)
	if err != nil {
		return nil, err
	}
	if _, err := nextStatus(intent, triggerCancel); err != nil {
		return nil, err
	}
	captures, err := s.Repo.ListCaptures(ctx, auth.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading captures: %w", err)
	}
	if inFlight := processingCapture(captures); inFlight != nil {
		return nil, &models.ConflictError{IntentID: intent.ID, Reason: "capture " + inFlight.ID + " is still processing"}
	}

	gw, err := s.Gateways.Get(intent.Provider)
	if err != nil {
		return nil, err
	}

	res, err := dispatch(ctx, s, intent.Provider, "void", func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, gw.VoidAuthorization(ctx, auth.ProviderRef)
	})
	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			// The hold may still be alive; Reconcile releases it later.
			if terr := transition(intent, triggerFail); terr != nil {
				return nil, terr
			}
			intent.FailureReason = err.Error()
			if serr := s.save(ctx, intent); serr != nil {
				return nil, serr
			}
		}
		s.recordTransition(ctx, intent, models.ActionCancel, models.OutcomeFailure, map[string]interface{}{
			"authorization_id": auth.ID,
			"error":            err.Error(),
		})
		return nil, err
	}

	auth.Status = models.AuthorizationVoided
	if err := s.Repo.UpdateAuthorization(ctx, auth); err != nil {
		return nil, fmt.Errorf("error updating authorization: %w", err)
	}
	if err := transition(intent, triggerCancel); err != nil {
		return nil, err
	}
	if err := s.save(ctx, intent); err != nil {
		return nil, err
	}
	s.recordTransition(ctx, intent, models.ActionCancel, models.OutcomeSuccess, map[string]interface{}{
		"authorization_id": auth.ID,
		"attempts":         res.Attempts,
	})
	return intent, nil
}

// ExpireStale moves every AUTHORIZED intent whose hold window has elapsed to
// EXPIRED and returns how many moved. Intents busy with another transition
// are left for the next sweep.
func (s *PaymentService) ExpireStale(ctx context.Context) (int, error) {
	intents, err := s.Repo.ListIntentsByStatus(ctx, models.StatusAuthorized)
	if err != nil {
		return 0, fmt.Errorf("error listing authorized intents: %w", err)
	}

	var errs *multierror.Error
	expired := 0
	for _, candidate := range intents {
		moved := false
		err := s.withIntentLock(candidate.ID, func() error {
			var err error
			moved, err = s.expireLocked(ctx, candidate.ID)
			return err
		})
		if err != nil {
			if models.IsConflict(err) {
				continue
			}
			errs = multierror.Append(errs, err)
			continue
		}
		if moved {
			expired++
		}
	}

	if expired > 0 {
		logrus.Infof("expired %d stale authorizations", expired)
	}
	return expired, errs.ErrorOrNil()
}

func (s *PaymentService) expireLocked(ctx context.Context, intentID string) (bool, error) {
	intent, err := s.loadIntent(ctx, intentID)
	if err != nil {
		return false, err
	}
	if intent.Status != models.StatusAuthorized {
		return false, nil
	}

	auth, err := s.Repo.GetAuthorizationByIntent(ctx, intentID)
	if err != nil {
		return false, fmt.Errorf("error loading authorization: %w", err)
	}
	if auth == nil || !auth.IsExpired(s.now()) {
		return false, nil
	}

	auth.Status = models.AuthorizationExpired
	if err := s.Repo.UpdateAuthorization(ctx, auth); err != nil {
		return false, fmt.Errorf("error updating authorization: %w", err)
	}
	if err := transition(intent, triggerExpire); err != nil {
		return false, err
	}
	if err := s.save(ctx, intent); err != nil {
		return false, err
	}
	s.recordTransition(ctx, intent, models.ActionExpire, models.OutcomeSuccess, map[string]interface{}{
		"authorization_id": auth.ID,
		"expired_at":       auth.ExpiresAt,
	})
	return true, nil
}

// Reconcile aligns an intent with what its provider actually holds. A NONE
// intent adopts an authorization that succeeded remotely after the local
// write was lost; a FAILED intent has any orphan hold voided. Captures left
// processing by an interrupted call are resolved from the provider's answer.
func (s *PaymentService) Reconcile(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	var intent *models.PaymentIntent
	err := s.withIntentLock(intentID, func() error {
		var err error
		intent, err = s.reconcileLocked(ctx, intentID)
		return err
	})
	return intent, err
}

func (s *PaymentService) reconcileLocked(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	intent, err := s.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status.IsTerminal() && intent.Status != models.StatusFailed {
		return intent, nil
	}

	gw, err := s.Gateways.Get(intent.Provider)
	if err != nil {
		return nil, err
	}
	if intent.Status != models.StatusNone && intent.Status != models.StatusFailed {
		return s.resolveCaptures(ctx, gw, intent)
	}

	authReq := gateway.AuthorizationRequest{
		Amount:           intent.Amount,
		Currency:         intent.Currency,
		PaymentMethodRef: intent.PaymentMethodRef,
		IdempotencyKey:   AuthorizationKey(intent.ID),
	}
	res, err := dispatch(ctx, s, intent.Provider, "lookup", func(ctx context.Context, attempt int) (*gateway.AuthorizationResult, error) {
		return gw.LookupAuthorization(ctx, authReq)
	})
	if errors.Is(err, gateway.ErrNotFoundAtProvider) {
		intentLog(intent).Info("reconcile found nothing at provider")
		return intent, nil
	}
	if err != nil {
		return nil, err
	}

	if intent.Status == models.StatusFailed {
		return s.voidOrphan(ctx, gw, intent, res.Value)
	}
	return s.adopt(ctx, intent, res.Value)
}

func (s *PaymentService) adopt(ctx context.Context, intent *models.PaymentIntent, found *gateway.AuthorizationResult) (*models.PaymentIntent, error) {
	auth, err := s.upsertAuthorization(ctx, intent, found)
	if err != nil {
		return nil, err
	}

	switch auth.Status {
	case models.AuthorizationAuthorized:
		if err := transition(intent, triggerAdopt); err != nil {
			return nil, err
		}
		if err := s.save(ctx, intent); err != nil {
			return nil, err
		}
		s.recordTransition(ctx, intent, models.ActionReconcile, models.OutcomeSuccess, map[string]interface{}{
			"authorization_id": auth.ID,
			"adopted":          true,
		})
	case models.AuthorizationFailed:
		if err := transition(intent, triggerFail); err != nil {
			return nil, err
		}
		intent.FailureReason = "provider reports " + string(found.Status)
		if err := s.save(ctx, intent); err != nil {
			return nil, err
		}
		s.recordTransition(ctx, intent, models.ActionReconcile, models.OutcomeFailure, map[string]interface{}{
			"authorization_id": auth.ID,
		})
	}
	return intent, nil
}

func (s *PaymentService) voidOrphan(ctx context.Context, gw gateway.Gateway, intent *models.PaymentIntent, found *gateway.AuthorizationResult) (*models.PaymentIntent, error) {
	if found.Status != gateway.StatusAuthorized && found.Status != gateway.StatusRequiresAction {
		return intent, nil
	}

	_, err := dispatch(ctx, s, intent.Provider, "void", func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, gw.VoidAuthorization(ctx, found.ProviderRef)
	})
	if err != nil {
		return nil, err
	}

	auth, err := s.Repo.GetAuthorizationByIntent(ctx, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading authorization: %w", err)
	}
	if auth != nil {
		auth.Status = models.AuthorizationVoided
		auth.ProviderRef = found.ProviderRef
		if err := s.Repo.UpdateAuthorization(ctx, auth); err != nil {
			return nil, fmt.Errorf("error updating authorization: %w", err)
		}
	}

	s.recordTransition(ctx, intent, models.ActionReconcile, models.OutcomeSuccess, map[string]interface{}{
		"voided_provider_ref": found.ProviderRef,
	})
	return intent, nil
}

func (s *PaymentService) resolveCaptures(ctx context.Context, gw gateway.Gateway, intent *models.PaymentIntent) (*models.PaymentIntent, error) {
	auth, err := s.Repo.GetAuthorizationByIntent(ctx, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading authorization: %w", err)
	}
	if auth == nil {
		return intent, nil
	}
	captures, err := s.Repo.ListCaptures(ctx, auth.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading captures: %w", err)
	}

	for i := range captures {
		record := &captures[i]
		if record.Status != models.CaptureProcessing {
			continue
		}
		capReq := gateway.CaptureRequest{
			ProviderAuthRef:  auth.ProviderRef,
			PaymentMethodRef: intent.PaymentMethodRef,
			Amount:           record.Amount,
			CapturedBefore:   capturedAmount(captures),
			Currency:         record.Currency,
			IdempotencyKey:   record.IdempotencyKey,
		}
		res, err := dispatch(ctx, s, intent.Provider, "lookup", func(ctx context.Context, attempt int) (*gateway.CaptureResult, error) {
			return gw.LookupCapture(ctx, capReq)
		})
		switch {
		case errors.Is(err, gateway.ErrNotFoundAtProvider):
			record.Status = models.CaptureFailed
			record.FailureReason = "not found at provider"
		case err != nil:
			return nil, err
		case res.Value.Status == gateway.StatusCaptured || res.Value.Status == gateway.StatusPending:
			fees, err := gateway.ComputeFees(intent.Provider, record.Amount)
			if err != nil {
				return nil, err
			}
			record.Status = models.CaptureCaptured
			record.Fees = fees
			record.ProviderRef = res.Value.ProviderRef
		default:
			record.Status = models.CaptureFailed
			record.FailureReason = "provider reports " + string(res.Value.Status)
		}
		if err := s.Repo.UpdateCapture(ctx, record); err != nil {
			return nil, fmt.Errorf("error updating capture: %w", err)
		}

		if record.Status == models.CaptureCaptured && intent.Status == models.StatusAuthorized {
			if err := transition(intent, triggerCapture); err != nil {
				return nil, err
			}
			if err := s.save(ctx, intent); err != nil {
				return nil, err
			}
		}
		outcome := models.OutcomeSuccess
		if record.Status == models.CaptureFailed {
			outcome = models.OutcomeFailure
		}
		s.recordTransition(ctx, intent, models.ActionReconcile, outcome, map[string]interface{}{
			"capture_id":     record.ID,
			"capture_status": record.Status,
		})
	}
	return intent, nil
}
