package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/gateway"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
)

// Capture charges part or all of an authorization. A nil amount captures
// whatever is left. The sum of successful captures never exceeds the
// authorized amount.
func (s *PaymentService) Capture(ctx context.Context, authorizationID string, amount *int64) (*models.CaptureRecord, error) {
	auth, err := s.Repo.GetAuthorization(ctx, authorizationID)
	if err != nil {
		return nil, fmt.Errorf("error loading authorization: %w", err)
	}
	if auth == nil {
		return nil, &models.NotFoundError{Entity: "authorization", ID: authorizationID}
	}

	var record *models.CaptureRecord
	err = s.withIntentLock(auth.IntentID, func() error {
		record, err = s.captureLocked(ctx, auth, amount)
		return err
	})
	return record, err
}

func (s *PaymentService) captureLocked(ctx context.Context, auth *models.AuthorizationRecord, amount *int64) (*models.CaptureRecord, error) {
	intent, err := s.loadIntent(ctx, auth.IntentID)
	if err != nil {
		return nil, err
	}

	if auth.IsExpired(s.now()) {
		return nil, &models.ExpiredError{AuthorizationID: auth.ID, ExpiredAt: auth.ExpiresAt}
	}
	if auth.Status != models.AuthorizationAuthorized {
		return nil, &models.ConflictError{IntentID: intent.ID, Reason: "authorization is " + string(auth.Status)}
	}
	if _, err := nextStatus(intent, triggerCapture); err != nil {
		return nil, err
	}

	captures, err := s.Repo.ListCaptures(ctx, auth.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading captures: %w", err)
	}
	if inFlight := processingCapture(captures); inFlight != nil {
		return nil, &models.ConflictError{IntentID: intent.ID, Reason: "capture " + inFlight.ID + " is still processing"}
	}
	captured := capturedAmount(captures)
	remaining := auth.Amount - captured

	value := remaining
	if amount != nil {
		value = *amount
	}
	if value <= 0 {
		return nil, &models.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if value > remaining {
		return nil, &models.ValidationError{Field: "amount", Reason: fmt.Sprintf("exceeds the remaining authorized amount %d", remaining)}
	}

	fees, err := gateway.ComputeFees(intent.Provider, value)
	if err != nil {
		return nil, err
	}
	gw, err := s.Gateways.Get(intent.Provider)
	if err != nil {
		return nil, err
	}

	record, err := s.reserveCapture(ctx, intent, auth, value, CaptureKey(auth.ID, len(captures)+1))
	if err != nil {
		return nil, err
	}

	capReq := gateway.CaptureRequest{
		ProviderAuthRef:  auth.ProviderRef,
		PaymentMethodRef: intent.PaymentMethodRef,
		Amount:           value,
		CapturedBefore:   captured,
		Currency:         intent.Currency,
		IdempotencyKey:   record.IdempotencyKey,
	}

	res, err := dispatch(ctx, s, intent.Provider, models.ActionCapture, func(ctx context.Context, attempt int) (*gateway.CaptureResult, error) {
		if attempt > 0 {
			found, err := gw.LookupCapture(ctx, capReq)
			if err == nil {
				return found, nil
			}
			if !errors.Is(err, gateway.ErrNotFoundAtProvider) {
				return nil, err
			}
		}
		return gw.CreateCapture(ctx, capReq)
	})
	if err == nil && res.Value.Status != gateway.StatusCaptured && res.Value.Status != gateway.StatusPending {
		err = &models.ProviderDeclineError{Provider: intent.Provider, Operation: models.ActionCapture, Code: string(res.Value.Status), Reason: "capture not accepted"}
	}
	if err != nil {
		record.Status = models.CaptureFailed
		record.FailureReason = err.Error()
		return nil, s.failCapture(ctx, intent, record, err)
	}

	record.Status = models.CaptureCaptured
	record.Fees = fees
	record.ProviderRef = res.Value.ProviderRef
	if err := s.Repo.UpdateCapture(ctx, record); err != nil {
		return nil, fmt.Errorf("error updating capture: %w", err)
	}

	if err := transition(intent, triggerCapture); err != nil {
		return nil, err
	}
	if err := s.save(ctx, intent); err != nil {
		return nil, err
	}
	s.recordTransition(ctx, intent, models.ActionCapture, models.OutcomeSuccess, map[string]interface{}{
		"capture_id":       record.ID,
		"authorization_id": auth.ID,
		"captured":         value,
		"fees":             fees.Amount,
		"remaining":        remaining - value,
		"attempts":         res.Attempts,
	})
	return record, nil
}

// CaptureKey is the provider idempotency key of the seq-th capture of an
// authorization.
func CaptureKey(authorizationID string, seq int) string {
	return fmt.Sprintf("cap_%s_%d", authorizationID, seq)
}

// reserveCapture stores a processing capture under key and then claims the
// intent's version. Another writer that read the same captures collides on
// the key; one that changed the intent meanwhile makes the claim fail.
func (s *PaymentService) reserveCapture(ctx context.Context, intent *models.PaymentIntent, auth *models.AuthorizationRecord, amount int64, key string) (*models.CaptureRecord, error) {
	record := &models.CaptureRecord{
		ID:              newID(),
		AuthorizationID: auth.ID,
		IdempotencyKey:  key,
		IntentID:        intent.ID,
		Amount:          amount,
		Currency:        intent.Currency,
		Status:          models.CaptureProcessing,
	}
	if err := s.Repo.CreateCapture(ctx, record); err != nil {
		if models.IsConflict(err) {
			return nil, &models.ConflictError{IntentID: intent.ID, Reason: "another capture of authorization " + auth.ID + " is in progress"}
		}
		return nil, fmt.Errorf("error creating capture: %w", err)
	}

	if err := s.save(ctx, intent); err != nil {
		record.Status = models.CaptureFailed
		record.FailureReason = "intent changed before dispatch"
		if uerr := s.Repo.UpdateCapture(ctx, record); uerr != nil {
			intentLog(intent).WithError(uerr).Error("error releasing capture reservation")
		}
		return nil, err
	}
	return record, nil
}

// failCapture records the failed attempt. Only a first capture fails the
// intent; a failed further partial capture leaves it CAPTURED.
func (s *PaymentService) failCapture(ctx context.Context, intent *models.PaymentIntent, record *models.CaptureRecord, cause error) error {
	if err := s.Repo.UpdateCapture(ctx, record); err != nil {
		return fmt.Errorf("error updating capture: %w", err)
	}

	if intent.Status == models.StatusAuthorized {
		if err := transition(intent, triggerFail); err != nil {
			return err
		}
		intent.FailureReason = cause.Error()
		if err := s.save(ctx, intent); err != nil {
			return err
		}
	}

	s.recordTransition(ctx, intent, models.ActionCapture, models.OutcomeFailure, map[string]interface{}{
		"capture_id":       record.ID,
		"authorization_id": record.AuthorizationID,
		"error":            cause.Error(),
	})
	return cause
}

func processingCapture(captures []models.CaptureRecord) *models.CaptureRecord {
	for i := range captures {
		if captures[i].Status == models.CaptureProcessing {
			return &captures[i]
		}
	}
	return nil
}

func capturedAmount(captures []models.CaptureRecord) int64 {
	var total int64
	for _, c := range captures {
		if c.Status == models.CaptureCaptured {
			total += c.Amount
		}
	}
	return total
}

// Settle pays out a capture, net of its fees, to the merchant account. A
// capture is settled at most once; a replay returns the stored settlement.
func (s *PaymentService) Settle(ctx context.Context, captureID string) (*models.SettlementRecord, error) {
	capture, err := s.Repo.GetCapture(ctx, captureID)
	if err != nil {
		return nil, fmt.Errorf("error loading capture: %w", err)
	}
	if capture == nil {
		return nil, &models.NotFoundError{Entity: "capture", ID: captureID}
	}

	var record *models.SettlementRecord
	err = s.withIntentLock(capture.IntentID, func() error {
		record, err = s.settleLocked(ctx, capture)
		return err
	})
	return record, err
}

func (s *PaymentService) settleLocked(ctx context.Context, capture *models.CaptureRecord) (*models.SettlementRecord, error) {
	existing, err := s.Repo.GetSettlementByCapture(ctx, capture.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading settlement: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	if capture.Status != models.CaptureCaptured {
		return nil, &models.ConflictError{IntentID: capture.IntentID, Reason: "capture " + capture.ID + " did not succeed"}
	}

	intent, err := s.loadIntent(ctx, capture.IntentID)
	if err != nil {
		return nil, err
	}
	if _, err := nextStatus(intent, triggerSettle); err != nil {
		return nil, err
	}

	destination := intent.MerchantAccountRef
	if destination == "" {
		destination = s.config.SettlementAccounts[intent.Provider]
	}
	if destination == "" {
		return nil, &models.ValidationError{Field: "merchant_account_ref", Reason: "no settlement destination configured"}
	}

	gw, err := s.Gateways.Get(intent.Provider)
	if err != nil {
		return nil, err
	}

	netAmount := capture.Amount - capture.Fees.Amount
	settleReq := gateway.SettlementRequest{
		ProviderCaptureRef: capture.ProviderRef,
		NetAmount:          netAmount,
		Currency:           capture.Currency,
		Destination:        destination,
		IdempotencyKey:     "stl_" + capture.ID,
	}

	res, err := dispatch(ctx, s, intent.Provider, models.ActionSettle, func(ctx context.Context, attempt int) (*gateway.SettlementResult, error) {
		return gw.CreateSettlement(ctx, settleReq)
	})

	record := &models.SettlementRecord{
		ID:             newID(),
		CaptureID:      capture.ID,
		IntentID:       intent.ID,
		NetAmount:      netAmount,
		Currency:       capture.Currency,
		BankAccountRef: destination,
	}

	if err == nil {
		switch res.Value.Status {
		case gateway.StatusSettled:
			record.Status = models.SettlementSettled
		case gateway.StatusPending:
			record.Status = models.SettlementPending
		default:
			err = &models.ProviderDeclineError{Provider: intent.Provider, Operation: models.ActionSettle, Code: string(res.Value.Status), Reason: "payout not accepted"}
		}
	}

	if err != nil {
		record.Status = models.SettlementFailed
		record.FailureReason = err.Error()
		if createErr := s.Repo.CreateSettlement(ctx, record); createErr != nil {
			return nil, fmt.Errorf("error creating settlement: %w", createErr)
		}
		if intent.Status == models.StatusCaptured {
			if terr := transition(intent, triggerFail); terr != nil {
				return nil, terr
			}
			intent.FailureReason = err.Error()
			if serr := s.save(ctx, intent); serr != nil {
				return nil, serr
			}
		}
		s.recordTransition(ctx, intent, models.ActionSettle, models.OutcomeFailure, map[string]interface{}{
			"capture_id": capture.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if res.Value.BankAccountRef != "" {
		record.BankAccountRef = res.Value.BankAccountRef
	}
	record.ProviderRef = res.Value.ProviderRef
	if err := s.Repo.CreateSettlement(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating settlement: %w", err)
	}

	if err := transition(intent, triggerSettle); err != nil {
		return nil, err
	}
	if err := s.save(ctx, intent); err != nil {
		return nil, err
	}
	s.recordTransition(ctx, intent, models.ActionSettle, models.OutcomeSuccess, map[string]interface{}{
		"capture_id":    capture.ID,
		"settlement_id": record.ID,
		"net_amount":    netAmount,
		"fees":          capture.Fees.Amount,
		"attempts":      res.Attempts,
	})
	return record, nil
}
