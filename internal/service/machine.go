package service

import (
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/qmuntal/stateless"
)

type trigger string

const (
	triggerAuthorize trigger = "authorize"
	triggerFail      trigger = "fail"
	triggerCapture   trigger = "capture"
	triggerSettle    trigger = "settle"
	triggerCancel    trigger = "cancel"
	triggerExpire    trigger = "expire"
	triggerAdopt     trigger = "adopt"
)

// newPhaseMachine builds the lifecycle of a payment intent starting at status.
// Terminal states permit nothing except settling further captures.
func newPhaseMachine(status models.IntentStatus) *stateless.StateMachine {
	machine := stateless.NewStateMachine(status)

	machine.Configure(models.StatusNone).
		Permit(triggerAuthorize, models.StatusAuthorized).
		Permit(triggerAdopt, models.StatusAuthorized).
		Permit(triggerFail, models.StatusFailed)

	machine.Configure(models.StatusAuthorized).
		Permit(triggerCapture, models.StatusCaptured).
		Permit(triggerCancel, models.StatusCancelled).
		Permit(triggerExpire, models.StatusExpired).
		Permit(triggerFail, models.StatusFailed)

	machine.Configure(models.StatusCaptured).
		PermitReentry(triggerCapture).
		Permit(triggerSettle, models.StatusSettled).
		Permit(triggerFail, models.StatusFailed)

	machine.Configure(models.StatusSettled).
		PermitReentry(triggerSettle)

	return machine
}

// nextStatus returns the status intent would reach by firing t, or a
// ConflictError when t is not permitted from the current status.
func nextStatus(intent *models.PaymentIntent, t trigger) (models.IntentStatus, error) {
	machine := newPhaseMachine(intent.Status)
	if err := machine.Fire(t); err != nil {
		return intent.Status, &models.ConflictError{
			IntentID: intent.ID,
			Reason:   "cannot " + string(t) + " from " + string(intent.Status),
		}
	}
	return machine.MustState().(models.IntentStatus), nil
}

// transition moves intent in memory. Callers persist it with SaveIntent.
func transition(intent *models.PaymentIntent, t trigger) error {
	next, err := nextStatus(intent, t)
	if err != nil {
		return err
	}
	intent.Status = next
	return nil
}
