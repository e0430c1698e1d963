package service

import (
	"testing"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from    models.IntentStatus
		trigger trigger
		want    models.IntentStatus
		ok      bool
	}{
		{models.StatusNone, triggerAuthorize, models.StatusAuthorized, true},
		{models.StatusNone, triggerAdopt, models.StatusAuthorized, true},
		{models.StatusNone, triggerFail, models.StatusFailed, true},
		{models.StatusNone, triggerCapture, models.StatusNone, false},
		{models.StatusAuthorized, triggerCapture, models.StatusCaptured, true},
		{models.StatusAuthorized, triggerCancel, models.StatusCancelled, true},
		{models.StatusAuthorized, triggerExpire, models.StatusExpired, true},
		{models.StatusAuthorized, triggerSettle, models.StatusAuthorized, false},
		{models.StatusCaptured, triggerCapture, models.StatusCaptured, true},
		{models.StatusCaptured, triggerSettle, models.StatusSettled, true},
		{models.StatusCaptured, triggerCancel, models.StatusCaptured, false},
		{models.StatusSettled, triggerSettle, models.StatusSettled, true},
		{models.StatusSettled, triggerFail, models.StatusSettled, false},
		{models.StatusFailed, triggerAuthorize, models.StatusFailed, false},
		{models.StatusCancelled, triggerCapture, models.StatusCancelled, false},
		{models.StatusExpired, triggerCapture, models.StatusExpired, false},
	}

	for _, c := range cases {
		t.Run(string(c.from)+"_"+string(c.trigger), func(t *testing.T) {
			got, err := nextStatus(&models.PaymentIntent{ID: "pi", Status: c.from}, c.trigger)
			assert.Equal(t, c.want, got)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, models.IsConflict(err))
			}
		})
	}
}

func TestLockTable(t *testing.T) {
	locks := newLockTable()

	release, ok := locks.tryAcquire("pi_1")
	assert.True(t, ok)

	_, ok = locks.tryAcquire("pi_1")
	assert.False(t, ok)

	other, ok := locks.tryAcquire("pi_2")
	assert.True(t, ok)
	other()

	release()
	assert.Empty(t, locks.held)

	release, ok = locks.tryAcquire("pi_1")
	assert.True(t, ok)
	release()
}
