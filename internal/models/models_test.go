package models_test

import (
	"testing"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIntentStatus_IsTerminal(t *testing.T) {
	terminal := []models.IntentStatus{models.StatusSettled, models.StatusFailed, models.StatusCancelled, models.StatusExpired}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), s)
	}
	for _, s := range []models.IntentStatus{models.StatusNone, models.StatusAuthorized, models.StatusCaptured} {
		assert.False(t, s.IsTerminal(), s)
	}
}

func TestPaymentIntent_Validate(t *testing.T) {
	valid := func() *models.PaymentIntent {
		return &models.PaymentIntent{Amount: 100, Currency: models.CurrencyUSD, Provider: models.ProviderStripe, Status: models.StatusNone}
	}
	assert.NoError(t, valid().Validate())

	cases := map[string]func(*models.PaymentIntent){
		"status":   func(p *models.PaymentIntent) { p.Status = "" },
		"provider": func(p *models.PaymentIntent) { p.Provider = "adyen" },
		"currency": func(p *models.PaymentIntent) { p.Currency = "US1" },
		"amount":   func(p *models.PaymentIntent) { p.Amount = 0 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			p := valid()
			mutate(p)

			var validation *models.ValidationError
			assert.ErrorAs(t, p.Validate(), &validation)
			assert.Equal(t, field, validation.Field)
		})
	}
}
