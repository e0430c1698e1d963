package gateway

import (
	"fmt"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/shopspring/decimal"
)

// FeeSchedule is a provider's processing fee: a percentage of the captured
// amount plus a fixed amount in minor units.
type FeeSchedule struct {
	PercentRate decimal.Decimal
	FixedFee    int64
}

var feeSchedules = map[models.Provider]FeeSchedule{
	models.ProviderStripe:  {PercentRate: decimal.RequireFromString("0.029"), FixedFee: 30},
	models.ProviderPayPal:  {PercentRate: decimal.RequireFromString("0.0349"), FixedFee: 49},
	models.ProviderSandbox: {PercentRate: decimal.RequireFromString("0.029"), FixedFee: 30},
}

// ScheduleFor returns the fee schedule configured for provider.
func ScheduleFor(provider models.Provider) (FeeSchedule, error) {
	schedule, ok := feeSchedules[provider]
	if !ok {
		return FeeSchedule{}, fmt.Errorf("no fee schedule for provider %s", provider)
	}
	return schedule, nil
}

// Compute returns the fee on amount, rounded half-up to minor units.
func (f FeeSchedule) Compute(amount int64) models.Fees {
	percent := decimal.NewFromInt(amount).Mul(f.PercentRate).Round(0).IntPart()

	return models.Fees{
		Amount: percent + f.FixedFee,
		Breakdown: []models.FeeLine{
			{Name: fmt.Sprintf("processing %s%%", f.PercentRate.Shift(2).String()), Amount: percent},
			{Name: "fixed", Amount: f.FixedFee},
		},
	}
}

// ComputeFees applies the provider's schedule to amount.
func ComputeFees(provider models.Provider, amount int64) (models.Fees, error) {
	schedule, err := ScheduleFor(provider)
	if err != nil {
		return models.Fees{}, err
	}
	return schedule.Compute(amount), nil
}
