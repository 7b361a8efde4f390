package booking

import (
	"sublet-booking/internal/pkg/money"
)

// DaysPerMonth is the fixed month length used to derive a daily rate from
// the monthly price; it is not calendar accurate.
const DaysPerMonth = 30

type PriceInput struct {
	MonthlyPriceCents    int64
	CleaningFeeCents     int64
	SecurityDepositCents int64
	Nights               int
}

type PriceBreakdown struct {
	DailyRateCents       int64
	Nights               int
	SubtotalCents        int64
	ServiceFeeCents      int64
	CleaningFeeCents     int64
	SecurityDepositCents int64
	TotalCents           int64
}

type PriceCalculator interface {
	Calculate(in PriceInput) PriceBreakdown
}

type DefaultPriceCalculator struct {
	ServiceFeePercent int64
}

func NewDefaultPriceCalculator(serviceFeePercent int64) *DefaultPriceCalculator {
	return &DefaultPriceCalculator{ServiceFeePercent: serviceFeePercent}
}

// Calculate rounds half away from zero at every step and never carries
// fractional cents from one step into the next: the subtotal is the rounded
// daily rate times the nights, so SubtotalCents == DailyRateCents*Nights.
func (pc *DefaultPriceCalculator) Calculate(in PriceInput) PriceBreakdown {
	daily := money.DivRound(in.MonthlyPriceCents, DaysPerMonth)
	subtotal := daily * int64(in.Nights)
	serviceFee := money.Percent(subtotal, pc.ServiceFeePercent)

	return PriceBreakdown{
		DailyRateCents:       daily,
		Nights:               in.Nights,
		SubtotalCents:        subtotal,
		ServiceFeeCents:      serviceFee,
		CleaningFeeCents:     in.CleaningFeeCents,
		SecurityDepositCents: in.SecurityDepositCents,
		TotalCents:           subtotal + serviceFee + in.CleaningFeeCents + in.SecurityDepositCents,
	}
}
