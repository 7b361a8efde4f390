//go:build unit

package booking_test

import (
	"testing"

	"sublet-booking/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultPriceCalculator(t *testing.T) {
	cases := []struct {
		name       string
		feePercent int64
		in         booking.PriceInput
		want       booking.PriceBreakdown
	}{
		{
			name:       "two weeks at 900/month",
			feePercent: 10,
			in:         booking.PriceInput{MonthlyPriceCents: 90000, CleaningFeeCents: 5000, Nights: 14},
			want: booking.PriceBreakdown{
				DailyRateCents:   3000,
				Nights:           14,
				SubtotalCents:    42000,
				ServiceFeeCents:  4200,
				CleaningFeeCents: 5000,
				TotalCents:       51200,
			},
		},
		{
			name:       "two weeks at 1200/month with deposit",
			feePercent: 12,
			in:         booking.PriceInput{MonthlyPriceCents: 120000, CleaningFeeCents: 8000, SecurityDepositCents: 50000, Nights: 14},
			want: booking.PriceBreakdown{
				DailyRateCents:       4000,
				Nights:               14,
				SubtotalCents:        56000,
				ServiceFeeCents:      6720,
				CleaningFeeCents:     8000,
				SecurityDepositCents: 50000,
				TotalCents:           120720,
			},
		},
		{
			// daily 100001/30 = 3333.37 -> 3333, subtotal 66660, fee 3% = 1999.8 -> 2000
			name:       "fractional cents round per step",
			feePercent: 3,
			in:         booking.PriceInput{MonthlyPriceCents: 100001, Nights: 20},
			want: booking.PriceBreakdown{
				DailyRateCents:  3333,
				Nights:          20,
				SubtotalCents:   66660,
				ServiceFeeCents: 2000,
				TotalCents:      68660,
			},
		},
		{
			// daily 45/30 = 1.5 rounds up to 2, subtotal 14, fee 1.4 -> 1
			name:       "half cent rounds away from zero",
			feePercent: 10,
			in:         booking.PriceInput{MonthlyPriceCents: 45, Nights: 7},
			want: booking.PriceBreakdown{
				DailyRateCents:  2,
				Nights:          7,
				SubtotalCents:   14,
				ServiceFeeCents: 1,
				TotalCents:      15,
			},
		},
		{
			// daily 100000/30 = 3333.33 -> 3333; rounding once over the stay would give 46667
			name:       "subtotal uses the rounded daily rate",
			feePercent: 10,
			in:         booking.PriceInput{MonthlyPriceCents: 100000, Nights: 14},
			want: booking.PriceBreakdown{
				DailyRateCents:  3333,
				Nights:          14,
				SubtotalCents:   46662,
				ServiceFeeCents: 4666,
				TotalCents:      51328,
			},
		},
		{
			name:       "zero fee",
			feePercent: 0,
			in:         booking.PriceInput{MonthlyPriceCents: 90000, Nights: 30},
			want: booking.PriceBreakdown{
				DailyRateCents: 3000,
				Nights:         30,
				SubtotalCents:  90000,
				TotalCents:     90000,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := booking.NewDefaultPriceCalculator(tc.feePercent).Calculate(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("PriceBreakdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultPriceCalculator_SubtotalIsDailyRateTimesNights(t *testing.T) {
	calc := booking.NewDefaultPriceCalculator(10)
	for _, monthly := range []int64{100000, 100001, 99999, 123457, 45, 29} {
		for _, nights := range []int{7, 14, 29, 90, 365} {
			got := calc.Calculate(booking.PriceInput{MonthlyPriceCents: monthly, Nights: nights})
			if got.SubtotalCents != got.DailyRateCents*int64(nights) {
				t.Errorf("monthly %d nights %d: subtotal %d != daily %d * nights",
					monthly, nights, got.SubtotalCents, got.DailyRateCents)
			}
		}
	}
}
