//go:build unit

package payout_test

import (
	"testing"
	"time"

	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorFor(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	c := payout.NewCalculator(10, 7*24*time.Hour)
	e := payout.Earning{BookingID: uuid.New(), HostID: uuid.New(), SubtotalCents: 56000, CleaningFeeCents: 8000}

	p := c.For(e, now)
	assert.Equal(t, int64(64000), p.AmountCents)
	assert.Equal(t, int64(6400), p.PlatformFeeCents)
	assert.Equal(t, int64(57600), p.NetAmountCents)
	assert.Equal(t, payout.StatusPending, p.Status)
	assert.Equal(t, now.AddDate(0, 0, 7), p.ScheduledFor)
	assert.Equal(t, e.BookingID, p.BookingID)
	assert.Equal(t, e.HostID, p.HostID)
}

func TestCalculatorSummarize(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	host := uuid.New()

	t.Run("totals across bookings", func(t *testing.T) {
		c := payout.NewCalculator(15, 0)
		s, err := c.Summarize([]payout.Earning{
			{BookingID: uuid.New(), HostID: host, SubtotalCents: 42000, CleaningFeeCents: 5000},
			{BookingID: uuid.New(), HostID: host, SubtotalCents: 3333, CleaningFeeCents: 0},
		}, now)
		require.NoError(t, err)
		require.Len(t, s.Payouts, 2)

		// 47000*15% = 7050, 3333*15% = 499.95 -> 500
		assert.Equal(t, int64(7050), s.Payouts[0].PlatformFeeCents)
		assert.Equal(t, int64(500), s.Payouts[1].PlatformFeeCents)
		assert.Equal(t, int64(50333), s.TotalAmountCents)
		assert.Equal(t, int64(7550), s.TotalPlatformFeeCents)
		assert.Equal(t, int64(42783), s.TotalNetAmountCents)
		assert.NotEqual(t, s.Payouts[0].ID, s.Payouts[1].ID)
	})

	t.Run("nothing eligible", func(t *testing.T) {
		_, err := payout.NewCalculator(10, 0).Summarize(nil, now)
		require.ErrorIs(t, err, payout.ErrNoEligibleBookings)
		assert.True(t, errs.Is(err, errs.ErrBadRequest))
	})

	t.Run("non-positive net", func(t *testing.T) {
		_, err := payout.NewCalculator(100, 0).Summarize([]payout.Earning{
			{BookingID: uuid.New(), HostID: host, SubtotalCents: 1000},
		}, now)
		require.ErrorIs(t, err, payout.ErrNonPositiveNet)
	})
}
