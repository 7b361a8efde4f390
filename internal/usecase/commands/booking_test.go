//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/infra/memstore"
	"sublet-booking/internal/pkg/clock"
	"sublet-booking/internal/pkg/errs"
	"sublet-booking/internal/testutil/builder"
	"sublet-booking/internal/usecase/commands"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingCommandsSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *clock.MockClock
	store    *memstore.Store
	uow      shared.UnitOfWork
	bookings commands.BookingCommands
	payouts  commands.PayoutCommands
	prop     *property.Property
	guest    uuid.UUID
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsSuite))
}

func (s *BookingCommandsSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(builder.Today)
	s.store = memstore.New()
	s.uow = memstore.NewUnitOfWork(s.store)
	s.prop = builder.NewPropertyBuilder().Build()
	s.store.AddProperty(*s.prop)
	s.guest = uuid.New()

	factory := booking.NewFactory(s.clock, booking.NewDefaultPriceCalculator(10), booking.StayPolicy{MinStayWeeks: 2})
	s.bookings = commands.NewBookingUseCase(s.uow, factory, s.clock, 1)
	s.payouts = commands.NewPayoutUseCase(s.uow, payout.NewCalculator(10, 7*24*time.Hour), s.clock)
}

func (s *BookingCommandsSuite) create(guest uuid.UUID, checkIn, checkOut string) (*commands.BookingResult, error) {
	return s.bookings.Create(s.ctx, commands.CreateBookingRequest{
		PropertyID: s.prop.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: 2,
	}, guest)
}

func (s *BookingCommandsSuite) mustCreate(checkIn, checkOut string) uuid.UUID {
	res, err := s.create(s.guest, checkIn, checkOut)
	s.Require().NoError(err)
	return res.BookingID
}

func (s *BookingCommandsSuite) load(id uuid.UUID) *booking.Booking {
	b, err := s.uow.CommandReads().BookingByID(s.ctx, id)
	s.Require().NoError(err)
	return b
}

// completePaid drives a booking to completed with a completed payment.
func (s *BookingCommandsSuite) completePaid(id uuid.UUID) {
	_, err := s.bookings.Accept(s.ctx, id, s.prop.HostID)
	s.Require().NoError(err)
	s.clock.Set(time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	_, err = s.bookings.Complete(s.ctx, id)
	s.Require().NoError(err)
	_, err = s.bookings.RecordPayment(s.ctx, id, booking.PaymentCompleted)
	s.Require().NoError(err)
}

func (s *BookingCommandsSuite) TestCreate_PricesAndPersistsPending() {
	id := s.mustCreate("2026-01-01", "2026-01-15")

	b := s.load(id)
	s.Equal(booking.StatusPending, b.Status())
	s.Equal(booking.PaymentPending, b.PaymentStatus())
	s.Equal(s.prop.HostID, b.HostID())
	s.Equal(14, b.Nights())
	s.Equal(int64(56000), b.Price().SubtotalCents)
	s.Equal(int64(5600), b.Price().ServiceFeeCents)
	s.Equal(int64(69600), b.Price().TotalCents)
	s.Equal(builder.Today, b.CreatedAt())
}

func (s *BookingCommandsSuite) TestCreate_Availability() {
	s.mustCreate("2026-01-01", "2026-01-15")

	tests := []struct {
		name     string
		in, out  string
		wantFree bool
	}{
		{name: "overlapping tail", in: "2026-01-10", out: "2026-01-24"},
		{name: "enclosing", in: "2025-12-20", out: "2026-01-20"},
		{name: "identical", in: "2026-01-01", out: "2026-01-15"},
		{name: "back to back after", in: "2026-01-15", out: "2026-01-29", wantFree: true},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.create(uuid.New(), tt.in, tt.out)
			if tt.wantFree {
				s.NoError(err)
				return
			}
			s.ErrorIs(err, booking.ErrDatesUnavailable)
			s.True(errs.Is(err, errs.ErrBadRequest))
		})
	}
}

func (s *BookingCommandsSuite) TestCreate_RulesRunBeforeWrites() {
	tests := []struct {
		name    string
		propID  uuid.UUID
		guest   uuid.UUID
		in, out string
		wantErr error
	}{
		{name: "13 nights", guest: s.guest, in: "2026-01-01", out: "2026-01-14", wantErr: booking.ErrMinimumStayNotMet},
		{name: "host books own listing", guest: s.prop.HostID, in: "2026-01-01", out: "2026-01-15", wantErr: booking.ErrSelfBooking},
		{name: "check-in in the past", guest: s.guest, in: "2025-11-01", out: "2025-11-20", wantErr: booking.ErrCheckInInPast},
		{name: "inverted dates", guest: s.guest, in: "2026-01-15", out: "2026-01-01", wantErr: booking.ErrInvalidDateRange},
		{name: "unknown property", propID: uuid.New(), guest: s.guest, in: "2026-01-01", out: "2026-01-15", wantErr: commands.ErrPropertyNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			propID := s.prop.ID
			if tt.propID != uuid.Nil {
				propID = tt.propID
			}
			_, err := s.bookings.Create(s.ctx, commands.CreateBookingRequest{
				PropertyID: propID, CheckIn: tt.in, CheckOut: tt.out, GuestCount: 2,
			}, tt.guest)
			s.ErrorIs(err, tt.wantErr)
		})
	}

	occupied, err := s.uow.CommandReads().BookingsForProperty(s.ctx, s.prop.ID, booking.ActiveStatuses)
	s.Require().NoError(err)
	s.Empty(occupied)
}

func (s *BookingCommandsSuite) TestAccept() {
	id := s.mustCreate("2026-01-01", "2026-01-15")

	_, err := s.bookings.Accept(s.ctx, id, s.guest)
	s.ErrorIs(err, booking.ErrNotHost)
	s.True(errs.Is(err, errs.ErrForbidden))
	s.Equal(booking.StatusPending, s.load(id).Status())

	res, err := s.bookings.Accept(s.ctx, id, s.prop.HostID)
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, res.Status)
	s.Require().NotNil(s.load(id).ConfirmedAt())

	_, err = s.bookings.Accept(s.ctx, id, s.prop.HostID)
	s.True(errs.Is(err, errs.ErrBadRequest))
	s.Contains(err.Error(), "cannot accept booking in status confirmed")
}

func (s *BookingCommandsSuite) TestDecline_FreesTheDates() {
	id := s.mustCreate("2026-01-01", "2026-01-15")

	res, err := s.bookings.Decline(s.ctx, id, s.prop.HostID, "renovation")
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled, res.Status)

	b := s.load(id)
	s.Require().NotNil(b.CancelledBy())
	s.Equal(s.prop.HostID, *b.CancelledBy())
	s.Nil(b.ConfirmedAt())
	s.Equal("renovation", *b.CancellationReason())

	_, err = s.create(uuid.New(), "2026-01-01", "2026-01-15")
	s.NoError(err)
}

func (s *BookingCommandsSuite) TestCancel() {
	id := s.mustCreate("2026-01-01", "2026-01-15")

	_, err := s.bookings.Cancel(s.ctx, id, uuid.New(), "")
	s.ErrorIs(err, booking.ErrNotParticipant)

	_, err = s.bookings.Cancel(s.ctx, id, s.guest, "plans changed")
	s.Require().NoError(err)
	s.Equal(*s.load(id).CancelledBy(), s.guest)

	_, err = s.bookings.Cancel(s.ctx, id, s.guest, "again")
	s.True(errs.Is(err, errs.ErrBadRequest))
	s.Contains(err.Error(), "cannot cancel booking in status cancelled")
}

func (s *BookingCommandsSuite) TestTransitions_UnknownBooking() {
	_, err := s.bookings.Accept(s.ctx, uuid.New(), s.prop.HostID)
	s.ErrorIs(err, commands.ErrBookingNotFound)
	s.True(errs.Is(err, errs.ErrNotFound))
}

func (s *BookingCommandsSuite) TestComplete() {
	id := s.mustCreate("2026-01-01", "2026-01-15")
	_, err := s.bookings.Accept(s.ctx, id, s.prop.HostID)
	s.Require().NoError(err)

	s.clock.Set(time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC))
	_, err = s.bookings.Complete(s.ctx, id)
	s.ErrorIs(err, booking.ErrCompletionNotDue)

	s.clock.Set(time.Date(2026, 1, 16, 0, 5, 0, 0, time.UTC))
	res, err := s.bookings.Complete(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(booking.StatusCompleted, res.Status)
}

func (s *BookingCommandsSuite) TestCompleteDue() {
	due := s.mustCreate("2026-01-01", "2026-01-15")
	later := s.mustCreate("2026-01-20", "2026-02-10")
	pending := s.mustCreate("2026-03-01", "2026-03-15")
	for _, id := range []uuid.UUID{due, later} {
		_, err := s.bookings.Accept(s.ctx, id, s.prop.HostID)
		s.Require().NoError(err)
	}

	s.clock.Set(time.Date(2026, 1, 16, 6, 0, 0, 0, time.UTC))
	res, err := s.bookings.CompleteDue(s.ctx, 0)

	s.Require().NoError(err)
	s.Equal([]uuid.UUID{due}, res.Completed)
	s.Empty(res.Failed)
	s.Equal(booking.StatusConfirmed, s.load(later).Status())
	s.Equal(booking.StatusPending, s.load(pending).Status())
}

func (s *BookingCommandsSuite) TestRecordPayment() {
	id := s.mustCreate("2026-01-01", "2026-01-15")
	_, err := s.bookings.Cancel(s.ctx, id, s.guest, "")
	s.Require().NoError(err)

	_, err = s.bookings.RecordPayment(s.ctx, id, booking.PaymentCompleted)
	s.True(errs.Is(err, errs.ErrBadRequest))

	_, err = s.bookings.RecordPayment(s.ctx, id, booking.PaymentRefunded)
	s.Require().NoError(err)
	s.Equal(booking.PaymentRefunded, s.load(id).PaymentStatus())
}

func (s *BookingCommandsSuite) TestPayout_EndToEnd() {
	id := s.mustCreate("2026-01-01", "2026-01-15")
	s.completePaid(id)

	summary, err := s.payouts.Request(s.ctx, s.prop.HostID, nil)
	s.Require().NoError(err)
	s.Require().Len(summary.Payouts, 1)
	p := summary.Payouts[0]
	s.Equal(id, p.BookingID)
	s.Equal(int64(64000), p.AmountCents)
	s.Equal(int64(6400), p.PlatformFeeCents)
	s.Equal(int64(57600), p.NetAmountCents)
	s.Equal(payout.StatusPending, p.Status)
	s.Equal(s.clock.Now().Add(7*24*time.Hour), p.ScheduledFor)
	s.Equal(int64(57600), summary.TotalNetAmountCents)

	_, err = s.payouts.Request(s.ctx, s.prop.HostID, nil)
	s.ErrorIs(err, payout.ErrNoEligibleBookings)
}

func (s *BookingCommandsSuite) TestPayout_Eligibility() {
	unpaid := s.mustCreate("2026-01-01", "2026-01-15")
	_, err := s.bookings.Accept(s.ctx, unpaid, s.prop.HostID)
	s.Require().NoError(err)

	_, err = s.payouts.Request(s.ctx, s.prop.HostID, nil)
	s.ErrorIs(err, payout.ErrNoEligibleBookings)

	s.clock.Set(time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	_, err = s.bookings.Complete(s.ctx, unpaid)
	s.Require().NoError(err)
	_, err = s.payouts.Request(s.ctx, s.prop.HostID, nil)
	s.ErrorIs(err, payout.ErrNoEligibleBookings, "completed but unpaid")

	_, err = s.bookings.RecordPayment(s.ctx, unpaid, booking.PaymentCompleted)
	s.Require().NoError(err)
	_, err = s.payouts.Request(s.ctx, uuid.New(), nil)
	s.ErrorIs(err, payout.ErrNoEligibleBookings, "another host")

	_, err = s.payouts.Request(s.ctx, s.prop.HostID, []uuid.UUID{uuid.New()})
	s.ErrorIs(err, payout.ErrNoEligibleBookings, "filtered to a foreign id")

	summary, err := s.payouts.Request(s.ctx, s.prop.HostID, []uuid.UUID{unpaid, unpaid})
	s.Require().NoError(err)
	s.Len(summary.Payouts, 1)
}

func (s *BookingCommandsSuite) TestConcurrentCreate_OneWinner() {
	const racers = 10
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		others []error
	)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.create(uuid.New(), "2026-01-01", "2026-01-15")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			others = append(others, err)
		}()
	}
	wg.Wait()

	s.Equal(1, wins)
	s.Len(others, racers-1)
	for _, err := range others {
		s.ErrorIs(err, booking.ErrDatesUnavailable)
	}
}

func (s *BookingCommandsSuite) TestConcurrentAcceptAndDecline_OneWinner() {
	id := s.mustCreate("2026-01-01", "2026-01-15")

	errsCh := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.bookings.Accept(s.ctx, id, s.prop.HostID)
		errsCh <- err
	}()
	go func() {
		defer wg.Done()
		_, err := s.bookings.Decline(s.ctx, id, s.prop.HostID, "")
		errsCh <- err
	}()
	wg.Wait()
	close(errsCh)

	var failed int
	for err := range errsCh {
		if err != nil {
			failed++
			s.True(errs.Is(err, errs.ErrBadRequest), "loser sees an illegal transition: %v", err)
		}
	}
	s.Equal(1, failed)
}

func (s *BookingCommandsSuite) TestConcurrentPayout_OneWinner() {
	id := s.mustCreate("2026-01-01", "2026-01-15")
	s.completePaid(id)

	results := make(chan error, 5)
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.payouts.Request(s.ctx, s.prop.HostID, nil)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		s.ErrorIs(err, payout.ErrNoEligibleBookings)
	}
	s.Equal(1, ok)
}

// staleUoW simulates a conditional update losing its race: the write
// matches no row and the re-read shows where the booking went.
type staleUoW struct {
	shared.UnitOfWork
	first, second *booking.Booking
	reads         int
}

func (u *staleUoW) Within(ctx context.Context, _ shared.LockKey, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, u)
}
func (u *staleUoW) Bookings() shared.BookingRepository { return u }
func (u *staleUoW) Payouts() shared.PayoutRepository   { return nil }
func (u *staleUoW) Reads() shared.CommandReads         { return &staleReads{u: u} }

func (u *staleUoW) Insert(context.Context, *booking.Booking) error { return nil }
func (u *staleUoW) UpdateStatus(context.Context, *booking.Booking, booking.Status) error {
	return shared.ErrStatusChanged
}
func (u *staleUoW) UpdatePaymentStatus(context.Context, *booking.Booking) error { return nil }

type staleReads struct {
	shared.CommandReads
	u *staleUoW
}

func (r *staleReads) BookingByID(context.Context, uuid.UUID) (*booking.Booking, error) {
	r.u.reads++
	if r.u.reads == 1 {
		return r.u.first, nil
	}
	return r.u.second, nil
}

func TestTransition_LostRaceReportsCurrentStatus(t *testing.T) {
	b := builder.NewBookingBuilder()
	pending := b.MustBuild()
	snap := pending.Snapshot()
	snap.Status = booking.StatusCancelled
	cancelled, err := booking.Reconstruct(snap)
	require.NoError(t, err)

	uow := &staleUoW{first: pending, second: cancelled}
	clk := clock.NewMockClock(builder.Today)
	uc := commands.NewBookingUseCase(uow, b.Factory(), clk, 1)

	_, err = uc.Accept(context.Background(), pending.ID(), pending.HostID())

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrBadRequest))
	assert.Contains(t, err.Error(), "cannot accept booking in status cancelled")
	assert.Equal(t, 2, uow.reads)
}
