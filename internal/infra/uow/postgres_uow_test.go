//go:build e2e

package uow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/user"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/infra/uow"
	"sublet-booking/internal/pkg/clock"
	"sublet-booking/internal/testutil/builder"
	"sublet-booking/internal/testutil/pgtest"
	"sublet-booking/internal/usecase/commands"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PostgresUoWSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	uow      shared.UnitOfWork
	clock    *clock.MockClock
	bookings commands.BookingCommands
	payouts  commands.PayoutCommands
	hostID   uuid.UUID
	propID   uuid.UUID
}

func TestPostgresUoWSuite(t *testing.T) {
	suite.Run(t, new(PostgresUoWSuite))
}

func (s *PostgresUoWSuite) SetupTest() {
	s.pool, _ = pgtest.NewDatabase(s.T())
	s.uow = uow.NewPostgresUoW(s.pool, query.New())
	s.clock = clock.NewMockClock(builder.Today)

	factory := booking.NewFactory(s.clock, booking.NewDefaultPriceCalculator(10), booking.StayPolicy{MinStayWeeks: 2})
	s.bookings = commands.NewBookingUseCase(s.uow, factory, s.clock, 1)
	s.payouts = commands.NewPayoutUseCase(s.uow, payout.NewCalculator(10, 7*24*time.Hour), s.clock)

	s.hostID = pgtest.InsertUser(s.T(), s.pool, user.RoleUser)
	prop := builder.NewPropertyBuilder().WithHost(s.hostID).Build()
	pgtest.InsertProperty(s.T(), s.pool, prop)
	s.propID = prop.ID
}

func (s *PostgresUoWSuite) newGuest() uuid.UUID {
	return pgtest.InsertUser(s.T(), s.pool, user.RoleUser)
}

func (s *PostgresUoWSuite) create(guestID uuid.UUID, checkIn, checkOut string) (*commands.BookingResult, error) {
	return s.bookings.Create(context.Background(), commands.CreateBookingRequest{
		PropertyID: s.propID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: 1,
	}, guestID)
}

func (s *PostgresUoWSuite) count(sql string, args ...any) int {
	var n int
	s.Require().NoError(s.pool.QueryRow(context.Background(), sql, args...).Scan(&n))
	return n
}

func (s *PostgresUoWSuite) TestConcurrentOverlappingRequestsBookOnce() {
	const workers = 8
	guests := make([]uuid.UUID, workers)
	for i := range guests {
		guests[i] = s.newGuest()
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
		other    []error
	)
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			// every request overlaps every other one by at least a week
			_, err := s.create(guests[i], "2026-01-01", "2026-01-22")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, booking.ErrDatesUnavailable):
				rejected++
			default:
				other = append(other, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	s.Empty(other)
	s.Equal(1, created)
	s.Equal(workers-1, rejected)
	s.Equal(1, s.count(`SELECT count(*) FROM bookings WHERE property_id = $1`, s.propID))
}

func (s *PostgresUoWSuite) TestBackToBackStaysShareADay() {
	_, err := s.create(s.newGuest(), "2026-01-01", "2026-01-15")
	s.Require().NoError(err)

	_, err = s.create(s.newGuest(), "2026-01-15", "2026-02-01")
	s.NoError(err)

	_, err = s.create(s.newGuest(), "2026-01-14", "2026-02-05")
	s.ErrorIs(err, booking.ErrDatesUnavailable)
}

func (s *PostgresUoWSuite) TestCancelledStayFreesTheDates() {
	guest := s.newGuest()
	res, err := s.create(guest, "2026-01-01", "2026-01-15")
	s.Require().NoError(err)

	_, err = s.bookings.Cancel(context.Background(), res.BookingID, guest, "plans changed")
	s.Require().NoError(err)

	_, err = s.create(s.newGuest(), "2026-01-01", "2026-01-15")
	s.NoError(err)
}

func (s *PostgresUoWSuite) TestExclusionConstraintBacksTheApplicationCheck() {
	first := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Property = builder.NewPropertyBuilder().WithHost(s.hostID).Build()
		b.Property.ID = s.propID
		b.GuestID = s.newGuest()
	})
	second := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Property = first.Property
		b.GuestID = s.newGuest()
		b.CheckIn, b.CheckOut = "2026-01-10", "2026-01-31"
	})

	ctx := context.Background()
	s.Require().NoError(s.uow.Within(ctx, shared.PropertyLock(s.propID), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Insert(ctx, first.MustBuild())
	}))

	// skip the availability read and go straight to the insert
	err := s.uow.Within(ctx, shared.PropertyLock(s.propID), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Insert(ctx, second.MustBuild())
	})
	s.True(infra.IsKind(err, infra.KindExclusionViolated), "got %v", err)
	s.ErrorIs(err, booking.ErrDatesUnavailable)
}

func (s *PostgresUoWSuite) TestConcurrentPayoutRequestsPayEachBookingOnce() {
	var ids []uuid.UUID
	for _, dates := range [][2]string{{"2026-01-01", "2026-01-15"}, {"2026-02-01", "2026-02-15"}} {
		res, err := s.create(s.newGuest(), dates[0], dates[1])
		s.Require().NoError(err)
		pgtest.SettleBooking(s.T(), s.pool, res.BookingID)
		ids = append(ids, res.BookingID)
	}

	const workers = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		summaries []*payout.Summary
		failures  []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sum, err := s.payouts.Request(context.Background(), s.hostID, nil)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			summaries = append(summaries, sum)
		}()
	}
	wg.Wait()

	s.Require().Len(summaries, 1)
	s.Len(summaries[0].Payouts, 2)
	// 14 nights at 1200.00/month is 560.00 plus 80.00 cleaning, 10% platform fee
	s.Equal(int64(2*57600), summaries[0].TotalNetAmountCents)
	for _, err := range failures {
		// a waiter either sees the committed payouts or loses the insert race
		s.True(errors.Is(err, payout.ErrNoEligibleBookings) || errors.Is(err, commands.ErrPayoutConflict), "got %v", err)
	}
	s.Equal(2, s.count(`SELECT count(*) FROM payouts WHERE host_id = $1`, s.hostID))
	s.Equal(2, s.count(`SELECT count(DISTINCT booking_id) FROM payouts WHERE booking_id = ANY($1)`, ids))
}

func (s *PostgresUoWSuite) TestDuplicatePayoutIsAConflict() {
	res, err := s.create(s.newGuest(), "2026-01-01", "2026-01-15")
	s.Require().NoError(err)
	pgtest.SettleBooking(s.T(), s.pool, res.BookingID)

	_, err = s.payouts.Request(context.Background(), s.hostID, []uuid.UUID{res.BookingID})
	s.Require().NoError(err)

	calc := payout.NewCalculator(10, 0)
	dup := calc.For(payout.Earning{BookingID: res.BookingID, HostID: s.hostID, SubtotalCents: 56000, CleaningFeeCents: 8000}, s.clock.Now())
	err = s.uow.Within(context.Background(), shared.HostLock(s.hostID), func(ctx context.Context, tx shared.Tx) error {
		return tx.Payouts().InsertMany(ctx, []*payout.Payout{dup})
	})
	s.True(infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)
}

func (s *PostgresUoWSuite) TestCompleteDueAfterGracePeriod() {
	guest := s.newGuest()
	res, err := s.create(guest, "2026-01-01", "2026-01-15")
	s.Require().NoError(err)
	_, err = s.bookings.Accept(context.Background(), res.BookingID, s.hostID)
	s.Require().NoError(err)

	s.clock.Set(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	out, err := s.bookings.CompleteDue(context.Background(), 10)
	s.Require().NoError(err)
	s.Empty(out.Completed, "still inside the grace day")

	s.clock.Set(time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC))
	out, err = s.bookings.CompleteDue(context.Background(), 10)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{res.BookingID}, out.Completed)
	s.Equal(1, s.count(`SELECT count(*) FROM bookings WHERE id = $1 AND booking_status = 'completed'`, res.BookingID))
}

func TestMissingBookingIsNotFound(t *testing.T) {
	pool, _ := pgtest.NewDatabase(t)
	u := uow.NewPostgresUoW(pool, query.New())
	err := u.Within(context.Background(), shared.BookingLock(uuid.New()), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Reads().BookingByID(ctx, uuid.New())
		return err
	})
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
}
