//go:build unit

package memstore_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/user"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/memstore"
	"sublet-booking/internal/pkg/errs"
	"sublet-booking/internal/testutil/builder"
	"sublet-booking/internal/usecase/queries"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errs.New("boom")

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uow := memstore.NewUnitOfWork(store)
	bk := builder.NewBookingBuilder().MustBuild()

	err := uow.Within(ctx, shared.PropertyLock(bk.PropertyID()), func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Bookings().Insert(ctx, bk))

		// visible inside the unit
		got, err := tx.Reads().BookingByID(ctx, bk.ID())
		require.NoError(t, err)
		assert.Equal(t, bk.ID(), got.ID())
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = uow.CommandReads().BookingByID(ctx, bk.ID())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestUnitOfWork_CommitEnforcesExclusion(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uow := memstore.NewUnitOfWork(store)
	prop := builder.NewPropertyBuilder().Build()

	first := builder.NewBookingBuilder().WithProperty(prop).MustBuild()
	store.PutBooking(first)
	overlapping := builder.NewBookingBuilder().WithProperty(prop).WithDates("2026-01-10", "2026-01-30").MustBuild()

	// a different lock key lets the write reach commit without the use case check
	err := uow.Within(ctx, shared.BookingLock(overlapping.ID()), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Insert(ctx, overlapping)
	})

	require.ErrorIs(t, err, booking.ErrDatesUnavailable)
	assert.True(t, infra.IsKind(err, infra.KindExclusionViolated))

	cancelled := builder.NewBookingBuilder().WithProperty(prop).BuildWithStatus(booking.StatusCancelled, booking.PaymentPending)
	store.PutBooking(cancelled)
	backToBack := builder.NewBookingBuilder().WithProperty(prop).WithDates("2026-01-15", "2026-02-01").MustBuild()
	err = uow.Within(ctx, shared.BookingLock(backToBack.ID()), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Insert(ctx, backToBack)
	})
	assert.NoError(t, err)
}

func TestUnitOfWork_UpdateStatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uow := memstore.NewUnitOfWork(store)
	bk := builder.NewBookingBuilder().MustBuild()
	store.PutBooking(bk)

	require.NoError(t, bk.Accept(bk.HostID(), builder.Today))

	err := uow.Within(ctx, shared.BookingLock(bk.ID()), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().UpdateStatus(ctx, bk, booking.StatusConfirmed)
	})
	require.ErrorIs(t, err, shared.ErrStatusChanged)

	err = uow.Within(ctx, shared.BookingLock(bk.ID()), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().UpdateStatus(ctx, bk, booking.StatusPending)
	})
	require.NoError(t, err)

	got, err := uow.CommandReads().BookingByID(ctx, bk.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, got.Status())
	assert.Equal(t, bk.Price(), got.Price())
}

func TestUnitOfWork_PayoutPerBookingIsUnique(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uow := memstore.NewUnitOfWork(store)
	calc := payout.NewCalculator(10, 0)
	e := payout.Earning{BookingID: uuid.New(), HostID: uuid.New(), SubtotalCents: 1000}

	insert := func() error {
		// distinct keys so both units reach commit
		return uow.Within(ctx, shared.BookingLock(uuid.New()), func(ctx context.Context, tx shared.Tx) error {
			return tx.Payouts().InsertMany(ctx, []*payout.Payout{calc.For(e, builder.Today)})
		})
	}

	require.NoError(t, insert())
	err := insert()
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrConflict))

	ids, err := uow.CommandReads().ExistingPayoutBookingIDs(ctx, []uuid.UUID{e.BookingID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{e.BookingID}, ids)
}

func TestCommandReads_CompletedPaidBookings(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	prop := builder.NewPropertyBuilder().Build()

	eligible := builder.NewBookingBuilder().WithProperty(prop).
		BuildWithStatus(booking.StatusCompleted, booking.PaymentCompleted)
	unpaid := builder.NewBookingBuilder().WithProperty(prop).WithDates("2026-02-01", "2026-02-15").
		BuildWithStatus(booking.StatusCompleted, booking.PaymentPartial)
	ongoing := builder.NewBookingBuilder().WithProperty(prop).WithDates("2026-03-01", "2026-03-15").
		BuildWithStatus(booking.StatusConfirmed, booking.PaymentCompleted)
	for _, b := range []*booking.Booking{eligible, unpaid, ongoing} {
		store.PutBooking(b)
	}

	earnings, err := memstore.NewUnitOfWork(store).CommandReads().CompletedPaidBookings(ctx, prop.HostID, nil)

	require.NoError(t, err)
	require.Len(t, earnings, 1)
	assert.Equal(t, eligible.ID(), earnings[0].BookingID)
	assert.Equal(t, eligible.Price().SubtotalCents, earnings[0].SubtotalCents)
}

func TestLoadSeed(t *testing.T) {
	const doc = `
users:
  - id: 6f1c1c8e-3b0a-4a53-9a43-0f6f0d1f2a01
    display_name: Hana Host
    email: hana@example.com
  - id: 6f1c1c8e-3b0a-4a53-9a43-0f6f0d1f2a02
    display_name: Olli Operator
    email: olli@example.com
    role: operator
properties:
  - id: 0b9f7f0e-5d7c-4d1e-8f3b-2c6f1e9a7b01
    host_id: 6f1c1c8e-3b0a-4a53-9a43-0f6f0d1f2a01
    title: Loft by the river
    city: Cambridge
    monthly_price_cents: 150000
    cleaning_fee_cents: 5000
    minimum_stay_weeks: 4
    maximum_stay_months: 6
    max_guests: 3
`
	store := memstore.New()
	require.NoError(t, store.LoadSeed(strings.NewReader(doc)))

	props, err := memstore.NewPropertyReadStore(store).SearchActive(context.Background(), queries.PropertySearchFilter{MinGuests: 1})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "Loft by the river", props[0].Title)
	assert.Equal(t, 4, props[0].MinimumStayWeeks)

	t.Run("rejects unknown fields", func(t *testing.T) {
		err := memstore.New().LoadSeed(strings.NewReader("users:\n  - id: x\n    nickname: y\n"))
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		err := memstore.New().LoadSeed(strings.NewReader("users:\n  - id: 6f1c1c8e-3b0a-4a53-9a43-0f6f0d1f2a01\n    role: root\n"))
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestBookingReadStore(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	prop := builder.NewPropertyBuilder().Build()
	store.AddProperty(*prop)
	store.AddUser(user.Profile{ID: prop.HostID, DisplayName: "Hana Host"})

	guest := uuid.New()
	var ids []uuid.UUID
	for i, dates := range [][2]string{{"2026-01-01", "2026-01-15"}, {"2026-02-01", "2026-02-15"}, {"2026-03-01", "2026-03-15"}} {
		b := builder.NewBookingBuilder().WithProperty(prop).WithDates(dates[0], dates[1]).With(func(b *builder.BookingBuilder) {
			b.GuestID = guest
			b.Now = builder.Today.Add(time.Duration(i) * time.Hour)
		}).MustBuild()
		store.PutBooking(b)
		ids = append(ids, b.ID())
	}
	rs := memstore.NewBookingReadStore(store)

	t.Run("enrichment degrades to nil", func(t *testing.T) {
		v, err := rs.FindByID(ctx, ids[0])
		require.NoError(t, err)
		require.NotNil(t, v.HostName)
		assert.Equal(t, "Hana Host", *v.HostName)
		assert.Nil(t, v.GuestName)
		assert.Equal(t, "Sunny room near campus", *v.PropertyTitle)
		assert.Equal(t, "2026-01-01", v.CheckInDate)
	})

	t.Run("newest first with paging", func(t *testing.T) {
		items, total, err := rs.List(ctx, queries.BookingViewFilter{UserID: guest, AsGuest: true, Limit: 2, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 2)
		assert.Equal(t, ids[2], items[0].ID)
		assert.Equal(t, ids[1], items[1].ID)

		items, _, err = rs.List(ctx, queries.BookingViewFilter{UserID: guest, AsGuest: true, Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, ids[0], items[0].ID)
	})

	t.Run("role filter", func(t *testing.T) {
		_, total, err := rs.List(ctx, queries.BookingViewFilter{UserID: guest, AsHost: true, Limit: 20})
		require.NoError(t, err)
		assert.Zero(t, total)

		_, total, err = rs.List(ctx, queries.BookingViewFilter{UserID: prop.HostID, AsHost: true, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})
}
