package readstore

import (
	"context"
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/infra/repository/converter"
	"sublet-booking/internal/pkg/pgconv"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CommandReadQueries interface {
	GetProperty(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Property, error)
	GetBooking(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Booking, error)
	ListCalendar(ctx context.Context, db query.DBTX, propertyIDs []uuid.UUID, statuses []string) ([]query.CalendarRow, error)
	ListCompletedPaidBookings(ctx context.Context, db query.DBTX, hostID uuid.UUID, bookingIDs []uuid.UUID) ([]query.EarningRow, error)
	ListPayoutBookingIDs(ctx context.Context, db query.DBTX, bookingIDs []uuid.UUID) ([]uuid.UUID, error)
	ListConfirmedCheckingOutBefore(ctx context.Context, db query.DBTX, cutoff pgtype.Date, limit int32) ([]uuid.UUID, error)
}

// CommandReads loads aggregates for command validation. Bound to a
// transaction it sees that transaction's snapshot.
type CommandReads struct {
	queries CommandReadQueries
	db      query.DBTX
}

func NewCommandReads(queries CommandReadQueries, db query.DBTX) *CommandReads {
	return &CommandReads{
		queries: queries,
		db:      db,
	}
}

var _ shared.CommandReads = (*CommandReads)(nil)

func (r *CommandReads) PropertyByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	row, err := r.queries.GetProperty(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get property", err)
	}
	return converter.PropertyFromRow(row), nil
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBooking(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *CommandReads) BookingsForProperty(ctx context.Context, propertyID uuid.UUID, statuses []booking.Status) ([]booking.Occupied, error) {
	cal, err := loadCalendar(ctx, r.queries, r.db, []uuid.UUID{propertyID}, statuses)
	if err != nil {
		return nil, err
	}
	return cal[propertyID], nil
}

func (r *CommandReads) CompletedPaidBookings(ctx context.Context, hostID uuid.UUID, bookingIDs []uuid.UUID) ([]payout.Earning, error) {
	rows, err := r.queries.ListCompletedPaidBookings(ctx, r.db, hostID, bookingIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list completed paid bookings", err)
	}
	out := make([]payout.Earning, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.EarningFromRow(row))
	}
	return out, nil
}

func (r *CommandReads) ExistingPayoutBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	ids, err := r.queries.ListPayoutBookingIDs(ctx, r.db, bookingIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list existing payouts", err)
	}
	return ids, nil
}

func (r *CommandReads) ConfirmedCheckingOutBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListConfirmedCheckingOutBefore(ctx, r.db, pgconv.DateToPgtype(cutoff), int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings due for completion", err)
	}
	return ids, nil
}
