package repository

import (
	"context"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/infra/repository/converter"
	"sublet-booking/internal/pkg/pgconv"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingWriteQueries interface {
	InsertBooking(ctx context.Context, db query.DBTX, arg query.InsertBookingParams) error
	UpdateBookingStatus(ctx context.Context, db query.DBTX, arg query.UpdateBookingStatusParams) (int64, error)
	UpdateBookingPayment(ctx context.Context, db query.DBTX, id uuid.UUID, paymentStatus string, updatedAt pgtype.Timestamptz) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      query.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db query.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

var _ shared.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	err := r.queries.InsertBooking(ctx, r.db, converter.BookingToInsertParams(b))
	if err == nil {
		return nil
	}
	if infra.Classify(err) == infra.KindExclusionViolated {
		// an overlapping active booking committed after our availability check
		return infra.WrapRepoErr("booking overlaps an active booking", booking.ErrDatesUnavailable, infra.KindExclusionViolated)
	}
	return infra.WrapRepoErr("failed to insert booking", err)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error {
	n, err := r.queries.UpdateBookingStatus(ctx, r.db, converter.BookingToStatusParams(b, expected))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if n == 0 {
		return shared.ErrStatusChanged
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, b *booking.Booking) error {
	n, err := r.queries.UpdateBookingPayment(ctx, r.db, b.ID(), b.PaymentStatus().String(), pgconv.TimeToPgtype(b.UpdatedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking payment status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
