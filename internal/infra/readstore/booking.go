package readstore

import (
	"context"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/pkg/pgconv"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewQueries interface {
	GetBookingView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.BookingViewRow, error)
	ListBookingViews(ctx context.Context, db query.DBTX, arg query.ListBookingViewsParams) ([]query.BookingViewRow, error)
	CountBookingViews(ctx context.Context, db query.DBTX, arg query.ListBookingViewsParams) (int64, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      query.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db query.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingView(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking view", err)
	}
	return toBookingView(row), nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingViewFilter) ([]*queries.BookingView, int64, error) {
	params := query.ListBookingViewsParams{
		UserID:  filter.UserID,
		AsGuest: filter.AsGuest,
		AsHost:  filter.AsHost,
		Status:  statusToPgtype(filter.Status),
		Limit:   int32(filter.Limit),
		Offset:  int32(filter.Offset),
	}

	total, err := r.queries.CountBookingViews(ctx, r.db, params)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	if total == 0 {
		return []*queries.BookingView{}, 0, nil
	}

	rows, err := r.queries.ListBookingViews(ctx, r.db, params)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	items := make([]*queries.BookingView, 0, len(rows))
	for _, row := range rows {
		items = append(items, toBookingView(row))
	}
	return items, total, nil
}

func statusToPgtype(s *booking.Status) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s.String(), Valid: true}
}

func toBookingView(row query.BookingViewRow) *queries.BookingView {
	b := row.Booking
	return &queries.BookingView{
		ID:                   b.ID,
		PropertyID:           b.PropertyID,
		PropertyTitle:        pgconv.StringPtrFromPgtype(row.PropertyTitle),
		PropertyCity:         pgconv.StringPtrFromPgtype(row.PropertyCity),
		GuestID:              b.GuestID,
		GuestName:            pgconv.StringPtrFromPgtype(row.GuestName),
		HostID:               b.HostID,
		HostName:             pgconv.StringPtrFromPgtype(row.HostName),
		CheckInDate:          pgconv.DateFromPgtype(b.CheckInDate).Format(booking.DateLayout),
		CheckOutDate:         pgconv.DateFromPgtype(b.CheckOutDate).Format(booking.DateLayout),
		Nights:               int(b.Nights),
		GuestCount:           int(b.GuestCount),
		DailyRateCents:       b.DailyRateCents,
		SubtotalCents:        b.SubtotalCents,
		ServiceFeeCents:      b.ServiceFeeCents,
		CleaningFeeCents:     b.CleaningFeeCents,
		SecurityDepositCents: b.SecurityDepositCents,
		TotalCents:           b.TotalCents,
		BookingStatus:        b.BookingStatus,
		PaymentStatus:        b.PaymentStatus,
		CancellationReason:   pgconv.StringPtrFromPgtype(b.CancellationReason),
		CancelledBy:          pgconv.UUIDPtrFromPgtype(b.CancelledBy),
		CancelledAt:          pgconv.TimePtrFromPgtype(b.CancelledAt),
		ConfirmedAt:          pgconv.TimePtrFromPgtype(b.ConfirmedAt),
		CompletedAt:          pgconv.TimePtrFromPgtype(b.CompletedAt),
		CreatedAt:            b.CreatedAt.Time.UTC(),
		UpdatedAt:            b.UpdatedAt.Time.UTC(),
	}
}
