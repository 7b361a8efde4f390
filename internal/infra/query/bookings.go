package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `b.id, b.property_id, b.guest_id, b.host_id, b.check_in_date, b.check_out_date,
       b.nights, b.guest_count, b.daily_rate_cents, b.subtotal_cents, b.service_fee_cents,
       b.cleaning_fee_cents, b.security_deposit_cents, b.total_cents, b.booking_status,
       b.payment_status, b.cancellation_reason, b.cancelled_by, b.cancelled_at, b.confirmed_at,
       b.completed_at, b.created_at, b.updated_at`

func bookingDest(i *Booking) []any {
	return []any{
		&i.ID,
		&i.PropertyID,
		&i.GuestID,
		&i.HostID,
		&i.CheckInDate,
		&i.CheckOutDate,
		&i.Nights,
		&i.GuestCount,
		&i.DailyRateCents,
		&i.SubtotalCents,
		&i.ServiceFeeCents,
		&i.CleaningFeeCents,
		&i.SecurityDepositCents,
		&i.TotalCents,
		&i.BookingStatus,
		&i.PaymentStatus,
		&i.CancellationReason,
		&i.CancelledBy,
		&i.CancelledAt,
		&i.ConfirmedAt,
		&i.CompletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
}

const getBooking = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

func (q *Queries) GetBooking(ctx context.Context, db DBTX, id uuid.UUID) (Booking, error) {
	var i Booking
	err := db.QueryRow(ctx, getBooking, id).Scan(bookingDest(&i)...)
	return i, err
}

const insertBooking = `INSERT INTO bookings (
    id, property_id, guest_id, host_id, check_in_date, check_out_date, nights, guest_count,
    daily_rate_cents, subtotal_cents, service_fee_cents, cleaning_fee_cents,
    security_deposit_cents, total_cents, booking_status, payment_status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

type InsertBookingParams struct {
	ID                   uuid.UUID
	PropertyID           uuid.UUID
	GuestID              uuid.UUID
	HostID               uuid.UUID
	CheckInDate          pgtype.Date
	CheckOutDate         pgtype.Date
	Nights               int32
	GuestCount           int32
	DailyRateCents       int64
	SubtotalCents        int64
	ServiceFeeCents      int64
	CleaningFeeCents     int64
	SecurityDepositCents int64
	TotalCents           int64
	BookingStatus        string
	PaymentStatus        string
	CreatedAt            pgtype.Timestamptz
	UpdatedAt            pgtype.Timestamptz
}

func (q *Queries) InsertBooking(ctx context.Context, db DBTX, arg InsertBookingParams) error {
	_, err := db.Exec(ctx, insertBooking,
		arg.ID,
		arg.PropertyID,
		arg.GuestID,
		arg.HostID,
		arg.CheckInDate,
		arg.CheckOutDate,
		arg.Nights,
		arg.GuestCount,
		arg.DailyRateCents,
		arg.SubtotalCents,
		arg.ServiceFeeCents,
		arg.CleaningFeeCents,
		arg.SecurityDepositCents,
		arg.TotalCents,
		arg.BookingStatus,
		arg.PaymentStatus,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateBookingStatus = `UPDATE bookings
SET booking_status      = $3,
    cancellation_reason = $4,
    cancelled_by        = $5,
    cancelled_at        = $6,
    confirmed_at        = $7,
    completed_at        = $8,
    updated_at          = $9
WHERE id = $1 AND booking_status = $2`

type UpdateBookingStatusParams struct {
	ID                 uuid.UUID
	ExpectedStatus     string
	BookingStatus      string
	CancellationReason pgtype.Text
	CancelledBy        pgtype.UUID
	CancelledAt        pgtype.Timestamptz
	ConfirmedAt        pgtype.Timestamptz
	CompletedAt        pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

// UpdateBookingStatus is a compare-and-set on booking_status; it reports the
// number of rows changed.
func (q *Queries) UpdateBookingStatus(ctx context.Context, db DBTX, arg UpdateBookingStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingStatus,
		arg.ID,
		arg.ExpectedStatus,
		arg.BookingStatus,
		arg.CancellationReason,
		arg.CancelledBy,
		arg.CancelledAt,
		arg.ConfirmedAt,
		arg.CompletedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const updateBookingPayment = `UPDATE bookings SET payment_status = $2, updated_at = $3 WHERE id = $1`

func (q *Queries) UpdateBookingPayment(ctx context.Context, db DBTX, id uuid.UUID, paymentStatus string, updatedAt pgtype.Timestamptz) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingPayment, id, paymentStatus, updatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listCalendar = `SELECT id, property_id, check_in_date, check_out_date, booking_status
FROM bookings
WHERE property_id = ANY($1::uuid[]) AND booking_status = ANY($2::text[])
ORDER BY property_id, check_in_date`

// ListCalendar returns the bookings in statuses for every property in propertyIDs.
func (q *Queries) ListCalendar(ctx context.Context, db DBTX, propertyIDs []uuid.UUID, statuses []string) ([]CalendarRow, error) {
	rows, err := db.Query(ctx, listCalendar, propertyIDs, statuses)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CalendarRow, error) {
		var i CalendarRow
		err := row.Scan(&i.ID, &i.PropertyID, &i.CheckInDate, &i.CheckOutDate, &i.BookingStatus)
		return i, err
	})
}

const listConfirmedCheckingOutBefore = `SELECT id FROM bookings
WHERE booking_status = 'confirmed' AND check_out_date < $1
ORDER BY check_out_date, id
LIMIT $2`

func (q *Queries) ListConfirmedCheckingOutBefore(ctx context.Context, db DBTX, cutoff pgtype.Date, limit int32) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listConfirmedCheckingOutBefore, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

const bookingViewFrom = `FROM bookings b
LEFT JOIN properties p ON p.id = b.property_id
LEFT JOIN users g ON g.id = b.guest_id
LEFT JOIN users h ON h.id = b.host_id`

const getBookingView = `SELECT ` + bookingColumns + `, p.title, p.city, g.display_name, h.display_name
` + bookingViewFrom + `
WHERE b.id = $1`

func bookingViewDest(i *BookingViewRow) []any {
	return append(bookingDest(&i.Booking), &i.PropertyTitle, &i.PropertyCity, &i.GuestName, &i.HostName)
}

func (q *Queries) GetBookingView(ctx context.Context, db DBTX, id uuid.UUID) (BookingViewRow, error) {
	var i BookingViewRow
	err := db.QueryRow(ctx, getBookingView, id).Scan(bookingViewDest(&i)...)
	return i, err
}

const bookingViewFilter = `
WHERE (($2::boolean AND b.guest_id = $1) OR ($3::boolean AND b.host_id = $1))
  AND ($4::text IS NULL OR b.booking_status = $4::text)`

const listBookingViews = `SELECT ` + bookingColumns + `, p.title, p.city, g.display_name, h.display_name
` + bookingViewFrom + bookingViewFilter + `
ORDER BY b.created_at DESC, b.id
LIMIT $5 OFFSET $6`

const countBookingViews = `SELECT count(*) FROM bookings b` + bookingViewFilter

type ListBookingViewsParams struct {
	UserID  uuid.UUID
	AsGuest bool
	AsHost  bool
	Status  pgtype.Text
	Limit   int32
	Offset  int32
}

func (q *Queries) ListBookingViews(ctx context.Context, db DBTX, arg ListBookingViewsParams) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listBookingViews, arg.UserID, arg.AsGuest, arg.AsHost, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (BookingViewRow, error) {
		var i BookingViewRow
		err := row.Scan(bookingViewDest(&i)...)
		return i, err
	})
}

func (q *Queries) CountBookingViews(ctx context.Context, db DBTX, arg ListBookingViewsParams) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countBookingViews, arg.UserID, arg.AsGuest, arg.AsHost, arg.Status).Scan(&count)
	return count, err
}
