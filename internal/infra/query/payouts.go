package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type EarningRow struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	SubtotalCents    int64
	CleaningFeeCents int64
}

const listCompletedPaidBookings = `SELECT id, host_id, subtotal_cents, cleaning_fee_cents
FROM bookings
WHERE host_id = $1
  AND booking_status = 'completed'
  AND payment_status = 'completed'
  AND ($2::uuid[] IS NULL OR id = ANY($2::uuid[]))
ORDER BY completed_at, id`

// ListCompletedPaidBookings ignores bookingIDs when it is nil.
func (q *Queries) ListCompletedPaidBookings(ctx context.Context, db DBTX, hostID uuid.UUID, bookingIDs []uuid.UUID) ([]EarningRow, error) {
	rows, err := db.Query(ctx, listCompletedPaidBookings, hostID, bookingIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[EarningRow])
}

const listPayoutBookingIDs = `SELECT booking_id FROM payouts WHERE booking_id = ANY($1::uuid[])`

func (q *Queries) ListPayoutBookingIDs(ctx context.Context, db DBTX, bookingIDs []uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listPayoutBookingIDs, bookingIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

const insertPayout = `INSERT INTO payouts (
    id, host_id, booking_id, amount_cents, platform_fee_cents, net_amount_cents,
    payout_status, scheduled_for, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type InsertPayoutParams struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	BookingID        uuid.UUID
	AmountCents      int64
	PlatformFeeCents int64
	NetAmountCents   int64
	PayoutStatus     string
	ScheduledFor     pgtype.Timestamptz
	CreatedAt        pgtype.Timestamptz
}

func (q *Queries) InsertPayout(ctx context.Context, db DBTX, arg InsertPayoutParams) error {
	_, err := db.Exec(ctx, insertPayout,
		arg.ID,
		arg.HostID,
		arg.BookingID,
		arg.AmountCents,
		arg.PlatformFeeCents,
		arg.NetAmountCents,
		arg.PayoutStatus,
		arg.ScheduledFor,
		arg.CreatedAt,
	)
	return err
}

const listPayoutsByHost = `SELECT id, host_id, booking_id, amount_cents, platform_fee_cents,
       net_amount_cents, payout_status, scheduled_for, created_at
FROM payouts
WHERE host_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`

func (q *Queries) ListPayoutsByHost(ctx context.Context, db DBTX, hostID uuid.UUID, limit, offset int32) ([]Payout, error) {
	rows, err := db.Query(ctx, listPayoutsByHost, hostID, limit, offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Payout])
}

const countPayoutsByHost = `SELECT count(*) FROM payouts WHERE host_id = $1`

func (q *Queries) CountPayoutsByHost(ctx context.Context, db DBTX, hostID uuid.UUID) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countPayoutsByHost, hostID).Scan(&count)
	return count, err
}
