package repository

import (
	"context"

	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/infra/repository/converter"
	"sublet-booking/internal/usecase/shared"
)

type PayoutWriteQueries interface {
	InsertPayout(ctx context.Context, db query.DBTX, arg query.InsertPayoutParams) error
}

type PayoutRepository struct {
	queries PayoutWriteQueries
	db      query.DBTX
}

func NewPayoutRepository(queries PayoutWriteQueries, db query.DBTX) *PayoutRepository {
	return &PayoutRepository{
		queries: queries,
		db:      db,
	}
}

var _ shared.PayoutRepository = (*PayoutRepository)(nil)

// InsertMany must run inside a transaction; a unique violation on
// booking_id means another request already paid the booking out.
func (r *PayoutRepository) InsertMany(ctx context.Context, payouts []*payout.Payout) error {
	for _, p := range payouts {
		if err := r.queries.InsertPayout(ctx, r.db, converter.PayoutToInsertParams(p)); err != nil {
			return infra.WrapRepoErr("failed to insert payout for booking "+p.BookingID.String(), err)
		}
	}
	return nil
}
