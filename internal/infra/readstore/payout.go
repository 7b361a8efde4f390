package readstore

import (
	"context"

	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PayoutReadQueries interface {
	ListPayoutsByHost(ctx context.Context, db query.DBTX, hostID uuid.UUID, limit, offset int32) ([]query.Payout, error)
	CountPayoutsByHost(ctx context.Context, db query.DBTX, hostID uuid.UUID) (int64, error)
}

type PayoutReadStore struct {
	queries PayoutReadQueries
	db      query.DBTX
}

func NewPayoutReadStore(queries PayoutReadQueries, db query.DBTX) *PayoutReadStore {
	return &PayoutReadStore{
		queries: queries,
		db:      db,
	}
}

var _ queries.PayoutReadStore = (*PayoutReadStore)(nil)

func (r *PayoutReadStore) ListByHost(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]*queries.PayoutView, int64, error) {
	total, err := r.queries.CountPayoutsByHost(ctx, r.db, hostID)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count payouts", err)
	}
	if total == 0 {
		return []*queries.PayoutView{}, 0, nil
	}

	rows, err := r.queries.ListPayoutsByHost(ctx, r.db, hostID, int32(limit), int32(offset))
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list payouts", err)
	}
	items := make([]*queries.PayoutView, 0, len(rows))
	for _, row := range rows {
		items = append(items, &queries.PayoutView{
			ID:               row.ID,
			HostID:           row.HostID,
			BookingID:        row.BookingID,
			AmountCents:      row.AmountCents,
			PlatformFeeCents: row.PlatformFeeCents,
			NetAmountCents:   row.NetAmountCents,
			PayoutStatus:     row.PayoutStatus,
			ScheduledFor:     row.ScheduledFor.Time.UTC(),
			CreatedAt:        row.CreatedAt.Time.UTC(),
		})
	}
	return items, total, nil
}
