package queries

//go:generate mockgen -source=payout.go -destination=../../mock/queriesmock/payout.go -package=queriesmock

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PayoutView struct {
	ID               uuid.UUID `json:"id"`
	HostID           uuid.UUID `json:"host_id"`
	BookingID        uuid.UUID `json:"booking_id"`
	AmountCents      int64     `json:"amount_cents"`
	PlatformFeeCents int64     `json:"platform_fee_cents"`
	NetAmountCents   int64     `json:"net_amount_cents"`
	PayoutStatus     string    `json:"payout_status"`
	ScheduledFor     time.Time `json:"scheduled_for"`
	CreatedAt        time.Time `json:"created_at"`
}

type PayoutPage struct {
	Items []*PayoutView `json:"items"`
	PageInfo
}

type PayoutReadStore interface {
	ListByHost(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]*PayoutView, int64, error)
}

type PayoutQueries interface {
	ListByHost(ctx context.Context, hostID uuid.UUID, p Pagination) (*PayoutPage, error)
}

type payoutQueriesImpl struct {
	store PayoutReadStore
}

func NewPayoutQueries(store PayoutReadStore) PayoutQueries {
	return &payoutQueriesImpl{store: store}
}

func (q *payoutQueriesImpl) ListByHost(ctx context.Context, hostID uuid.UUID, p Pagination) (*PayoutPage, error) {
	p = p.Normalize()
	items, total, err := q.store.ListByHost(ctx, hostID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*PayoutView{}
	}
	return &PayoutPage{Items: items, PageInfo: NewPageInfo(p, total)}, nil
}
