package response

import (
	"time"

	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PayoutResponse struct {
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

type PayoutSummaryResponse struct {
	Payouts               []*PayoutResponse `json:"payouts"`
	TotalAmountCents      int64             `json:"total_amount_cents"`
	TotalPlatformFeeCents int64             `json:"total_platform_fee_cents"`
	TotalNetAmountCents   int64             `json:"total_net_amount_cents"`
}

type PayoutListResponse struct {
	Items []*PayoutResponse `json:"items"`
	PageInfo
}

func FromPayoutSummary(s *payout.Summary) *PayoutSummaryResponse {
	resp := &PayoutSummaryResponse{
		Payouts:               make([]*PayoutResponse, 0, len(s.Payouts)),
		TotalAmountCents:      s.TotalAmountCents,
		TotalPlatformFeeCents: s.TotalPlatformFeeCents,
		TotalNetAmountCents:   s.TotalNetAmountCents,
	}
	for _, p := range s.Payouts {
		resp.Payouts = append(resp.Payouts, &PayoutResponse{
			ID:               p.ID,
			HostID:           p.HostID,
			BookingID:        p.BookingID,
			AmountCents:      p.AmountCents,
			PlatformFeeCents: p.PlatformFeeCents,
			NetAmountCents:   p.NetAmountCents,
			PayoutStatus:     p.Status.String(),
			ScheduledFor:     p.ScheduledFor,
			CreatedAt:        p.CreatedAt,
		})
	}
	return resp
}

func FromPayoutPage(p *queries.PayoutPage) (*PayoutListResponse, error) {
	items := make([]*PayoutResponse, 0, len(p.Items))
	for _, v := range p.Items {
		item, err := copyAs[PayoutResponse](v)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &PayoutListResponse{Items: items, PageInfo: fromPageInfo(p.PageInfo)}, nil
}
