package response

import (
	"time"

	"sublet-booking/internal/usecase/commands"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                   uuid.UUID  `json:"id"`
	PropertyID           uuid.UUID  `json:"property_id"`
	PropertyTitle        *string    `json:"property_title"`
	PropertyCity         *string    `json:"property_city"`
	GuestID              uuid.UUID  `json:"guest_id"`
	GuestName            *string    `json:"guest_name"`
	HostID               uuid.UUID  `json:"host_id"`
	HostName             *string    `json:"host_name"`
	CheckInDate          string     `json:"check_in_date"`
	CheckOutDate         string     `json:"check_out_date"`
	Nights               int        `json:"nights"`
	GuestCount           int        `json:"guest_count"`
	DailyRateCents       int64      `json:"daily_rate_cents"`
	SubtotalCents        int64      `json:"subtotal_cents"`
	ServiceFeeCents      int64      `json:"service_fee_cents"`
	CleaningFeeCents     int64      `json:"cleaning_fee_cents"`
	SecurityDepositCents int64      `json:"security_deposit_cents"`
	TotalCents           int64      `json:"total_cents"`
	BookingStatus        string     `json:"booking_status"`
	PaymentStatus        string     `json:"payment_status"`
	CancellationReason   *string    `json:"cancellation_reason"`
	CancelledBy          *uuid.UUID `json:"cancelled_by"`
	CancelledAt          *time.Time `json:"cancelled_at"`
	ConfirmedAt          *time.Time `json:"confirmed_at"`
	CompletedAt          *time.Time `json:"completed_at"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type BookingListResponse struct {
	Items []*BookingResponse `json:"items"`
	PageInfo
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	return copyAs[BookingResponse](v)
}

func FromBookingPage(p *queries.BookingPage) (*BookingListResponse, error) {
	items := make([]*BookingResponse, 0, len(p.Items))
	for _, v := range p.Items {
		item, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &BookingListResponse{Items: items, PageInfo: fromPageInfo(p.PageInfo)}, nil
}

type CompleteDueResponse struct {
	Completed []uuid.UUID `json:"completed"`
	Failed    []uuid.UUID `json:"failed"`
}

func FromCompleteDueResult(r *commands.CompleteDueResult) *CompleteDueResponse {
	resp := &CompleteDueResponse{Completed: r.Completed, Failed: r.Failed}
	if resp.Completed == nil {
		resp.Completed = []uuid.UUID{}
	}
	if resp.Failed == nil {
		resp.Failed = []uuid.UUID{}
	}
	return resp
}
