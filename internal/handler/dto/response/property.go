package response

import (
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type DateRangeResponse struct {
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

type AvailabilityResponse struct {
	PropertyID   uuid.UUID           `json:"property_id"`
	CheckInDate  string              `json:"check_in_date"`
	CheckOutDate string              `json:"check_out_date"`
	Nights       int                 `json:"nights"`
	Available    bool                `json:"available"`
	Conflicts    []DateRangeResponse `json:"conflicts"`
}

type QuoteResponse struct {
	PropertyID           uuid.UUID `json:"property_id"`
	CheckInDate          string    `json:"check_in_date"`
	CheckOutDate         string    `json:"check_out_date"`
	Nights               int       `json:"nights"`
	GuestCount           int       `json:"guest_count"`
	DailyRateCents       int64     `json:"daily_rate_cents"`
	SubtotalCents        int64     `json:"subtotal_cents"`
	ServiceFeeCents      int64     `json:"service_fee_cents"`
	CleaningFeeCents     int64     `json:"cleaning_fee_cents"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
	TotalCents           int64     `json:"total_cents"`
	Available            bool      `json:"available"`
}

type PropertyResponse struct {
	ID                   uuid.UUID `json:"id"`
	HostID               uuid.UUID `json:"host_id"`
	Title                string    `json:"title"`
	City                 string    `json:"city"`
	MonthlyPriceCents    int64     `json:"monthly_price_cents"`
	CleaningFeeCents     int64     `json:"cleaning_fee_cents"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
	MinimumStayWeeks     int       `json:"minimum_stay_weeks"`
	MaximumStayMonths    int       `json:"maximum_stay_months"`
	MaxGuests            int       `json:"max_guests"`
}

type PropertyListResponse struct {
	Items []*PropertyResponse `json:"items"`
	PageInfo
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	resp, err := copyAs[AvailabilityResponse](v)
	if err != nil {
		return nil, err
	}
	if resp.Conflicts == nil {
		resp.Conflicts = []DateRangeResponse{}
	}
	return resp, nil
}

func FromQuoteView(v *queries.QuoteView) (*QuoteResponse, error) {
	return copyAs[QuoteResponse](v)
}

func FromPropertyPage(p *queries.PropertyPage) (*PropertyListResponse, error) {
	items := make([]*PropertyResponse, 0, len(p.Items))
	for _, v := range p.Items {
		item, err := copyAs[PropertyResponse](v)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &PropertyListResponse{Items: items, PageInfo: fromPageInfo(p.PageInfo)}, nil
}
