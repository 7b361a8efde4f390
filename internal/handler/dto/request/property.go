package request

import (
	"sublet-booking/internal/pkg/patch"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type StayQuery struct {
	CheckIn  string `form:"check_in" binding:"required,isodate"`
	CheckOut string `form:"check_out" binding:"required,isodate"`
	Guests   *int   `form:"guests" binding:"omitempty,min=1"`
}

func (q StayQuery) ToQuote(propertyID, guestID uuid.UUID) queries.QuoteRequest {
	return queries.QuoteRequest{
		PropertyID: propertyID,
		GuestID:    guestID,
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		GuestCount: patch.Coalesce(q.Guests, 1),
	}
}

type SearchPropertiesQuery struct {
	CheckIn              string `form:"check_in" binding:"omitempty,isodate"`
	CheckOut             string `form:"check_out" binding:"omitempty,isodate"`
	Guests               int    `form:"guests" binding:"omitempty,min=1"`
	City                 string `form:"city" binding:"omitempty,max=100"`
	MaxMonthlyPriceCents *int64 `form:"max_monthly_price_cents" binding:"omitempty,min=0"`
	Page                 int    `form:"page" binding:"omitempty,min=1"`
	Limit                int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q SearchPropertiesQuery) ToCriteria() queries.SearchCriteria {
	return queries.SearchCriteria{
		CheckIn:              q.CheckIn,
		CheckOut:             q.CheckOut,
		Guests:               q.Guests,
		City:                 q.City,
		MaxMonthlyPriceCents: q.MaxMonthlyPriceCents,
		Pagination:           queries.Pagination{Page: q.Page, Limit: q.Limit},
	}
}
