package request

import (
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// RequestPayoutRequest limits the payout to the given bookings; an empty
// list means every eligible booking of the host.
type RequestPayoutRequest struct {
	BookingIDs []uuid.UUID `json:"booking_ids" binding:"omitempty,max=200,dive,required"`
}

type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q PageQuery) ToPagination() queries.Pagination {
	return queries.Pagination{Page: q.Page, Limit: q.Limit}
}
