package request

import (
	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/pkg/patch"
	"sublet-booking/internal/usecase/commands"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID   uuid.UUID `json:"property_id" binding:"required"`
	CheckInDate  string    `json:"check_in_date" binding:"required,isodate"`
	CheckOutDate string    `json:"check_out_date" binding:"required,isodate"`
	GuestCount   int       `json:"guest_count" binding:"required,min=1"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		PropertyID: r.PropertyID,
		CheckIn:    r.CheckInDate,
		CheckOut:   r.CheckOutDate,
		GuestCount: r.GuestCount,
	}
}

// ReasonRequest is the optional body of decline and cancel.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type RecordPaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending completed refunded partial"`
}

func (r RecordPaymentRequest) ToDomain() booking.PaymentStatus {
	return booking.PaymentStatus(r.PaymentStatus)
}

type ListBookingsQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=guest host all"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q ListBookingsQuery) ToFilter() queries.BookingListFilter {
	f := queries.BookingListFilter{
		Role:       queries.BookingRole(q.Role),
		Pagination: queries.Pagination{Page: q.Page, Limit: q.Limit},
	}
	if q.Status != "" {
		status := booking.Status(q.Status)
		f.Status = &status
	}
	return f
}

type CompleteDueQuery struct {
	Limit *int `form:"limit" binding:"omitempty,min=1,max=5000"`
}

func (q CompleteDueQuery) BatchSize() int {
	return patch.Coalesce(q.Limit, commands.DefaultCompleteDueBatch)
}
